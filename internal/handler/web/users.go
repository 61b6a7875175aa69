// File: internal/handler/web/users.go
package web

import (
	"errors"
	"fmt"
	"net/http"

	"user-crud/internal/database"
	"user-crud/internal/dto"
	"user-crud/internal/session"
	"user-crud/internal/store"
	"user-crud/internal/validation"
	"user-crud/internal/view"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// HomeHandler 列出所有使用者
func HomeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			log.Error().Err(err).Msg("list users")
			return flashRedirect(c, session.FlashError, fmt.Sprintf("Error fetching users: %v", err), "/")
		}
		return c.Render(http.StatusOK, view.PageHome, view.HomePage{
			Page:  newPage(c, "Users"),
			Users: users,
		})
	}
}

// AddUserFormHandler 顯示空白的新增表單
func AddUserFormHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return renderUserForm(c, http.StatusOK, view.PageAddUser, "/addUsers", dto.UserForm{}, nil)
	}
}

// AddUserHandler 驗證表單後新增使用者；驗證失敗時帶著錯誤重新顯示表單
func AddUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var form dto.UserForm
		if err := c.Bind(&form); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
		}
		if err := c.Validate(&form); err != nil {
			return renderUserForm(c, http.StatusUnprocessableEntity, view.PageAddUser, "/addUsers", form, validation.Fields(err))
		}

		if _, err := createUser(c.Request().Context(), db, form.ToUser(0)); err != nil {
			log.Error().Err(err).Msg("add user")
			return flashRedirect(c, session.FlashError, fmt.Sprintf("Error adding user: %v", err), "/")
		}
		return flashRedirect(c, session.FlashInfo, "User Details Added", "/")
	}
}

// EditUserFormHandler 以資料庫中的值預填編輯表單
func EditUserFormHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		u, err := getUserByID(c.Request().Context(), db, id)
		if err != nil {
			if !errors.Is(err, store.ErrUserNotFound) {
				log.Error().Err(err).Int("user_id", id).Msg("load user for edit")
			}
			return flashRedirect(c, session.FlashError, fmt.Sprintf("Error editing user: %v", err), "/")
		}
		return renderUserForm(c, http.StatusOK, view.PageEditUser, editAction(id), dto.UserFormFrom(u), nil)
	}
}

// EditUserHandler 覆寫 name、city、age；不存在的 ID 不視為錯誤
func EditUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		var form dto.UserForm
		if err := c.Bind(&form); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
		}
		if err := c.Validate(&form); err != nil {
			return renderUserForm(c, http.StatusUnprocessableEntity, view.PageEditUser, editAction(id), form, validation.Fields(err))
		}

		if err := updateUser(c.Request().Context(), db, form.ToUser(id)); err != nil {
			log.Error().Err(err).Int("user_id", id).Msg("edit user")
			return flashRedirect(c, session.FlashError, fmt.Sprintf("Error editing user: %v", err), "/")
		}
		return flashRedirect(c, session.FlashInfo, "User Detail Updated", "/")
	}
}

// DeleteUserHandler 刪除使用者並結束其所有 session
func DeleteUserHandler(db database.DB, purger session.Purger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		if err := deleteUser(c.Request().Context(), db, id); err != nil {
			log.Error().Err(err).Int("user_id", id).Msg("delete user")
			return flashRedirect(c, session.FlashError, fmt.Sprintf("Error deleting user: %v", err), "/")
		}
		purger.PurgeUser(id)
		// 刪除自己時必須先登出，否則本次回應會把 session 寫回 Redis
		if sess := session.FromContext(c); sess.UserID == id {
			sess.Logout()
		}
		return flashRedirect(c, session.FlashInfo, "User Details Deleted", "/")
	}
}

func editAction(id int) string {
	return fmt.Sprintf("/editUser/%d", id)
}

func renderUserForm(c echo.Context, code int, page, action string, form dto.UserForm, errs validation.FieldErrors) error {
	title := "Add user"
	if page == view.PageEditUser {
		title = "Edit user"
	}
	return c.Render(code, page, view.UserFormPage{
		Page:   newPage(c, title),
		Action: action,
		Form:   form,
		Errors: errs,
	})
}
