// File: internal/handler/web/auth.go
package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"user-crud/internal/database"
	"user-crud/internal/dto"
	"user-crud/internal/model"
	"user-crud/internal/session"
	"user-crud/internal/store"
	"user-crud/internal/validation"
	"user-crud/internal/view"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

func RegisterFormHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, view.PageRegister, view.RegisterPage{Page: newPage(c, "Register")})
	}
}

// RegisterHandler 建立含 email 與密碼的帳號；email 已被使用時拒絕
// 檢查與新增之間沒有鎖，併發註冊同一 email 可能產生重複資料
func RegisterHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var form dto.RegisterForm
		if err := c.Bind(&form); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
		}
		// Email 轉為小寫以確保一致性
		form.Email = strings.ToLower(strings.TrimSpace(form.Email))
		if err := c.Validate(&form); err != nil {
			form.Password = ""
			return c.Render(http.StatusUnprocessableEntity, view.PageRegister, view.RegisterPage{
				Page:   newPage(c, "Register"),
				Form:   form,
				Errors: validation.Fields(err),
			})
		}

		ctx := c.Request().Context()
		_, err := getUserByEmail(ctx, db, form.Email)
		switch {
		case err == nil:
			return flashRedirect(c, session.FlashError, "Email is already registered. Please use a different email.", "/register")
		case !errors.Is(err, store.ErrUserNotFound):
			log.Error().Err(err).Msg("register: lookup email")
			return flashRedirect(c, session.FlashError, fmt.Sprintf("Registration error: %v", err), "/register")
		}

		hash, err := hashPassword(form.Password)
		if err != nil {
			log.Error().Err(err).Msg("register: hash password")
			return flashRedirect(c, session.FlashError, fmt.Sprintf("Registration error: %v", err), "/register")
		}
		user := &model.User{Name: form.Name, Email: &form.Email, PasswordHash: &hash}
		if _, err := createUser(ctx, db, user); err != nil {
			log.Error().Err(err).Msg("register: create user")
			return flashRedirect(c, session.FlashError, fmt.Sprintf("Registration error: %v", err), "/register")
		}

		log.Info().Int("user_id", user.ID).Msg("user registered")
		return flashRedirect(c, session.FlashInfo, "Registration successful. Please log in.", "/login")
	}
}

func LoginFormHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, view.PageLogin, view.LoginPage{Page: newPage(c, "Login")})
	}
}

// LoginHandler 驗證帳密並建立登入 session
// 帳號不存在與密碼錯誤回傳相同訊息
func LoginHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var form dto.LoginForm
		if err := c.Bind(&form); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid form data")
		}
		form.Email = strings.ToLower(strings.TrimSpace(form.Email))
		if err := c.Validate(&form); err != nil {
			form.Password = ""
			return c.Render(http.StatusUnprocessableEntity, view.PageLogin, view.LoginPage{
				Page:   newPage(c, "Login"),
				Form:   form,
				Errors: validation.Fields(err),
			})
		}

		ctx := c.Request().Context()
		user, err := getUserByEmail(ctx, db, form.Email)
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			user = &model.User{}
		case err != nil:
			log.Error().Err(err).Msg("login: lookup email")
			return flashRedirect(c, session.FlashError, fmt.Sprintf("Login error: %v", err), "/login")
		}

		if err := authenticateUser(ctx, *user, form.Password); err != nil {
			log.Info().Str("email", form.Email).Msg("login failed")
			return flashRedirect(c, session.FlashError, "Invalid email or password.", "/login")
		}

		session.FromContext(c).Login(user.ID, user.Name)
		log.Info().Int("user_id", user.ID).Msg("user authenticated")
		return flashRedirect(c, session.FlashInfo, "Logged in successfully.", "/dashboard")
	}
}

// LogoutHandler 清除登入資訊
func LogoutHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		session.FromContext(c).Logout()
		return flashRedirect(c, session.FlashInfo, "Logged out successfully.", "/login")
	}
}

// DashboardHandler 問候目前登入的使用者
func DashboardHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		name := session.FromContext(c).UserName
		if name == "" {
			return c.Redirect(http.StatusFound, "/login")
		}
		return c.Render(http.StatusOK, view.PageDashboard, view.DashboardPage{
			Page:     newPage(c, "Dashboard"),
			UserName: name,
		})
	}
}
