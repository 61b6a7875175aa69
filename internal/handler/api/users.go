// File: internal/handler/api/users.go
package api

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

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// CreateUserHandler 建立新使用者
// @Summary     Create a new user
// @Description 接收 JSON 並建立新使用者；所有欄位皆必填，Email 會自動轉小寫
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body     dto.CreateUserRequest true "使用者資料"
// @Success     201  {object} dto.MessageResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     415  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /users [post]
func CreateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !isJSON(c) {
			return errorJSON(c, http.StatusUnsupportedMediaType, errUnsupportedMediaType)
		}
		var req dto.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return errorJSON(c, http.StatusBadRequest, "Invalid JSON body.")
		}
		if err := c.Validate(&req); err != nil {
			return errorJSON(c, http.StatusBadRequest,
				"Missing required fields. All fields (name, city, age, email, password) are required.")
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			log.Error().Err(err).Msg("api create user: hash password")
			return errorJSON(c, http.StatusInternalServerError, fmt.Sprintf("Failed to create user: %v", err))
		}
		email := strings.ToLower(req.Email)
		user := &model.User{
			Name:         req.Name,
			City:         &req.City,
			Age:          &req.Age,
			Email:        &email,
			PasswordHash: &hash,
		}
		if _, err := createUser(c.Request().Context(), db, user); err != nil {
			log.Error().Err(err).Msg("api create user")
			return errorJSON(c, http.StatusInternalServerError, fmt.Sprintf("Failed to create user: %v", err))
		}
		return c.JSON(http.StatusCreated, dto.MessageResponse{Message: "User created successfully"})
	}
}

// ListUsersHandler 列出所有使用者
// @Summary     List users
// @Tags        users
// @Produce     json
// @Success     200 {array}  dto.UserResponse
// @Failure     500 {object} dto.HTTPError
// @Router      /users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			log.Error().Err(err).Msg("api list users")
			return errorJSON(c, http.StatusInternalServerError, fmt.Sprintf("Failed to fetch users: %v", err))
		}
		return c.JSON(http.StatusOK, dto.NewUserResponses(users))
	}
}

// GetUserHandler 取得單一使用者
// @Summary     Get user by ID
// @Tags        users
// @Produce     json
// @Param       id  path     int true "User ID"
// @Success     200 {object} dto.UserResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     404 {object} dto.MessageResponse
// @Failure     500 {object} dto.HTTPError
// @Router      /users/{id} [get]
func GetUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := userID(c)
		if !ok {
			return errorJSON(c, http.StatusBadRequest, "Invalid user id.")
		}
		u, err := getUserByID(c.Request().Context(), db, id)
		if errors.Is(err, store.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, dto.MessageResponse{Message: "User not found"})
		}
		if err != nil {
			log.Error().Err(err).Int("user_id", id).Msg("api get user")
			return errorJSON(c, http.StatusInternalServerError, fmt.Sprintf("Failed to fetch user: %v", err))
		}
		return c.JSON(http.StatusOK, dto.NewUserResponse(*u))
	}
}

// UpdateUserHandler 更新使用者的 name、city、age
// @Summary     Update user
// @Description 三個欄位一律覆寫；不存在的 ID 也回傳成功
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id   path     int                   true "User ID"
// @Param       body body     dto.UpdateUserRequest true "更新資料"
// @Success     200  {object} dto.MessageResponse
// @Failure     400  {object} dto.HTTPError
// @Failure     415  {object} dto.HTTPError
// @Failure     500  {object} dto.HTTPError
// @Router      /users/{id} [put]
func UpdateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := userID(c)
		if !ok {
			return errorJSON(c, http.StatusBadRequest, "Invalid user id.")
		}
		if !isJSON(c) {
			return errorJSON(c, http.StatusUnsupportedMediaType, errUnsupportedMediaType)
		}
		var req dto.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return errorJSON(c, http.StatusBadRequest, "Invalid JSON body.")
		}
		if err := c.Validate(&req); err != nil {
			return errorJSON(c, http.StatusBadRequest,
				"Missing required fields. All fields (name, city, age) are required.")
		}

		if err := updateUser(c.Request().Context(), db, req.ToUser(id)); err != nil {
			log.Error().Err(err).Int("user_id", id).Msg("api update user")
			return errorJSON(c, http.StatusInternalServerError, fmt.Sprintf("Failed to update user: %v", err))
		}
		return c.JSON(http.StatusOK, dto.MessageResponse{Message: "User updated successfully"})
	}
}

// DeleteUserHandler 刪除使用者並結束其 session；重複刪除同樣回傳成功
// @Summary     Delete user
// @Tags        users
// @Produce     json
// @Param       id  path     int true "User ID"
// @Success     200 {object} dto.MessageResponse
// @Failure     400 {object} dto.HTTPError
// @Failure     500 {object} dto.HTTPError
// @Router      /users/{id} [delete]
func DeleteUserHandler(db database.DB, purger session.Purger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := userID(c)
		if !ok {
			return errorJSON(c, http.StatusBadRequest, "Invalid user id.")
		}
		if err := deleteUser(c.Request().Context(), db, id); err != nil {
			log.Error().Err(err).Int("user_id", id).Msg("api delete user")
			return errorJSON(c, http.StatusInternalServerError, fmt.Sprintf("Failed to delete user: %v", err))
		}
		purger.PurgeUser(id)
		return c.JSON(http.StatusOK, dto.MessageResponse{Message: "User deleted successfully"})
	}
}
