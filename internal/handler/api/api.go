// Package api 實作 /api/users 的 JSON CRUD 端點。
package api

import (
	"mime"
	"strconv"
	"strings"

	"user-crud/internal/dto"
	"user-crud/internal/service"
	"user-crud/internal/store"

	"github.com/labstack/echo/v4"
)

// 以下變數讓測試可以替換 store 與 service
var (
	createUser   = store.CreateUser
	listUsers    = store.ListUsers
	getUserByID  = store.GetUserByID
	updateUser   = store.UpdateUser
	deleteUser   = store.DeleteUser
	hashPassword = service.HashPassword
)

const errUnsupportedMediaType = "Unsupported Media Type. Content-Type must be application/json."

// isJSON 接受 application/json 與 application/*+json
func isJSON(c echo.Context) bool {
	mediaType, _, err := mime.ParseMediaType(c.Request().Header.Get(echo.HeaderContentType))
	if err != nil {
		return false
	}
	return mediaType == echo.MIMEApplicationJSON ||
		(strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json"))
}

func errorJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, dto.HTTPError{Error: msg})
}

// userID 解析路徑中的 :id
func userID(c echo.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	return id, err == nil
}

