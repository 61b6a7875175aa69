// Package web 實作伺服器端渲染的 HTML 路由：使用者 CRUD、註冊、登入與儀表板。
package web

import (
	"net/http"
	"strconv"

	"user-crud/internal/service"
	"user-crud/internal/session"
	"user-crud/internal/store"
	"user-crud/internal/view"

	"github.com/labstack/echo/v4"
)

// csrfContextKey 與 echo CSRF middleware 預設的 ContextKey 相同
const csrfContextKey = "csrf"

// 以下變數讓測試可以替換 store 與 service
var (
	listUsers        = store.ListUsers
	getUserByID      = store.GetUserByID
	getUserByEmail   = store.GetUserByEmail
	createUser       = store.CreateUser
	updateUser       = store.UpdateUser
	deleteUser       = store.DeleteUser
	hashPassword     = service.HashPassword
	authenticateUser = service.AuthenticateUser
)

// newPage 組出版面資料，並取出待顯示的 flash
func newPage(c echo.Context, title string) view.Page {
	sess := session.FromContext(c)
	token, _ := c.Get(csrfContextKey).(string)
	return view.Page{
		Title:       title,
		Flashes:     sess.PopFlashes(),
		CSRF:        token,
		CurrentUser: sess.UserName,
	}
}

// flashRedirect 加入 flash 後以 302 導向 to
func flashRedirect(c echo.Context, category, message, to string) error {
	session.FromContext(c).AddFlash(category, message)
	return c.Redirect(http.StatusFound, to)
}

// pathID 解析 :id；不是整數時視為找不到頁面
func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.ErrNotFound
	}
	return id, nil
}
