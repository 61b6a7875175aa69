package middleware

import (
	"net/http"

	"user-crud/internal/session"

	"github.com/labstack/echo/v4"
)

// RequireLogin 未登入的請求導向 /login
func RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !session.FromContext(c).Authenticated() {
			return c.Redirect(http.StatusFound, "/login")
		}
		return next(c)
	}
}

// RedirectIfAuthenticated 已登入的請求導回首頁
func RedirectIfAuthenticated(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if session.FromContext(c).Authenticated() {
			return c.Redirect(http.StatusFound, "/")
		}
		return next(c)
	}
}
