// File: internal/router/router.go
package router

import (
	"net/http"
	"strings"

	"user-crud/internal/cache"
	"user-crud/internal/database"
	"user-crud/internal/handler"
	"user-crud/internal/handler/api"
	"user-crud/internal/handler/web"
	"user-crud/internal/middleware"
	"user-crud/internal/session"
	"user-crud/internal/view"
	"user-crud/internal/worker"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// skipNonHTML 讓 JSON API 與 Swagger 不經過 session
func skipNonHTML(c echo.Context) bool {
	p := c.Request().URL.Path
	return strings.HasPrefix(p, "/api/") || p == "/api" || strings.HasPrefix(p, "/swagger")
}

// Setup 註冊所有路由與中介層
// CSRF 只掛在 HTML 路由上，未匹配的路徑 (任何 method) 都交給 404 頁面
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, wp worker.Pool, cfg session.Config) {
	e.Renderer = view.MustNew()
	e.HTTPErrorHandler = web.ErrorHandler(e)

	store := session.NewStore(rdb, cfg)
	purger := session.NewPurger(store, wp)

	e.Use(session.Middleware(store, skipNonHTML))
	csrf := echomw.CSRFWithConfig(echomw.CSRFConfig{
		TokenLookup:    "form:csrf_token",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.Secure,
		CookieSameSite: http.SameSiteLaxMode,
	})

	// 使用者 CRUD 頁面
	e.GET("/", web.HomeHandler(db), csrf)
	e.GET("/addUsers", web.AddUserFormHandler(), csrf)
	e.POST("/addUsers", web.AddUserHandler(db), csrf)
	e.GET("/editUser/:id", web.EditUserFormHandler(db), csrf)
	e.POST("/editUser/:id", web.EditUserHandler(db), csrf)
	e.POST("/deleteUser/:id", web.DeleteUserHandler(db, purger), csrf)

	// 註冊與登入
	e.GET("/register", web.RegisterFormHandler(), csrf)
	e.POST("/register", web.RegisterHandler(db), csrf)
	e.GET("/login", web.LoginFormHandler(), csrf, middleware.RedirectIfAuthenticated)
	e.POST("/login", web.LoginHandler(db), csrf, middleware.RedirectIfAuthenticated)
	e.GET("/logout", web.LogoutHandler(), middleware.RequireLogin)
	e.GET("/dashboard", web.DashboardHandler(), middleware.RequireLogin)

	// 健康檢查
	e.GET("/api/ping", handler.PingHandler(db, rdb))

	// JSON API
	e.POST("/api/users", api.CreateUserHandler(db))
	e.GET("/api/users", api.ListUsersHandler(db))
	e.GET("/api/users/:id", api.GetUserHandler(db))
	e.PUT("/api/users/:id", api.UpdateUserHandler(db))
	e.DELETE("/api/users/:id", api.DeleteUserHandler(db, purger))

	// Swagger UI
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
