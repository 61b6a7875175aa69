package web

import (
	"errors"
	"net/http"
	"strings"

	"user-crud/internal/session"
	"user-crud/internal/view"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ErrorHandler 對非 /api 路徑的 404 渲染找不到頁面，其餘交給 echo 預設處理
func ErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusNotFound || strings.HasPrefix(c.Request().URL.Path, "/api/") {
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		page := view.Page{Title: "Page Not Found", CurrentUser: session.FromContext(c).UserName}
		if rerr := c.Render(http.StatusNotFound, view.PageNotFound, page); rerr != nil {
			log.Error().Err(rerr).Msg("render not found page")
			e.DefaultHTTPErrorHandler(err, c)
		}
	}
}
