package session

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

// Middleware 在每個請求載入 session 並放入 echo.Context；
// 若 handler 修改了 session，會在回應標頭送出前寫回 Redis 並更新 cookie
func Middleware(store *Store, skipper middleware.Skipper) echo.MiddlewareFunc {
	if skipper == nil {
		skipper = middleware.DefaultSkipper
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper(c) {
				return next(c)
			}

			ctx := c.Request().Context()
			sess := New()
			if ck, err := c.Cookie(CookieName); err == nil && ck.Value != "" {
				loaded, err := store.Load(ctx, ck.Value)
				switch {
				case err == nil:
					sess = loaded
				case errors.Is(err, ErrNoSession), errors.Is(err, ErrInvalidToken):
					// 過期或偽造的 cookie 視為匿名
				default:
					log.Error().Err(err).Msg("session load failed")
				}
			}
			c.Set(ContextKey, sess)

			c.Response().Before(func() {
				if !sess.Dirty() {
					return
				}
				token, err := store.Save(ctx, sess)
				if err != nil {
					log.Error().Err(err).Msg("session save failed")
					return
				}
				c.SetCookie(store.Cookie(token))
			})

			return next(c)
		}
	}
}
