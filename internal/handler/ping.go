// File: internal/handler/ping.go
package handler

import (
	"net/http"

	"user-crud/internal/cache"
	"user-crud/internal/database"
	"user-crud/internal/dto"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// PingResponse 健康檢查回應模型
// swagger:model PingResponse
type PingResponse struct {
	// 回應訊息
	Message string `json:"message" example:"pong"`
}

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與 Redis 連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} PingResponse
// @Failure     500 {object} dto.HTTPError
// @Router      /ping [get]
func PingHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := database.Healthy(ctx, db); err != nil {
			log.Warn().Err(err).Msg("ping: database")
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Error: "database unhealthy"})
		}
		if err := cache.Healthy(ctx, rdb); err != nil {
			log.Warn().Err(err).Msg("ping: cache")
			return c.JSON(http.StatusInternalServerError, dto.HTTPError{Error: "cache unhealthy"})
		}
		return c.JSON(http.StatusOK, PingResponse{Message: "pong"})
	}
}
