// File: cmd/service/main.go
// @title        User CRUD API
// @version      1.0
// @description  使用者管理服務的 JSON API 文件
// @host         localhost:8080
// @BasePath     /api
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"user-crud/internal/cache"
	"user-crud/internal/config"
	"user-crud/internal/database"
	"user-crud/internal/logger"
	"user-crud/internal/router"
	"user-crud/internal/session"
	"user-crud/internal/validation"
	"user-crud/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	_ "user-crud/docs" // 引入 swag 產出的 docs
)

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	newWorkerPool   = worker.NewPool
	exitFunc        = os.Exit
)

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	l := logger.New(cfg.LogLevel)
	log.Logger = l

	dbURL := cfg.DB.URL()
	db, err := newPgxPool(context.Background(), dbURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %v", err)
	}
	defer rdb.Close()

	if err := runMigrationsFn(dbURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()

	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()
	e.Use(middleware.Recover())
	e.Use(logger.RequestLogger(l, func(c echo.Context) bool {
		return strings.HasPrefix(c.Request().URL.Path, "/swagger")
	}))

	router.Setup(e, db, rdb, wp, session.Config{
		Secret: []byte(cfg.SecretKey),
		TTL:    cfg.SessionTTL,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("server starting")
	return startServer(e, cfg.HTTPAddr)
}

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("service stopped")
		exitFunc(1)
	}
}
