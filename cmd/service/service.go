// File: cmd/service/service.go
// @title        EnHealth API
// @version      1.0
// @description  EnHealth 健康自我評估的帳號、session 與評估紀錄 API
// @host         localhost:4000
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer <session token>
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"enhealth/internal/cache"
	"enhealth/internal/config"
	"enhealth/internal/database"
	"enhealth/internal/handler"
	"enhealth/internal/predictor"
	"enhealth/internal/router"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	glog "github.com/labstack/gommon/log"

	_ "enhealth/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

const shutdownTimeout = 10 * time.Second

var (
	loadConfig      = config.Load
	openDB          = database.Open
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	notifyContext   = signal.NotifyContext
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer  = func(e *echo.Echo, ctx context.Context) error { return e.Shutdown(ctx) }
	exitFunc        = os.Exit
)

func newEcho(cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.ErrorHandler
	e.Debug = cfg.Debug
	if cfg.Debug {
		e.Logger.SetLevel(glog.DEBUG)
	} else {
		e.Logger.SetLevel(glog.INFO)
	}
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("1M"))
	return e
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定錯誤: %w", err)
	}

	ctx, stop := notifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	var cch cache.Cache
	if cfg.Redis.Addr != "" {
		rdb, err := newRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("Redis 連線失敗: %w", err)
		}
		defer rdb.Close()
		cch = rdb
	}

	e := newEcho(cfg)
	e.Logger.Infof("starting with %s", cfg)

	opts := router.Options{SessionTTL: cfg.Redis.TTL}
	if cfg.ML.URL != "" {
		opts.Predictor = predictor.New(cfg.ML.URL, cfg.ML.Secret, cfg.ML.Timeout)
	}
	router.Setup(e, db, cch, opts)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if cfg.StaticDir != "" {
		e.Static("/", cfg.StaticDir)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- startServer(e, cfg.Addr()) }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("伺服器錯誤: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	e.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownServer(e, shutdownCtx); err != nil {
		return fmt.Errorf("關閉伺服器失敗: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
