// File: internal/router/router.go
package router

import (
	"time"

	"github.com/labstack/echo/v4"

	"enhealth/internal/cache"
	"enhealth/internal/database"
	"enhealth/internal/handler"
	"enhealth/internal/handler/auth"
	"enhealth/internal/handler/history"
	"enhealth/internal/handler/predict"
	"enhealth/internal/middleware"
	"enhealth/internal/service"
)

type Options struct {
	// SessionTTL 是 Redis 中 session 快取的存活時間，cch 為 nil 時忽略
	SessionTTL time.Duration
	// Predictor 為 nil 時不註冊 /predict
	Predictor predict.Predictor
}

// Setup 註冊所有路由與中介層。cch 可為 nil（不啟用 session 快取）
func Setup(e *echo.Echo, db database.DB, cch cache.Cache, opts Options) {
	var sessions *cache.SessionCache
	if cch != nil {
		sessions = cache.NewSessionCache(cch, opts.SessionTTL)
	}
	authSvc := service.NewAuthService(db, sessions, e.Logger)
	historySvc := service.NewHistoryService(db)
	requireSession := middleware.RequireSession(authSvc)

	api := e.Group("/api")

	// 健康檢查（公開）
	api.GET("/ping", handler.PingHandler(db, cch))

	// 帳號與 session
	api.POST("/auth/register", auth.RegisterHandler(authSvc))
	api.POST("/auth/login", auth.LoginHandler(authSvc))
	api.GET("/auth/me", auth.MeHandler(authSvc), requireSession)
	api.DELETE("/auth/me", auth.DeleteMeHandler(authSvc), requireSession)
	api.POST("/auth/logout", auth.LogoutHandler(authSvc), requireSession)

	// 評估紀錄，只能存取自己的
	api.GET("/history", history.ListHandler(historySvc), requireSession)
	api.POST("/history", history.AppendHandler(historySvc), requireSession)

	if opts.Predictor != nil {
		api.POST("/predict/:condition", predict.PredictHandler(opts.Predictor), requireSession)
	}
}
