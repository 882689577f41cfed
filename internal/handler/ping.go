// File: internal/handler/ping.go
package handler

import (
	"context"
	"fmt"
	"net/http"

	"enhealth/internal/api"
	"enhealth/internal/cache"

	"github.com/labstack/echo/v4"
)

// Pinger 健康檢查只需要 database.DB 的 Ping
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與（若有設定）Redis 連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} api.PingResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /ping [get]
func PingHandler(db Pinger, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			return fmt.Errorf("ping database: %w", err)
		}
		if cch != nil {
			if err := cch.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("ping cache: %w", err)
			}
		}
		return c.JSON(http.StatusOK, api.PingResponse{Message: "pong"})
	}
}
