// File: internal/handler/history/history.go
package history

import (
	"context"
	"encoding/json"
	"net/http"

	"enhealth/internal/api"
	"enhealth/internal/handler"
	"enhealth/internal/middleware"
	"enhealth/internal/model"
	"enhealth/internal/service"

	"github.com/labstack/echo/v4"
)

// Service 由 *service.HistoryService 實作
type Service interface {
	Append(ctx context.Context, userID int64, typ string, inputs, result json.RawMessage) (*model.HistoryEntry, error)
	List(ctx context.Context, userID int64) ([]model.HistoryEntry, error)
}

// ListHandler 取得目前使用者的評估紀錄，新的在前
// @Summary     List history
// @Tags        history
// @Produce     json
// @Success     200 {object} api.HistoryResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /history [get]
func ListHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		entries, err := svc.List(c.Request().Context(), middleware.UserFrom(c).ID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.HistoryResponse{History: entries})
	}
}

// AppendHandler 新增一筆評估紀錄；時間戳由伺服器決定
// @Summary     Append history
// @Description type 必須是 sleep、stress、covid、diabetes、lung 之一；inputs 與 result 必須是 JSON 物件
// @Tags        history
// @Accept      json
// @Produce     json
// @Param       body body     api.AppendHistoryRequest true "評估內容"
// @Success     201  {object} api.HistoryEntryResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /history [post]
func AppendHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.AppendHistoryRequest
		if err := c.Bind(&req); err != nil {
			return handler.ErrInvalidBody
		}
		if err := c.Validate(&req); err != nil {
			return &service.ValidationError{Message: "Type, inputs, and result are required"}
		}
		entry, err := svc.Append(c.Request().Context(), middleware.UserFrom(c).ID, req.Type, req.Inputs, req.Result)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, api.HistoryEntryResponse{Entry: *entry})
	}
}
