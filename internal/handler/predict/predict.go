// File: internal/handler/predict/predict.go
package predict

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"enhealth/internal/handler"
	"enhealth/internal/middleware"

	"github.com/labstack/echo/v4"
)

const maxFormBytes = 1 << 20

// Predictor 由 *predictor.Client 實作
type Predictor interface {
	Predict(ctx context.Context, condition string, body []byte, userID int64) ([]byte, error)
}

// PredictHandler 將表單轉送到 ML 預測服務，並原樣回傳結果
// @Summary     Predict risk
// @Description condition 為 sleep、stress、covid、diabetes、lung 之一
// @Tags        predict
// @Accept      json
// @Produce     json
// @Param       condition path     string true "評估類型"
// @Param       body      body     object true "表單欄位"
// @Success     200       {object} object
// @Failure     400       {object} api.ErrorResponse
// @Failure     401       {object} api.ErrorResponse
// @Failure     502       {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /predict/{condition} [post]
func PredictHandler(p Predictor) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxFormBytes))
		if err != nil || !json.Valid(body) {
			return handler.ErrInvalidBody
		}
		out, err := p.Predict(c.Request().Context(), c.Param("condition"), body, middleware.UserFrom(c).ID)
		if err != nil {
			return err
		}
		return c.JSONBlob(http.StatusOK, out)
	}
}
