// File: internal/handler/errors.go
package handler

import (
	"errors"
	"net/http"

	"enhealth/internal/api"
	"enhealth/internal/predictor"
	"enhealth/internal/service"

	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "Something went wrong. Please try again later."

// ErrInvalidBody request body 無法解析時回傳
var ErrInvalidBody = echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")

// errorStatus 將錯誤對應到 HTTP status 與回給 client 的訊息
// 無法辨識的錯誤一律視為內部錯誤
func errorStatus(err error) (int, string) {
	var (
		ve *service.ValidationError
		ue *predictor.UpstreamError
		he *echo.HTTPError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, service.ErrAccountExists):
		return http.StatusConflict, "Account already exists"
	case errors.Is(err, service.ErrAccountNotFound):
		return http.StatusNotFound, "Account not found"
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, predictor.ErrUnknownCondition):
		return http.StatusBadRequest, "Unknown assessment type"
	case errors.As(err, &ue):
		// 上游 5xx 不外洩訊息
		if ue.Status >= http.StatusInternalServerError {
			return http.StatusBadGateway, "Prediction service unavailable"
		}
		return ue.Status, ue.Message
	case errors.Is(err, predictor.ErrUnavailable):
		return http.StatusBadGateway, "Prediction service unavailable"
	case errors.As(err, &he):
		if he.Code >= http.StatusInternalServerError {
			return http.StatusInternalServerError, internalErrorMessage
		}
		if msg, ok := he.Message.(string); ok {
			return he.Code, msg
		}
		return he.Code, http.StatusText(he.Code)
	}
	return http.StatusInternalServerError, internalErrorMessage
}

// ErrorHandler 設為 echo.HTTPErrorHandler，handler 與 middleware 回傳的錯誤都在這裡處理
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, api.ErrorResponse{Error: msg})
	}
	if err != nil {
		c.Logger().Error(err)
	}
}
