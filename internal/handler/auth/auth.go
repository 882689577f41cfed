// File: internal/handler/auth/auth.go
package auth

import (
	"context"
	"net/http"

	"enhealth/internal/api"
	"enhealth/internal/handler"
	"enhealth/internal/middleware"
	"enhealth/internal/model"
	"enhealth/internal/service"

	"github.com/labstack/echo/v4"
)

// Service 由 *service.AuthService 實作
type Service interface {
	Register(ctx context.Context, email, password string) (string, *model.AuthUser, error)
	Login(ctx context.Context, email, password string) (string, *model.AuthUser, error)
	Logout(ctx context.Context, token string) error
	Me(u *model.AuthUser) string
	DeleteAccount(ctx context.Context, u *model.AuthUser) error
}

func bindCredentials(c echo.Context) (*api.CredentialsRequest, error) {
	var req api.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return nil, handler.ErrInvalidBody
	}
	if err := c.Validate(&req); err != nil {
		return nil, &service.ValidationError{Message: "Email and password are required"}
	}
	return &req, nil
}

func authResponse(c echo.Context, token string, u *model.AuthUser) error {
	return c.JSON(http.StatusOK, api.AuthResponse{
		Token: token,
		User:  api.UserResponse{Email: u.Email},
	})
}

// RegisterHandler 建立帳號並直接登入
// @Summary     Register
// @Description Email 會去除空白並轉小寫；密碼至少 6 個字元。成功時回傳新的 session token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.CredentialsRequest true "帳號密碼"
// @Success     200  {object} api.AuthResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/register [post]
func RegisterHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		req, err := bindCredentials(c)
		if err != nil {
			return err
		}
		token, u, err := svc.Register(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return err
		}
		return authResponse(c, token, u)
	}
}

// LoginHandler 以 Email/Password 登入，每次登入都會建立新的 session
// @Summary     Login
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.CredentialsRequest true "帳號密碼"
// @Success     200  {object} api.AuthResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		req, err := bindCredentials(c)
		if err != nil {
			return err
		}
		token, u, err := svc.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return err
		}
		return authResponse(c, token, u)
	}
}

// MeHandler 取得目前登入的使用者
// @Summary     Current user
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /auth/me [get]
func MeHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, api.UserResponse{Email: svc.Me(middleware.UserFrom(c))})
	}
}

// LogoutHandler 註銷目前的 session
// @Summary     Logout
// @Tags        auth
// @Success     204
// @Failure     401 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /auth/logout [post]
func LogoutHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := svc.Logout(c.Request().Context(), middleware.TokenFrom(c)); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// DeleteMeHandler 刪除目前使用者，連同所有 session 與歷史紀錄
// @Summary     Delete my account
// @Tags        auth
// @Success     204
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /auth/me [delete]
func DeleteMeHandler(svc Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := svc.DeleteAccount(c.Request().Context(), middleware.UserFrom(c)); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}
