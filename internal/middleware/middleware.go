// File: internal/middleware/middleware.go
package middleware

import (
	"context"
	"strings"

	"enhealth/internal/model"
	"enhealth/internal/service"

	"github.com/labstack/echo/v4"
)

const (
	ContextUserKey  = "user"
	ContextTokenKey = "token"
)

// Authenticator 解析 bearer token，由 *service.AuthService 實作
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.AuthUser, error)
}

func extractToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", service.ErrUnauthorized
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", service.ErrUnauthorized
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", service.ErrUnauthorized
	}
	return token, nil
}

// RequireSession 驗證 Bearer token，並把使用者與 token 放進 context
func RequireSession(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := extractToken(c)
			if err != nil {
				return err
			}
			user, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}
			c.Set(ContextUserKey, user)
			c.Set(ContextTokenKey, token)
			return next(c)
		}
	}
}

// UserFrom 取出 RequireSession 設定的使用者；未經驗證時回傳 nil
func UserFrom(c echo.Context) *model.AuthUser {
	u, _ := c.Get(ContextUserKey).(*model.AuthUser)
	return u
}

func TokenFrom(c echo.Context) string {
	t, _ := c.Get(ContextTokenKey).(string)
	return t
}
