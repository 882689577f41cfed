// File: internal/service/auth.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"enhealth/internal/cache"
	"enhealth/internal/database"
	"enhealth/internal/model"
	"enhealth/internal/store"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

var (
	newSessionToken = uuid.NewString
	timeNow         = func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) }
)

// AuthService 管理帳號與 session。session 存在資料庫；
// SessionCache 可選，只用來加速 Authenticate
type AuthService struct {
	db       database.DB
	sessions *cache.SessionCache
	logger   echo.Logger
}

// NewAuthService 建立服務。sessions 為 nil 時不啟用快取；
// logger 為 nil 時使用 gommon logger
func NewAuthService(db database.DB, sessions *cache.SessionCache, logger echo.Logger) *AuthService {
	if logger == nil {
		logger = log.New("auth")
	}
	return &AuthService{db: db, sessions: sessions, logger: logger}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, email, password string) (string, *model.AuthUser, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, invalid("Email and password are required")
	}
	if err := validatePassword(password); err != nil {
		return "", nil, err
	}

	if _, err := store.GetUserByEmail(ctx, s.db, email); err == nil {
		return "", nil, ErrAccountExists
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return "", nil, fmt.Errorf("register: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", nil, err
	}
	u, err := store.CreateUser(ctx, s.db, &model.User{
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    timeNow(),
	})
	if errors.Is(err, store.ErrDuplicate) {
		return "", nil, ErrAccountExists
	}
	if err != nil {
		return "", nil, fmt.Errorf("register: %w", err)
	}
	return s.openSession(ctx, u)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.AuthUser, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, invalid("Email and password are required")
	}
	u, err := store.GetUserByEmail(ctx, s.db, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil, ErrAccountNotFound
	}
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}
	if err := ComparePassword(u.PasswordHash, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	return s.openSession(ctx, u)
}

func (s *AuthService) openSession(ctx context.Context, u *model.User) (string, *model.AuthUser, error) {
	token := newSessionToken()
	if err := store.CreateSession(ctx, s.db, &model.Session{
		Token:     token,
		UserID:    u.ID,
		CreatedAt: timeNow(),
	}); err != nil {
		return "", nil, fmt.Errorf("open session: %w", err)
	}
	return token, &model.AuthUser{ID: u.ID, Email: u.Email}, nil
}

// Authenticate 由 bearer token 取得使用者
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.AuthUser, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	if s.sessions != nil {
		u, err := s.sessions.Get(ctx, token)
		if err != nil {
			s.logger.Warnf("session cache get: %v", err)
		} else if u != nil {
			return u, nil
		}
	}

	u, err := store.GetSessionUser(ctx, s.db, token)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if s.sessions == nil {
		return u, nil
	}
	if err := s.sessions.Put(ctx, token, u); err != nil {
		s.logger.Warnf("session cache put: %v", err)
		return u, nil
	}
	// 寫入快取後再確認一次：若期間 session 已被刪除，撤回剛寫入的項目
	if _, err := store.GetSessionUser(ctx, s.db, token); err != nil {
		s.evict(ctx, token)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	return u, nil
}

// Logout 先刪資料庫再清快取；未知 token 不算錯誤。
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := store.DeleteSession(ctx, s.db, token); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.evict(ctx, token)
	return nil
}

func (s *AuthService) Me(u *model.AuthUser) string {
	return u.Email
}

// DeleteAccount 刪除使用者，連同其所有 session 與歷史紀錄
func (s *AuthService) DeleteAccount(ctx context.Context, u *model.AuthUser) error {
	var tokens []string
	if s.sessions != nil {
		var err error
		if tokens, err = store.ListSessionTokens(ctx, s.db, u.ID); err != nil {
			return fmt.Errorf("delete account: %w", err)
		}
	}
	if err := store.DeleteUser(ctx, s.db, u.ID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	s.evict(ctx, tokens...)
	return nil
}

func (s *AuthService) evict(ctx context.Context, tokens ...string) {
	if s.sessions == nil {
		return
	}
	if err := s.sessions.Evict(ctx, tokens...); err != nil {
		s.logger.Warnf("session cache evict: %v", err)
	}
}
