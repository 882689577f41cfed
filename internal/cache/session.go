// File: internal/cache/session.go
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"enhealth/internal/model"

	"github.com/redis/go-redis/v9"
)

const sessionPrefix = "session:"

// SessionCache 快取 token -> 使用者 的對應，只是資料庫的前置層。
// 資料庫永遠是權威來源，快取錯誤由呼叫端記錄後忽略。
type SessionCache struct {
	c   Cache
	ttl time.Duration
}

func NewSessionCache(c Cache, ttl time.Duration) *SessionCache {
	return &SessionCache{c: c, ttl: ttl}
}

func sessionKey(token string) string { return sessionPrefix + token }

// Get 回傳快取中的使用者；未命中時回傳 (nil, nil)。
func (s *SessionCache) Get(ctx context.Context, token string) (*model.AuthUser, error) {
	raw, err := s.c.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var u model.AuthUser
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *SessionCache) Put(ctx context.Context, token string, u *model.AuthUser) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.c.Set(ctx, sessionKey(token), raw, s.ttl).Err()
}

func (s *SessionCache) Evict(ctx context.Context, tokens ...string) error {
	if len(tokens) == 0 {
		return nil
	}
	keys := make([]string, len(tokens))
	for i, t := range tokens {
		keys[i] = sessionKey(t)
	}
	return s.c.Del(ctx, keys...).Err()
}
