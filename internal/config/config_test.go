// File: internal/config/config_test.go
package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var keys = []string{
	"PORT", "DATABASE_URL", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"SESSION_CACHE_TTL", "ML_API_URL", "ML_SHARED_SECRET", "ML_TIMEOUT",
	"STATIC_DIR", "DEBUG",
}

// clearEnv 清空相關環境變數，並在測試結束後還原。
func clearEnv(t *testing.T) {
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "4000", cfg.Port)
	require.Equal(t, ":4000", cfg.Addr())
	require.Equal(t, "sqlite://enhealth.db", cfg.DatabaseURL)
	require.Empty(t, cfg.Redis.Addr)
	require.Equal(t, 0, cfg.Redis.DB)
	require.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	require.Empty(t, cfg.ML.URL)
	require.Equal(t, 15*time.Second, cfg.ML.Timeout)
	require.False(t, cfg.Debug)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://u:p@h/db")
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	t.Setenv("REDIS_PASSWORD", "pw")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("SESSION_CACHE_TTL", "30s")
	t.Setenv("ML_API_URL", "http://ml:5000")
	t.Setenv("ML_SHARED_SECRET", "shh")
	t.Setenv("ML_TIMEOUT", "2s")
	t.Setenv("STATIC_DIR", "./public")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "postgres://u:p@h/db", cfg.DatabaseURL)
	require.Equal(t, RedisConfig{Addr: "127.0.0.1:6379", Password: "pw", DB: 2, TTL: 30 * time.Second}, cfg.Redis)
	require.Equal(t, MLConfig{URL: "http://ml:5000", Secret: "shh", Timeout: 2 * time.Second}, cfg.ML)
	require.Equal(t, "./public", cfg.StaticDir)
	require.True(t, cfg.Debug)

	s := cfg.String()
	require.NotContains(t, s, "shh")
	require.NotContains(t, s, "pw")
}

func TestLoadInvalid(t *testing.T) {
	cases := map[string]string{
		"PORT":              "http",
		"DATABASE_URL":      "",
		"REDIS_DB":          "zero",
		"SESSION_CACHE_TTL": "0s",
		"ML_TIMEOUT":        "soon",
		"DEBUG":             "maybe",
	}
	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(k, v)
			_, err := Load()
			require.Error(t, err)
		})
	}
}
