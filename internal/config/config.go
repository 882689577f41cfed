// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config 服務啟動所需的設定，啟動時從環境變數讀取一次
type Config struct {
	Port        string
	DatabaseURL string
	Redis       RedisConfig
	ML          MLConfig
	StaticDir   string
	Debug       bool
}

// RedisConfig 設定 Addr 時才啟用 session 快取
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// MLConfig 設定 URL 時才註冊 predict 路由
type MLConfig struct {
	URL     string
	Secret  string
	Timeout time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "4000"),
		DatabaseURL: getEnv("DATABASE_URL", "sqlite://enhealth.db"),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		ML: MLConfig{
			URL:    getEnv("ML_API_URL", ""),
			Secret: getEnv("ML_SHARED_SECRET", ""),
		},
		StaticDir: getEnv("STATIC_DIR", ""),
	}

	if _, err := strconv.ParseUint(cfg.Port, 10, 16); err != nil {
		return nil, fmt.Errorf("invalid PORT %q", cfg.Port)
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must not be empty")
	}

	var err error
	if cfg.Redis.DB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.Redis.TTL, err = getEnvDuration("SESSION_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ML.Timeout, err = getEnvDuration("ML_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.Debug, err = getEnvBool("DEBUG", false); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr Echo 的監聽位址
func (c *Config) Addr() string { return ":" + c.Port }

// String 遮蔽密碼與 secret
func (c *Config) String() string {
	return fmt.Sprintf("Config{port: %s, redis: %t, ml: %t, static: %q, debug: %t}",
		c.Port, c.Redis.Addr != "", c.ML.URL != "", c.StaticDir, c.Debug)
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%s must be positive", key)
		}
		return d, nil
	}
	return defaultVal, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	if value, exists := os.LookupEnv(key); exists {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid boolean for %s: %w", key, err)
		}
		return b, nil
	}
	return defaultVal, nil
}
