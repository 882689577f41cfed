// File: internal/database/open.go
package database

import (
	"context"
	"fmt"
	"strings"
)

// Backend 支援的資料庫種類，同時也是 migrations 子目錄名稱
type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
)

// ParseURL 依 DATABASE_URL 判斷 backend，並回傳 driver 需要的 DSN
//
//	postgres://… , postgresql://…  → pgx，原樣使用
//	sqlite://path , file:path      → mattn/go-sqlite3，並加上 pragma
func ParseURL(url string) (Backend, string, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return BackendPostgres, url, nil
	case strings.HasPrefix(url, "sqlite://"):
		path := strings.TrimPrefix(url, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("sqlite url %q has no path", url)
		}
		return BackendSQLite, sqliteDSN("file:" + path), nil
	case strings.HasPrefix(url, "file:"):
		return BackendSQLite, sqliteDSN(url), nil
	default:
		return "", "", fmt.Errorf("unsupported database url %q", url)
	}
}

func sqliteDSN(dsn string) string {
	params := []string{"_foreign_keys=on", "_busy_timeout=5000"}
	if !strings.Contains(dsn, "mode=memory") && !strings.Contains(dsn, ":memory:") {
		params = append(params, "_journal_mode=WAL")
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

// Open 連線到 url 指定的資料庫
func Open(ctx context.Context, url string) (DB, error) {
	backend, dsn, err := ParseURL(url)
	if err != nil {
		return nil, err
	}
	if backend == BackendPostgres {
		return NewPgxPool(ctx, dsn)
	}
	return NewSQLite(dsn)
}

// RunMigrations 嵌入並執行 SQL migration (up all)
func RunMigrations(url string) error {
	return migrateURL(url, false)
}

// RollbackAll 退回所有 migration (down to version 0)
func RollbackAll(url string) error {
	return migrateURL(url, true)
}

func migrateURL(url string, down bool) error {
	backend, dsn, err := ParseURL(url)
	if err != nil {
		return err
	}
	if backend == BackendPostgres {
		return migratePostgres(dsn, down)
	}

	return migrateSQLite(dsn, down)
}
