// File: internal/database/sqlite.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/mattn/go-sqlite3"
)

var sqliteWithInstanceFn = migratesqlite.WithInstance

// SQLite 把內嵌的 SQLite 轉接成 DB，store 仍以 pgx 的寫法撰寫。
// SQL 保留 $N placeholder，執行前改寫成 SQLite 的 ?N
type SQLite struct {
	db *sql.DB
}

// NewSQLite 以單一連線開啟 dsn；SQLite 同時只允許一個寫入者，
// 所有語句在這條連線上排隊
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sqlOpenDB("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// Migrate 在目前連線上執行嵌入的 sqlite migration。
// in-memory 資料庫重新開啟就會消失，所以直接用這條連線
func (s *SQLite) Migrate() error {
	driver, err := sqliteWithInstanceFn(s.db, &migratesqlite.Config{})
	if err != nil {
		return err
	}
	return applyMigrations(BackendSQLite, "sqlite3", driver, false)
}

func migrateSQLite(dsn string, down bool) error {
	sqlDB, err := sqlOpenDB("sqlite3", dsn)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	driver, err := sqliteWithInstanceFn(sqlDB, &migratesqlite.Config{})
	if err != nil {
		return err
	}
	return applyMigrations(BackendSQLite, "sqlite3", driver, down)
}

var placeholderRe = regexp.MustCompile(`\$(\d+)`)

func rebind(query string) string {
	return placeholderRe.ReplaceAllString(query, "?${1}")
}

func (s *SQLite) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	res, err := s.db.ExecContext(ctx, rebind(query), args...)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	return pgconn.NewCommandTag(commandTag(query, n)), nil
}

func (s *SQLite) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	rows, err := s.db.QueryContext(ctx, rebind(query), args...)
	if err != nil {
		return nil, err
	}
	return &sqliteRows{rows: rows}, nil
}

func (s *SQLite) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	return sqliteRow{row: s.db.QueryRowContext(ctx, rebind(query), args...)}
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLite) Close() {
	_ = s.db.Close()
}

// commandTag 模擬 postgres 的 command tag，例如 "INSERT 0 1"、"DELETE 3"
func commandTag(query string, rowsAffected int64) string {
	verb := "EXEC"
	if fields := strings.Fields(query); len(fields) > 0 {
		verb = strings.ToUpper(fields[0])
	}
	if verb == "INSERT" {
		return fmt.Sprintf("INSERT 0 %d", rowsAffected)
	}
	return fmt.Sprintf("%s %d", verb, rowsAffected)
}

type sqliteRow struct {
	row *sql.Row
}

func (r sqliteRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	if errors.Is(err, sql.ErrNoRows) {
		return pgx.ErrNoRows
	}
	return err
}

// sqliteRows 以 *sql.Rows 實作 pgx.Rows
type sqliteRows struct {
	rows *sql.Rows
	err  error
}

func (r *sqliteRows) Close() {
	if err := r.rows.Close(); err != nil && r.err == nil {
		r.err = err
	}
}

func (r *sqliteRows) Err() error {
	if r.err != nil {
		return r.err
	}
	return r.rows.Err()
}

func (r *sqliteRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (r *sqliteRows) FieldDescriptions() []pgconn.FieldDescription {
	cols, err := r.rows.Columns()
	if err != nil {
		return nil
	}
	fds := make([]pgconn.FieldDescription, len(cols))
	for i, c := range cols {
		fds[i] = pgconn.FieldDescription{Name: c}
	}
	return fds
}

func (r *sqliteRows) Next() bool { return r.rows.Next() }

func (r *sqliteRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }

func (r *sqliteRows) Values() ([]any, error) {
	cols, err := r.rows.Columns()
	if err != nil {
		return nil, err
	}
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := r.rows.Scan(ptrs...); err != nil {
		return nil, err
	}
	return vals, nil
}

func (r *sqliteRows) RawValues() [][]byte { return nil }

func (r *sqliteRows) Conn() *pgx.Conn { return nil }
