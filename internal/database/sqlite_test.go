// File: internal/database/sqlite_test.go
package database

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *SQLite {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	_, dsn, err := ParseURL("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	db, err := NewSQLite(dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.Migrate())
	return db
}

func TestRebind(t *testing.T) {
	require.Equal(t,
		"SELECT a FROM t WHERE a = ?1 AND b = ?2 OR c = ?1 LIMIT ?10",
		rebind("SELECT a FROM t WHERE a = $1 AND b = $2 OR c = $1 LIMIT $10"))
	require.Equal(t, "SELECT 1", rebind("SELECT 1"))
}

func TestCommandTag(t *testing.T) {
	require.Equal(t, "INSERT 0 1", commandTag("insert into t values (1)", 1))
	require.Equal(t, "DELETE 3", commandTag("\n\tDELETE FROM t", 3))
	require.Equal(t, "EXEC 0", commandTag("", 0))
}

func TestSQLiteStatements(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)
	require.NoError(t, db.Ping(ctx))

	now := time.Now().UTC().Truncate(time.Millisecond)
	var id int64
	err := db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, created_at) VALUES ($1, $2, $3) RETURNING id`,
		"a@x.com", "hash", now,
	).Scan(&id)
	require.NoError(t, err)
	require.Equal(t, int64(1), id)

	var createdAt time.Time
	require.NoError(t, db.QueryRow(ctx, `SELECT created_at FROM users WHERE id = $1`, id).Scan(&createdAt))
	require.True(t, now.Equal(createdAt))

	_, err = db.Exec(ctx, `INSERT INTO users (email, password_hash, created_at) VALUES ($1, $2, $3)`, "a@x.com", "h", now)
	require.Error(t, err)
	require.True(t, IsUniqueViolation(err))

	tag, err := db.Exec(ctx, `INSERT INTO sessions (id, user_id, created_at) VALUES ($1, $2, $3)`, "tok-1", id, now)
	require.NoError(t, err)
	require.True(t, tag.Insert())
	require.Equal(t, int64(1), tag.RowsAffected())
	_, err = db.Exec(ctx, `INSERT INTO sessions (id, user_id, created_at) VALUES ($1, $2, $3)`, "tok-2", id, now)
	require.NoError(t, err)

	var email string
	err = db.QueryRow(ctx, `SELECT email FROM users WHERE email = $1`, "nobody@x.com").Scan(&email)
	require.ErrorIs(t, err, pgx.ErrNoRows)

	rows, err := db.Query(ctx, `SELECT id, user_id FROM sessions WHERE user_id = $1 ORDER BY id`, id)
	require.NoError(t, err)
	require.Len(t, rows.FieldDescriptions(), 2)
	require.Equal(t, "user_id", rows.FieldDescriptions()[1].Name)
	var got []string
	for rows.Next() {
		vals, err := rows.Values()
		require.NoError(t, err)
		got = append(got, vals[0].(string))
	}
	rows.Close()
	require.NoError(t, rows.Err())
	require.Equal(t, []string{"tok-1", "tok-2"}, got)

	// session 隨使用者一併刪除
	tag, err = db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	require.NoError(t, err)
	require.True(t, tag.Delete())
	var n int
	require.NoError(t, db.QueryRow(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n))
	require.Zero(t, n)
}

func TestSQLiteFileMigrations(t *testing.T) {
	url := "sqlite://" + filepath.Join(t.TempDir(), "enhealth.db")
	require.NoError(t, RunMigrations(url))
	require.NoError(t, RunMigrations(url))

	db, err := Open(context.Background(), url)
	require.NoError(t, err)
	var n int
	require.NoError(t, db.QueryRow(context.Background(), `SELECT COUNT(*) FROM history`).Scan(&n))
	db.Close()

	require.NoError(t, RollbackAll(url))
	db, err = Open(context.Background(), url)
	require.NoError(t, err)
	defer db.Close()
	err = db.QueryRow(context.Background(), `SELECT COUNT(*) FROM history`).Scan(&n)
	require.Error(t, err)
}

func TestParseURL(t *testing.T) {
	b, dsn, err := ParseURL(pgURL)
	require.NoError(t, err)
	require.Equal(t, BackendPostgres, b)
	require.Equal(t, pgURL, dsn)

	b, dsn, err = ParseURL("postgresql://h/db")
	require.NoError(t, err)
	require.Equal(t, BackendPostgres, b)
	require.Equal(t, "postgresql://h/db", dsn)

	b, dsn, err = ParseURL("sqlite://data/enhealth.db")
	require.NoError(t, err)
	require.Equal(t, BackendSQLite, b)
	require.Equal(t, "file:data/enhealth.db?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", dsn)

	_, dsn, err = ParseURL("file:x?mode=memory&cache=shared")
	require.NoError(t, err)
	require.Equal(t, "file:x?mode=memory&cache=shared&_foreign_keys=on&_busy_timeout=5000", dsn)

	_, _, err = ParseURL("sqlite://")
	require.Error(t, err)
	_, _, err = ParseURL("mysql://h/db")
	require.Error(t, err)
	_, err = Open(context.Background(), "mysql://h/db")
	require.Error(t, err)
	require.Error(t, RunMigrations("mysql://h/db"))
}
