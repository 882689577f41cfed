// File: internal/testutil/testutil.go
package testutil

import (
	"strings"
	"testing"

	"enhealth/internal/database"
)

// OpenSQLite 開啟只屬於 t 的 in-memory SQLite 並執行 migration，
// 由 t.Cleanup 關閉
func OpenSQLite(t *testing.T) *database.SQLite {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	_, dsn, err := database.ParseURL("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("parse test db url: %v", err)
	}
	db, err := database.NewSQLite(dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(db.Close)
	if err := db.Migrate(); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}
