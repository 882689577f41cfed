// File: internal/store/store_test.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"enhealth/internal/database"
	"enhealth/internal/model"
	"enhealth/internal/testutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

/* ---------- 假實作 ---------- */

// fakeRow 實作 pgx.Row，只回傳固定錯誤。
type fakeRow struct{ err error }

func (r fakeRow) Scan(...any) error { return r.err }

// fakeRows 實作 pgx.Rows，可模擬 Scan 與迭代錯誤。
type fakeRows struct {
	n       int
	scanErr error
	err     error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Next() bool                                   { r.n--; return r.n >= 0 }
func (r *fakeRows) Scan(...any) error                            { return r.scanErr }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func failingDB(err error, rows *fakeRows) *database.FakeDB {
	return &database.FakeDB{
		ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, err
		},
		QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
			if rows != nil {
				return rows, nil
			}
			return nil, err
		},
		QueryRowFn: func(context.Context, string, ...any) pgx.Row {
			return fakeRow{err: err}
		},
	}
}

/* ---------- 錯誤路徑 ---------- */

func TestStoreErrorsAreWrapped(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	db := failingDB(boom, nil)

	_, err := CreateUser(ctx, db, &model.User{Email: "a@x.com"})
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "CreateUser")

	_, err = GetUserByEmail(ctx, db, "a@x.com")
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, DeleteUser(ctx, db, 1), boom)
	require.ErrorIs(t, CreateSession(ctx, db, &model.Session{Token: "t"}), boom)
	_, err = GetSessionUser(ctx, db, "t")
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, DeleteSession(ctx, db, "t"), boom)
	_, err = ListSessionTokens(ctx, db, 1)
	require.ErrorIs(t, err, boom)
	_, err = CreateHistoryEntry(ctx, db, &model.HistoryEntry{})
	require.ErrorIs(t, err, boom)
	_, err = ListHistoryEntries(ctx, db, 1)
	require.ErrorIs(t, err, boom)
}

func TestCreateUserDuplicate(t *testing.T) {
	db := failingDB(&pgconn.PgError{Code: "23505"}, nil)
	_, err := CreateUser(context.Background(), db, &model.User{Email: "a@x.com"})
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestRowsErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := ListHistoryEntries(ctx, failingDB(nil, &fakeRows{n: 1, scanErr: boom}), 1)
	require.ErrorIs(t, err, boom)
	_, err = ListHistoryEntries(ctx, failingDB(nil, &fakeRows{err: boom}), 1)
	require.ErrorIs(t, err, boom)
	_, err = ListSessionTokens(ctx, failingDB(nil, &fakeRows{n: 1, scanErr: boom}), 1)
	require.ErrorIs(t, err, boom)
	_, err = ListSessionTokens(ctx, failingDB(nil, &fakeRows{err: boom}), 1)
	require.ErrorIs(t, err, boom)
}

/* ---------- SQLite 整合 ---------- */

func newUser(t *testing.T, db database.DB, email string) *model.User {
	t.Helper()
	u, err := CreateUser(context.Background(), db, &model.User{
		Email:        email,
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	})
	require.NoError(t, err)
	return u
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenSQLite(t)

	u := newUser(t, db, "a@x.com")
	require.NotZero(t, u.ID)

	got, err := GetUserByEmail(ctx, db, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "hash", got.PasswordHash)
	require.True(t, u.CreatedAt.Equal(got.CreatedAt))

	_, err = CreateUser(ctx, db, &model.User{Email: "a@x.com", PasswordHash: "h", CreatedAt: time.Now()})
	require.ErrorIs(t, err, ErrDuplicate)

	_, err = GetUserByEmail(ctx, db, "b@x.com")
	require.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestSessions(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenSQLite(t)
	u := newUser(t, db, "a@x.com")
	other := newUser(t, db, "b@x.com")

	for _, tok := range []string{"t1", "t2"} {
		require.NoError(t, CreateSession(ctx, db, &model.Session{Token: tok, UserID: u.ID, CreatedAt: time.Now()}))
	}
	require.NoError(t, CreateSession(ctx, db, &model.Session{Token: "t3", UserID: other.ID, CreatedAt: time.Now()}))

	au, err := GetSessionUser(ctx, db, "t2")
	require.NoError(t, err)
	require.Equal(t, &model.AuthUser{ID: u.ID, Email: "a@x.com"}, au)

	toks, err := ListSessionTokens(ctx, db, u.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"t1", "t2"}, toks)

	require.NoError(t, DeleteSession(ctx, db, "t1"))
	require.NoError(t, DeleteSession(ctx, db, "t1"))
	_, err = GetSessionUser(ctx, db, "t1")
	require.ErrorIs(t, err, pgx.ErrNoRows)

	// 刪除使用者會連帶移除 session
	require.NoError(t, DeleteUser(ctx, db, u.ID))
	_, err = GetSessionUser(ctx, db, "t2")
	require.ErrorIs(t, err, pgx.ErrNoRows)
	_, err = GetSessionUser(ctx, db, "t3")
	require.NoError(t, err)
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenSQLite(t)
	u := newUser(t, db, "a@x.com")
	other := newUser(t, db, "b@x.com")

	entries, err := ListHistoryEntries(ctx, db, u.ID)
	require.NoError(t, err)
	require.NotNil(t, entries)
	require.Empty(t, entries)

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	add := func(uid int64, typ string, at time.Time) *model.HistoryEntry {
		e, err := CreateHistoryEntry(ctx, db, &model.HistoryEntry{
			UserID:    uid,
			Type:      typ,
			Timestamp: at,
			Inputs:    json.RawMessage(`{"age":40}`),
			Result:    json.RawMessage(`{"risk":"low","score":0.1}`),
		})
		require.NoError(t, err)
		return e
	}
	first := add(u.ID, model.AssessmentSleep, base)
	second := add(u.ID, model.AssessmentStress, base.Add(time.Minute))
	tie := add(u.ID, model.AssessmentCovid, base.Add(time.Minute))
	add(other.ID, model.AssessmentLung, base.Add(time.Hour))

	entries, err = ListHistoryEntries(ctx, db, u.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, []int64{tie.ID, second.ID, first.ID},
		[]int64{entries[0].ID, entries[1].ID, entries[2].ID})
	require.Equal(t, model.AssessmentSleep, entries[2].Type)
	require.True(t, base.Equal(entries[2].Timestamp))
	require.JSONEq(t, `{"age":40}`, string(entries[2].Inputs))
	require.JSONEq(t, `{"risk":"low","score":0.1}`, string(entries[2].Result))

	require.NoError(t, DeleteUser(ctx, db, u.ID))
	entries, err = ListHistoryEntries(ctx, db, u.ID)
	require.NoError(t, err)
	require.Empty(t, entries)
}
