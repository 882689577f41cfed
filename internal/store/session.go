// File: internal/store/session.go
package store

import (
	"context"
	"fmt"

	"enhealth/internal/database"
	"enhealth/internal/model"
)

func CreateSession(ctx context.Context, db database.DB, s *model.Session) error {
	_, err := db.Exec(ctx,
		`INSERT INTO sessions (id, user_id, created_at)
		 VALUES ($1, $2, $3)`,
		s.Token,
		s.UserID,
		s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("CreateSession: %w", err)
	}
	return nil
}

// GetSessionUser 由 token 取得所屬使用者；pgx.ErrNoRows 表示沒有對應的 session
func GetSessionUser(ctx context.Context, db database.DB, token string) (*model.AuthUser, error) {
	row := db.QueryRow(ctx,
		`SELECT users.id, users.email
		 FROM sessions
		 JOIN users ON users.id = sessions.user_id
		 WHERE sessions.id = $1`,
		token,
	)
	u := &model.AuthUser{}
	if err := row.Scan(&u.ID, &u.Email); err != nil {
		return nil, fmt.Errorf("GetSessionUser: %w", err)
	}
	return u, nil
}

func DeleteSession(ctx context.Context, db database.DB, token string) error {
	_, err := db.Exec(ctx,
		`DELETE FROM sessions WHERE id = $1`,
		token,
	)
	if err != nil {
		return fmt.Errorf("DeleteSession: %w", err)
	}
	return nil
}

func ListSessionTokens(ctx context.Context, db database.DB, userID int64) ([]string, error) {
	rows, err := db.Query(ctx,
		`SELECT id FROM sessions WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListSessionTokens: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var tok string
		if err := rows.Scan(&tok); err != nil {
			return nil, fmt.Errorf("ListSessionTokens: %w", err)
		}
		tokens = append(tokens, tok)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListSessionTokens: %w", err)
	}
	return tokens, nil
}
