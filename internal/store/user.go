// File: internal/store/user.go
package store

import (
	"context"
	"errors"
	"fmt"

	"enhealth/internal/database"
	"enhealth/internal/model"
)

// ErrDuplicate insert 違反 unique 限制時回傳
var ErrDuplicate = errors.New("duplicate key")

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, created_at)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		u.Email,
		u.PasswordHash,
		u.CreatedAt,
	)
	if err := row.Scan(&u.ID); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("CreateUser: %w", ErrDuplicate)
		}
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at
		 FROM users WHERE email = $1`,
		email,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

// DeleteUser 刪除使用者；session 與歷史紀錄由 ON DELETE CASCADE 一併刪除
func DeleteUser(ctx context.Context, db database.DB, id int64) error {
	_, err := db.Exec(ctx,
		`DELETE FROM users WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	return nil
}
