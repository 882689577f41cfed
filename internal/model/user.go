// File: internal/model/user.go
package model

import "time"

type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// AuthUser 由 session token 解析出的使用者身分
type AuthUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}
