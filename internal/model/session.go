// File: internal/model/session.go
package model

import "time"

type Session struct {
	Token     string    `db:"id" json:"-"`
	UserID    int64     `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
