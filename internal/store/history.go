// File: internal/store/history.go
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"enhealth/internal/database"
	"enhealth/internal/model"
)

func CreateHistoryEntry(ctx context.Context, db database.DB, e *model.HistoryEntry) (*model.HistoryEntry, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO history (user_id, type, "timestamp", inputs, result)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		e.UserID,
		e.Type,
		e.Timestamp,
		string(e.Inputs),
		string(e.Result),
	)
	if err := row.Scan(&e.ID); err != nil {
		return nil, fmt.Errorf("CreateHistoryEntry: %w", err)
	}
	return e, nil
}

// ListHistoryEntries 取得使用者的紀錄，新的在前；回傳值不會是 nil
func ListHistoryEntries(ctx context.Context, db database.DB, userID int64) ([]model.HistoryEntry, error) {
	rows, err := db.Query(ctx,
		`SELECT id, user_id, type, "timestamp", inputs, result
		 FROM history
		 WHERE user_id = $1
		 ORDER BY "timestamp" DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListHistoryEntries: %w", err)
	}
	defer rows.Close()

	entries := []model.HistoryEntry{}
	for rows.Next() {
		var (
			e              model.HistoryEntry
			inputs, result string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Type, &e.Timestamp, &inputs, &result); err != nil {
			return nil, fmt.Errorf("ListHistoryEntries: %w", err)
		}
		e.Timestamp = e.Timestamp.UTC()
		e.Inputs = json.RawMessage(inputs)
		e.Result = json.RawMessage(result)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListHistoryEntries: %w", err)
	}
	return entries, nil
}
