// File: internal/service/history.go
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"enhealth/internal/database"
	"enhealth/internal/model"
	"enhealth/internal/store"
)

type HistoryService struct {
	db database.DB
}

func NewHistoryService(db database.DB) *HistoryService {
	return &HistoryService{db: db}
}

func absent(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

func isObject(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	if len(t) == 0 || t[0] != '{' {
		return false
	}
	return json.Valid(t)
}

// Append 驗證並儲存一筆評估，時間戳使用目前時間
func (s *HistoryService) Append(ctx context.Context, userID int64, typ string, inputs, result json.RawMessage) (*model.HistoryEntry, error) {
	if typ == "" || absent(inputs) || absent(result) {
		return nil, invalid("Type, inputs, and result are required")
	}
	if !model.IsAssessmentType(typ) {
		return nil, invalid("Unknown assessment type")
	}
	if !isObject(inputs) || !isObject(result) {
		return nil, invalid("Inputs and result must be JSON objects")
	}

	e, err := store.CreateHistoryEntry(ctx, s.db, &model.HistoryEntry{
		UserID:    userID,
		Type:      typ,
		Timestamp: timeNow(),
		Inputs:    compact(inputs),
		Result:    compact(result),
	})
	if err != nil {
		return nil, fmt.Errorf("append history: %w", err)
	}
	return e, nil
}

func (s *HistoryService) List(ctx context.Context, userID int64) ([]model.HistoryEntry, error) {
	entries, err := store.ListHistoryEntries(ctx, s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

func compact(raw json.RawMessage) json.RawMessage {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return buf.Bytes()
}
