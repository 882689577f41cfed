// File: internal/api/history.go
package api

import (
	"encoding/json"

	"enhealth/internal/model"
)

// swagger:model api.AppendHistoryRequest
type AppendHistoryRequest struct {
	Type   string          `json:"type" validate:"required" example:"sleep"`
	Inputs json.RawMessage `json:"inputs" swaggertype:"object"`
	Result json.RawMessage `json:"result" swaggertype:"object"`
}

// swagger:model api.HistoryEntryResponse
type HistoryEntryResponse struct {
	Entry model.HistoryEntry `json:"entry"`
}

// swagger:model api.HistoryResponse
type HistoryResponse struct {
	History []model.HistoryEntry `json:"history"`
}
