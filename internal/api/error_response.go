// File: internal/api/error_response.go
package api

// ErrorResponse 所有錯誤回應的格式
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Error string `json:"error" example:"Unauthorized"`
}

// swagger:model api.PingResponse
type PingResponse struct {
	Message string `json:"message" example:"pong"`
}
