// File: internal/api/credentials_request.go
package api

// swagger:model api.CredentialsRequest
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required" example:"alice@example.com"`
	Password string `json:"password" validate:"required" example:"Secret123"`
}
