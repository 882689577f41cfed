// File: internal/api/auth_response.go
package api

// swagger:model api.UserResponse
type UserResponse struct {
	Email string `json:"email" example:"alice@example.com"`
}

// AuthResponse 註冊與登入成功的回應
// swagger:model api.AuthResponse
type AuthResponse struct {
	Token string       `json:"token" example:"0b8f6a0e-8c1e-4a59-9a43-5f4c3f1e2b7d"`
	User  UserResponse `json:"user"`
}
