// File: internal/handler/validator.go
package handler

import "github.com/go-playground/validator/v10"

// CustomValidator 包裝 go-playground/validator 給 Echo 使用
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate 呼叫底層 validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
