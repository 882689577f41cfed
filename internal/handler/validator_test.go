// File: internal/handler/validator_test.go
package handler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCustomValidator(t *testing.T) {
	type req struct {
		Email string `validate:"required"`
	}
	v := NewValidator()
	require.Error(t, v.Validate(&req{}))
	require.NoError(t, v.Validate(&req{Email: "a@x.com"}))
}
