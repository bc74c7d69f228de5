package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("MISSING_SESSION_ID", "session id is required")

	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, "MISSING_SESSION_ID", err.Code)
	assert.Equal(t, 400, err.StatusCode)
	assert.False(t, err.Retryable)
	assert.Equal(t, "session id is required", err.Error())
}

func TestNewExternalError(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewExternalError("redis", "failed to append event").WithCause(cause)

	assert.Equal(t, ErrorTypeExternal, err.Type)
	assert.Equal(t, 502, err.StatusCode)
	assert.True(t, err.Retryable)
	assert.Equal(t, "redis", err.Details["service"])
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, cause, stderrors.Unwrap(err))
}

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ignored"))

	inner := NewValidationError("INVALID_BODY", "malformed JSON body")
	wrapped := Wrap(inner, "decoding request")
	require.Error(t, wrapped)
	assert.Equal(t, "decoding request: malformed JSON body", wrapped.Error())

	var appErr *AppError
	require.True(t, stderrors.As(wrapped, &appErr))
	assert.Equal(t, inner, appErr)
}

func TestIsType(t *testing.T) {
	validation := NewValidationError("X", "x")
	external := NewExternalError("redis", "down")

	assert.True(t, IsType(validation, ErrorTypeValidation))
	assert.False(t, IsType(validation, ErrorTypeExternal))
	assert.True(t, IsType(Wrap(external, "outer"), ErrorTypeExternal))
	assert.False(t, IsType(stderrors.New("plain"), ErrorTypeValidation))
	assert.False(t, IsType(nil, ErrorTypeValidation))
}

func TestGetStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidationError("X", "x"), 400},
		{"external", NewExternalError("redis", "down"), 502},
		{"wrapped", fmt.Errorf("outer: %w", NewValidationError("X", "x")), 400},
		{"plain", stderrors.New("plain"), 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetStatusCode(tt.err))
		})
	}
}
