package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{name: "decode error type", errType: ErrTypeDecode, expected: "DECODE"},
		{name: "date construction error type", errType: ErrTypeDateConstruction, expected: "DATE_CONSTRUCTION"},
		{name: "io error type", errType: ErrTypeIO, expected: "IO"},
		{name: "config error type", errType: ErrTypeConfig, expected: "CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "with cause",
			err:      NewDecodeError("cannot read fragment", fmt.Errorf("unexpected EOF")),
			expected: "[DECODE] cannot read fragment: unexpected EOF",
		},
		{
			name:     "without cause",
			err:      NewDateConstructionError("invalid date 2022-feb-30", nil),
			expected: "[DATE_CONSTRUCTION] invalid date 2022-feb-30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewIOError("cannot create output directory", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, cause, err.Unwrap())
}

func TestAppError_WithContext(t *testing.T) {
	err := NewDateConstructionError("invalid date", nil).
		WithContext("row", 3).
		WithContext("client_id", "42")

	require.NotNil(t, err.Context)
	assert.Equal(t, 3, err.Context["row"])
	assert.Equal(t, "42", err.Context["client_id"])

	bare := &AppError{Type: ErrTypeIO}
	bare.WithContext("path", "files/output")
	assert.Equal(t, "files/output", bare.Context["path"])
}

func TestTypePredicates(t *testing.T) {
	decode := fmt.Errorf("step load_fragments: %w", NewDecodeError("bad zip", nil))
	date := fmt.Errorf("wrapped: %w", NewDateConstructionError("bad date", nil))
	io := NewIOError("write failed", nil)
	cfg := NewConfigError("bad config", nil)
	plain := errors.New("plain")

	assert.True(t, IsDecodeError(decode))
	assert.False(t, IsDecodeError(date))

	assert.True(t, IsDateConstructionError(date))
	assert.False(t, IsDateConstructionError(io))

	assert.True(t, IsIOError(io))
	assert.False(t, IsIOError(plain))

	assert.True(t, IsConfigError(cfg))
	assert.Equal(t, ErrorType(""), TypeOf(plain))
	assert.Equal(t, ErrTypeDecode, TypeOf(decode))
}
