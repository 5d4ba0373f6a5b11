package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeDecode           ErrorType = "DECODE"
	ErrTypeDateConstruction ErrorType = "DATE_CONSTRUCTION"
	ErrTypeIO               ErrorType = "IO"
	ErrTypeConfig           ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewDecodeError reports a fragment that cannot be read, decompressed or parsed
func NewDecodeError(message string, cause error) *AppError {
	return NewAppError(ErrTypeDecode, message, cause)
}

// NewDateConstructionError reports a month/day pair that is not a calendar date
func NewDateConstructionError(message string, cause error) *AppError {
	return NewAppError(ErrTypeDateConstruction, message, cause)
}

// NewIOError reports an output location that cannot be prepared or written
func NewIOError(message string, cause error) *AppError {
	return NewAppError(ErrTypeIO, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// TypeOf returns the ErrorType of the first AppError in err's chain, or "".
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsDecodeError reports whether err wraps a DECODE AppError
func IsDecodeError(err error) bool {
	return TypeOf(err) == ErrTypeDecode
}

// IsDateConstructionError reports whether err wraps a DATE_CONSTRUCTION AppError
func IsDateConstructionError(err error) bool {
	return TypeOf(err) == ErrTypeDateConstruction
}

// IsIOError reports whether err wraps an IO AppError
func IsIOError(err error) bool {
	return TypeOf(err) == ErrTypeIO
}

// IsConfigError reports whether err wraps a CONFIG AppError
func IsConfigError(err error) bool {
	return TypeOf(err) == ErrTypeConfig
}
