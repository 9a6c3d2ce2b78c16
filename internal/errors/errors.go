// Package errors provides the typed error taxonomy shared by the scoring
// engines. Only configuration errors are fatal; everything local to one unit
// of work (one variable pair, one observation point) is recovered where it
// occurs and never surfaces as an error from a batch.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies an error for callers that branch on failure class.
type ErrorType string

const (
	// ErrTypeConfig marks invalid engine configuration (bad weights, bad
	// alpha). Raised eagerly at construction, never per call.
	ErrTypeConfig ErrorType = "CONFIG"
	// ErrTypeValidation marks malformed caller input.
	ErrTypeValidation ErrorType = "VALIDATION"
	// ErrTypeInsufficientData marks inputs too small or too sparse for a
	// meaningful computation.
	ErrTypeInsufficientData ErrorType = "INSUFFICIENT_DATA"
	// ErrTypeNumerical marks a degenerate numerical computation (singular
	// design matrix, constant series).
	ErrTypeNumerical ErrorType = "NUMERICAL"
)

// AppError is an application error with a type, message, optional cause and
// optional structured context.
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

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewValidationError creates an input-validation error
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeValidation, message, cause)
}

// NewInsufficientDataError creates an insufficient-data error
func NewInsufficientDataError(message string, cause error) *AppError {
	return NewAppError(ErrTypeInsufficientData, message, cause)
}

// NewNumericalError creates a numerical-failure error
func NewNumericalError(message string, cause error) *AppError {
	return NewAppError(ErrTypeNumerical, message, cause)
}

// IsType reports whether err is (or wraps) an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}
