package common

import (
	"errors"
	"fmt"
)

// Common error types used across the application
var (
	// ErrInvalidInput indicates invalid caller input, rejected immediately.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound indicates a resource was not found.
	ErrNotFound = errors.New("not found")
	// ErrTransient indicates a collaborator failure that may succeed on retry.
	ErrTransient = errors.New("transient failure")
	// ErrTimeout indicates an operation timed out.
	ErrTimeout = errors.New("operation timed out")
	// ErrInvalidConfiguration indicates configuration issues.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// WrapError wraps an error with additional context information.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapErrorf wraps an error with formatted context information.
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// NewError creates a new error with a formatted message.
func NewError(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// ValidationError represents validation errors with field-specific information.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new validation error.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NotFoundError marks a collaborator "not found" response while keeping the
// underlying cause in the chain.
func NotFoundError(what string, cause error) error {
	if cause != nil {
		return fmt.Errorf("%s: %w: %w", what, ErrNotFound, cause)
	}
	return fmt.Errorf("%s: %w", what, ErrNotFound)
}

// TransientError marks a collaborator failure as retryable.
func TransientError(what string, cause error) error {
	if cause != nil {
		return fmt.Errorf("%s: %w: %w", what, ErrTransient, cause)
	}
	return fmt.Errorf("%s: %w", what, ErrTransient)
}
