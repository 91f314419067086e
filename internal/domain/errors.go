// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// ValidationError carries the field that failed validation along with the
// underlying sentinel error, so the API layer can produce a precise message
// without leaking internals.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

// Unwrap returns the wrapped sentinel to support errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError wrapping the given sentinel.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}
