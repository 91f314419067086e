package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dkratzer/taskboard-api/internal/api/shared"
	"github.com/dkratzer/taskboard-api/internal/domain"
	"github.com/dkratzer/taskboard-api/internal/service"
	"github.com/dkratzer/taskboard-api/internal/service/auth"
	"github.com/dkratzer/taskboard-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	// Authorization errors. Distinct from not-found: the resource exists
	// but belongs to someone else.
	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden

	// Not found errors. ErrNotFound covers the per-entity variants too.
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Authentication required"

	case errors.Is(err, service.ErrNotOwned):
		return "You do not own this resource"

	case errors.Is(err, store.ErrProjectNotFound):
		return "Project not found"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidEmail):
		// Validation errors carry field-level detail that is safe to show
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return validationErr.Error()
		}
		return "Invalid request data"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid identifier format"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps the error to a status code and safe message and writes
// the response. If userMessage is non-empty it overrides the derived message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	message := userMessage
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'LoginRequest.Email' Error:Field validation
	// for 'Email' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
