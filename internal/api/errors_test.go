package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkratzer/taskboard-api/internal/domain"
	"github.com/dkratzer/taskboard-api/internal/service"
	"github.com/dkratzer/taskboard-api/internal/service/auth"
	"github.com/dkratzer/taskboard-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"not owned", service.ErrNotOwned, http.StatusForbidden},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"project not found", store.ErrProjectNotFound, http.StatusNotFound},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"invalid id", domain.ErrInvalidID, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{
			"wrapped not owned",
			fmt.Errorf("checking access: %w", service.ErrNotOwned),
			http.StatusForbidden,
		},
		{
			"wrapped not found",
			fmt.Errorf("loading: %w", store.ErrProjectNotFound),
			http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

// Not-found and not-owned must stay distinguishable at the HTTP boundary so
// a caller probing someone else's project gets a 403, never a 404.
func TestNotFoundAndNotOwnedAreDistinct(t *testing.T) {
	t.Parallel()
	assert.NotEqual(t,
		MapErrorToStatusCode(store.ErrProjectNotFound),
		MapErrorToStatusCode(service.ErrNotOwned))
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("internal detail never leaks", func(t *testing.T) {
		t.Parallel()
		err := errors.New("pq: duplicate key value violates unique constraint \"users_email_key\"")
		msg := GetSafeErrorMessage(err)
		assert.Equal(t, "An unexpected error occurred", msg)
	})

	t.Run("validation errors keep field detail", func(t *testing.T) {
		t.Parallel()
		err := domain.NewValidationError("title", "cannot be empty", domain.ErrValidation)
		assert.Equal(t, "title cannot be empty", GetSafeErrorMessage(err))
	})

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	})

	t.Run("known sentinels map to friendly messages", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Project not found", GetSafeErrorMessage(store.ErrProjectNotFound))
		assert.Equal(t, "Invalid credentials", GetSafeErrorMessage(auth.ErrInvalidCredentials))
		assert.Equal(t, "Email already exists", GetSafeErrorMessage(store.ErrEmailExists))
		assert.Equal(t, "You do not own this resource", GetSafeErrorMessage(service.ErrNotOwned))
	})
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := errors.New(
		"Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag",
	)
	assert.Equal(t, "Invalid Email: required field", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("boom")))
}
