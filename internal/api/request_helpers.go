package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dkratzer/taskboard-api/internal/api/middleware"
	"github.com/dkratzer/taskboard-api/internal/domain"
	"github.com/dkratzer/taskboard-api/internal/store"
)

// getPrincipalEmail extracts the authenticated caller's email from the
// request context, where the auth middleware placed it. Writes a 401
// response and returns false if it is missing.
func getPrincipalEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	email, ok := middleware.GetPrincipalEmail(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return "", false
	}
	return email, true
}

// getPathUUID extracts a UUID from the URL path parameters.
// It parses and validates the UUID, handling common error cases.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// getPagination reads the page and size query parameters. Missing or
// malformed values fall back to the defaults rather than erroring, matching
// common pagination behavior.
func getPagination(r *http.Request) (pageNumber, pageSize int) {
	pageNumber = store.DefaultPageNumber
	pageSize = store.DefaultPageSize

	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			pageNumber = v
		}
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			pageSize = v
		}
	}

	return store.NormalizePagination(pageNumber, pageSize)
}
