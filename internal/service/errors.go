package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped with fmt.Errorf and %w
// 3. Callers use errors.Is to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrNotOwned indicates a resource is owned by a different user than the
	// one making the request. Kept distinct from the store's not-found errors:
	// denying access and denying existence have different HTTP status and
	// security implications. API layer maps this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")
)
