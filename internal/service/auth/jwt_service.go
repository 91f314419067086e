// Package auth provides authentication primitives: JWT issuance and
// validation, and password hashing/verification.
package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the given principal
	// email. The email is encoded as the token subject.
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, email string) (string, error)

	// ValidateToken validates the provided access token string and extracts
	// the claims. Returns the claims containing the principal email if the
	// token is valid, or an error if validation fails (expired, invalid
	// signature, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the validated contents of an access token.
type Claims struct {
	// Email is the principal the token was issued for; every ownership
	// check downstream runs against it.
	Email string

	// Standard registered JWT claims
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
