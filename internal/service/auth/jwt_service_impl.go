package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/dkratzer/taskboard-api/internal/config"
	"github.com/dkratzer/taskboard-api/internal/platform/logger"
)

// hmacJWTService is an implementation of JWTService using HMAC-SHA signing.
type hmacJWTService struct {
	signingKey    []byte
	tokenLifetime time.Duration
	timeFunc      func() time.Time // Injectable for testing
	clockSkew     time.Duration    // Allowed time difference to handle clock drift
}

// Ensure hmacJWTService implements JWTService interface
var _ JWTService = (*hmacJWTService)(nil)

// NewJWTService creates a new JWT service using HMAC-SHA signing.
func NewJWTService(cfg config.AuthConfig) (JWTService, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}

	return &hmacJWTService{
		signingKey:    []byte(cfg.JWTSecret),
		tokenLifetime: time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		timeFunc:      time.Now,
		clockSkew:     2 * time.Minute,
	}, nil
}

// GenerateToken creates a signed JWT access token with the principal email
// as subject.
func (s *hmacJWTService) GenerateToken(ctx context.Context, email string) (string, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifetime)),
		ID:        uuid.New().String(), // Unique token ID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.signingKey)
	if err != nil {
		log.Error("failed to sign JWT access token",
			"error", err,
			"signing_method", jwt.SigningMethodHS256.Name)
		return "", fmt.Errorf("failed to sign access token with HMAC-SHA256: %w", err)
	}

	return signedToken, nil
}

// ValidateToken validates a JWT access token and returns the claims if valid.
func (s *hmacJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time {
			return now // Use the injected time function for validation
		}),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		parserOpts...)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("access token validation failed: token expired", "error", err)
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			log.Debug("access token validation failed: token not yet valid", "error", err)
			return nil, ErrTokenNotYetValid
		default:
			log.Debug("access token validation failed", "error", err)
			return nil, ErrInvalidToken
		}
	}

	registered, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || registered.Subject == "" {
		log.Debug("token validation failed: invalid claims")
		return nil, ErrInvalidToken
	}

	claims := &Claims{
		Email: registered.Subject,
		ID:    registered.ID,
	}
	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.Time
	}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Time
	}

	return claims, nil
}
