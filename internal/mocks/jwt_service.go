package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dkratzer/taskboard-api/internal/service/auth"
)

// JWTService mocks the auth.JWTService interface.
type JWTService struct {
	mock.Mock
}

var _ auth.JWTService = (*JWTService)(nil)

func (m *JWTService) GenerateToken(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *JWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}
