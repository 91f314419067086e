package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dkratzer/taskboard-api/internal/domain"
	"github.com/dkratzer/taskboard-api/internal/store"
)

// UserStore mocks the store.UserStore interface.
type UserStore struct {
	mock.Mock
}

var _ store.UserStore = (*UserStore)(nil)

func (m *UserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// WithTx returns the mock itself; transaction plumbing is stubbed out in
// unit tests.
func (m *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
