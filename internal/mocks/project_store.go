package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dkratzer/taskboard-api/internal/domain"
	"github.com/dkratzer/taskboard-api/internal/store"
)

// ProjectStore mocks the store.ProjectStore interface.
type ProjectStore struct {
	mock.Mock
}

var _ store.ProjectStore = (*ProjectStore)(nil)

func (m *ProjectStore) Create(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *ProjectStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *ProjectStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	search string,
	pageNumber, pageSize int,
) (store.Page[domain.Project], error) {
	args := m.Called(ctx, ownerID, search, pageNumber, pageSize)
	return args.Get(0).(store.Page[domain.Project]), args.Error(1)
}

func (m *ProjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx returns the mock itself; transaction plumbing is stubbed out in
// unit tests.
func (m *ProjectStore) WithTx(tx *sql.Tx) store.ProjectStore {
	return m
}
