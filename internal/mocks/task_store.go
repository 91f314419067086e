package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dkratzer/taskboard-api/internal/domain"
	"github.com/dkratzer/taskboard-api/internal/store"
)

// TaskStore mocks the store.TaskStore interface.
type TaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*TaskStore)(nil)

func (m *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *TaskStore) ListByProject(
	ctx context.Context,
	projectID uuid.UUID,
	completed *bool,
	pageNumber, pageSize int,
) (store.Page[domain.Task], error) {
	args := m.Called(ctx, projectID, completed, pageNumber, pageSize)
	return args.Get(0).(store.Page[domain.Task]), args.Error(1)
}

func (m *TaskStore) ListAllByProject(
	ctx context.Context,
	projectID uuid.UUID,
) ([]domain.Task, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TaskStore) DeleteByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(int64), args.Error(1)
}

// WithTx returns the mock itself; transaction plumbing is stubbed out in
// unit tests.
func (m *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
