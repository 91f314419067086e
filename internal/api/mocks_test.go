package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dkratzer/taskboard-api/internal/domain"
	"github.com/dkratzer/taskboard-api/internal/service"
	"github.com/dkratzer/taskboard-api/internal/store"
)

// Service mocks live here rather than in internal/mocks: that package is
// imported by the service layer's own tests, so mocking service interfaces
// there would close an import cycle.

// mockUserService mocks the service.UserService interface.
type mockUserService struct {
	mock.Mock
}

var _ service.UserService = (*mockUserService)(nil)

func (m *mockUserService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserService) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// mockProjectService mocks the service.ProjectService interface.
type mockProjectService struct {
	mock.Mock
}

var _ service.ProjectService = (*mockProjectService)(nil)

func (m *mockProjectService) CreateProject(
	ctx context.Context,
	title, ownerEmail string,
) (*domain.Project, error) {
	args := m.Called(ctx, title, ownerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *mockProjectService) ListProjects(
	ctx context.Context,
	ownerEmail, search string,
	pageNumber, pageSize int,
) (store.Page[domain.Project], error) {
	args := m.Called(ctx, ownerEmail, search, pageNumber, pageSize)
	return args.Get(0).(store.Page[domain.Project]), args.Error(1)
}

func (m *mockProjectService) GetProject(
	ctx context.Context,
	id uuid.UUID,
	callerEmail string,
) (*domain.Project, error) {
	args := m.Called(ctx, id, callerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *mockProjectService) DeleteProject(ctx context.Context, id uuid.UUID, callerEmail string) error {
	args := m.Called(ctx, id, callerEmail)
	return args.Error(0)
}

func (m *mockProjectService) ComputeProgress(
	ctx context.Context,
	id uuid.UUID,
	callerEmail string,
) (*service.Progress, error) {
	args := m.Called(ctx, id, callerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Progress), args.Error(1)
}

// mockTaskService mocks the service.TaskService interface.
type mockTaskService struct {
	mock.Mock
}

var _ service.TaskService = (*mockTaskService)(nil)

func (m *mockTaskService) CreateTask(
	ctx context.Context,
	projectID uuid.UUID,
	fields service.TaskFields,
	callerEmail string,
) (*domain.Task, error) {
	args := m.Called(ctx, projectID, fields, callerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *mockTaskService) ListTasks(
	ctx context.Context,
	projectID uuid.UUID,
	status service.StatusFilter,
	pageNumber, pageSize int,
	callerEmail string,
) (store.Page[domain.Task], error) {
	args := m.Called(ctx, projectID, status, pageNumber, pageSize, callerEmail)
	return args.Get(0).(store.Page[domain.Task]), args.Error(1)
}

func (m *mockTaskService) GetTask(
	ctx context.Context,
	id uuid.UUID,
	callerEmail string,
) (*domain.Task, error) {
	args := m.Called(ctx, id, callerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *mockTaskService) UpdateTask(
	ctx context.Context,
	id uuid.UUID,
	fields service.TaskFields,
	callerEmail string,
) (*domain.Task, error) {
	args := m.Called(ctx, id, fields, callerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *mockTaskService) CompleteTask(
	ctx context.Context,
	id uuid.UUID,
	callerEmail string,
) (*domain.Task, error) {
	args := m.Called(ctx, id, callerEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *mockTaskService) DeleteTask(ctx context.Context, id uuid.UUID, callerEmail string) error {
	args := m.Called(ctx, id, callerEmail)
	return args.Error(0)
}
