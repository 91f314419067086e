package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/dkratzer/taskboard-api/internal/domain"
	"github.com/dkratzer/taskboard-api/internal/store"
)

// TaskFields carries the caller-supplied task attributes for create and
// update operations. Update overwrites all of them, including Completed,
// so a completed task can be reopened through that path.
type TaskFields struct {
	Title       string
	Description string
	DueDate     *time.Time
	Completed   bool
}

// StatusFilter selects tasks by completion state when listing.
type StatusFilter string

// Status filter values accepted by ListTasks.
const (
	StatusAny       StatusFilter = ""
	StatusCompleted StatusFilter = "completed"
	StatusActive    StatusFilter = "active"
)

// TaskService provides task use cases. Ownership is always derived through
// the parent project and checked before any read or mutation.
type TaskService interface {
	// CreateTask persists a new task under the given project after
	// verifying the caller owns it.
	CreateTask(
		ctx context.Context,
		projectID uuid.UUID,
		fields TaskFields,
		callerEmail string,
	) (*domain.Task, error)

	// ListTasks returns a page of the project's tasks, optionally filtered
	// by completion status.
	ListTasks(
		ctx context.Context,
		projectID uuid.UUID,
		status StatusFilter,
		pageNumber, pageSize int,
		callerEmail string,
	) (store.Page[domain.Task], error)

	// GetTask retrieves a single task after checking ownership through its
	// project.
	GetTask(ctx context.Context, id uuid.UUID, callerEmail string) (*domain.Task, error)

	// UpdateTask overwrites the task's title, description, due date, and
	// completed flag.
	UpdateTask(
		ctx context.Context,
		id uuid.UUID,
		fields TaskFields,
		callerEmail string,
	) (*domain.Task, error)

	// CompleteTask marks the task as completed. Unlike UpdateTask this
	// path only ever moves completed from false to true.
	CompleteTask(ctx context.Context, id uuid.UUID, callerEmail string) (*domain.Task, error)

	// DeleteTask removes the task.
	DeleteTask(ctx context.Context, id uuid.UUID, callerEmail string) error
}

// TaskServiceImpl implements the TaskService interface
type TaskServiceImpl struct {
	taskStore    store.TaskStore
	projectStore store.ProjectStore
	userStore    store.UserStore
	db           *sql.DB
	logger       *slog.Logger

	// runTx defaults to store.RunInTransaction; tests stub it out so
	// service logic can be exercised without a database.
	runTx func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskStore store.TaskStore,
	projectStore store.ProjectStore,
	userStore store.UserStore,
	db *sql.DB,
	logger *slog.Logger,
) TaskService {
	return &TaskServiceImpl{
		taskStore:    taskStore,
		projectStore: projectStore,
		userStore:    userStore,
		db:           db,
		logger:       logger.With("component", "task_service"),
		runTx:        store.RunInTransaction,
	}
}

// getOwnedProject loads the project and applies the access policy against
// the caller. Returns store.ErrProjectNotFound or ErrNotOwned accordingly.
func (s *TaskServiceImpl) getOwnedProject(
	ctx context.Context,
	projectID uuid.UUID,
	callerEmail string,
) (*domain.Project, error) {
	project, err := s.projectStore.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	owner, err := s.userStore.GetByID(ctx, project.OwnerID)
	if err != nil {
		s.logger.Error("failed to resolve project owner",
			"error", err,
			"project_id", projectID,
			"owner_id", project.OwnerID)
		return nil, fmt.Errorf("failed to resolve project owner: %w", err)
	}

	if err := AuthorizeOwner(callerEmail, owner.Email); err != nil {
		return nil, err
	}

	return project, nil
}

// getOwnedTask loads the task and applies the access policy through its
// parent project. Returns store.ErrTaskNotFound or ErrNotOwned accordingly.
func (s *TaskServiceImpl) getOwnedTask(
	ctx context.Context,
	id uuid.UUID,
	callerEmail string,
) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.getOwnedProject(ctx, task.ProjectID, callerEmail); err != nil {
		return nil, err
	}

	return task, nil
}

// CreateTask persists a new task under the given project.
func (s *TaskServiceImpl) CreateTask(
	ctx context.Context,
	projectID uuid.UUID,
	fields TaskFields,
	callerEmail string,
) (*domain.Task, error) {
	if _, err := s.getOwnedProject(ctx, projectID, callerEmail); err != nil {
		return nil, err
	}

	task, err := domain.NewTask(projectID, fields.Title, fields.Description, fields.DueDate)
	if err != nil {
		return nil, err
	}

	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.taskStore.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		s.logger.Error("failed to create task",
			"error", err,
			"project_id", projectID)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("task created",
		"task_id", task.ID,
		"project_id", projectID)
	return task, nil
}

// ListTasks returns a page of the project's tasks.
func (s *TaskServiceImpl) ListTasks(
	ctx context.Context,
	projectID uuid.UUID,
	status StatusFilter,
	pageNumber, pageSize int,
	callerEmail string,
) (store.Page[domain.Task], error) {
	if _, err := s.getOwnedProject(ctx, projectID, callerEmail); err != nil {
		return store.Page[domain.Task]{}, err
	}

	var completed *bool
	switch status {
	case StatusCompleted:
		v := true
		completed = &v
	case StatusActive:
		v := false
		completed = &v
	}

	page, err := s.taskStore.ListByProject(ctx, projectID, completed, pageNumber, pageSize)
	if err != nil {
		s.logger.Error("failed to list tasks",
			"error", err,
			"project_id", projectID)
		return store.Page[domain.Task]{}, fmt.Errorf("failed to list tasks: %w", err)
	}
	return page, nil
}

// GetTask retrieves a single task after the ownership check.
func (s *TaskServiceImpl) GetTask(
	ctx context.Context,
	id uuid.UUID,
	callerEmail string,
) (*domain.Task, error) {
	return s.getOwnedTask(ctx, id, callerEmail)
}

// UpdateTask overwrites the task's mutable fields.
func (s *TaskServiceImpl) UpdateTask(
	ctx context.Context,
	id uuid.UUID,
	fields TaskFields,
	callerEmail string,
) (*domain.Task, error) {
	task, err := s.getOwnedTask(ctx, id, callerEmail)
	if err != nil {
		return nil, err
	}

	task.Title = fields.Title
	task.Description = fields.Description
	task.DueDate = fields.DueDate
	task.Completed = fields.Completed
	task.UpdatedAt = time.Now().UTC()

	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.taskStore.WithTx(tx).Update(ctx, task)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		s.logger.Error("failed to update task",
			"error", err,
			"task_id", id)
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info("task updated", "task_id", id)
	return task, nil
}

// CompleteTask marks the task as completed.
func (s *TaskServiceImpl) CompleteTask(
	ctx context.Context,
	id uuid.UUID,
	callerEmail string,
) (*domain.Task, error) {
	task, err := s.getOwnedTask(ctx, id, callerEmail)
	if err != nil {
		return nil, err
	}

	task.Completed = true
	task.UpdatedAt = time.Now().UTC()

	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.taskStore.WithTx(tx).Update(ctx, task)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		s.logger.Error("failed to complete task",
			"error", err,
			"task_id", id)
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	s.logger.Info("task completed", "task_id", id)
	return task, nil
}

// DeleteTask removes the task.
func (s *TaskServiceImpl) DeleteTask(
	ctx context.Context,
	id uuid.UUID,
	callerEmail string,
) error {
	if _, err := s.getOwnedTask(ctx, id, callerEmail); err != nil {
		return err
	}

	err := s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.taskStore.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			// Already gone; a concurrent delete won the race.
			return err
		}
		s.logger.Error("failed to delete task",
			"error", err,
			"task_id", id)
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info("task deleted", "task_id", id)
	return nil
}
