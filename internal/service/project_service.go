package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/dkratzer/taskboard-api/internal/domain"
	"github.com/dkratzer/taskboard-api/internal/store"
)

// Progress summarizes the completion state of a project's tasks.
type Progress struct {
	TotalTasks         int64   `json:"total_tasks"`
	CompletedTasks     int64   `json:"completed_tasks"`
	ProgressPercentage float64 `json:"progress_percentage"`
}

// ProjectService provides project use cases. Every operation that touches an
// existing project takes the caller's email and enforces the ownership policy
// before acting.
type ProjectService interface {
	// CreateProject persists a new project owned by the user with the given
	// email. Returns store.ErrUserNotFound if no such user exists; a project
	// is never created with a dangling owner.
	CreateProject(ctx context.Context, title, ownerEmail string) (*domain.Project, error)

	// ListProjects returns a page of the caller's projects. If search is
	// non-empty, only projects whose title contains it (case-insensitive)
	// are returned.
	ListProjects(
		ctx context.Context,
		ownerEmail, search string,
		pageNumber, pageSize int,
	) (store.Page[domain.Project], error)

	// GetProject retrieves a single project after checking ownership.
	// Returns store.ErrProjectNotFound if absent, ErrNotOwned if the caller
	// is not the owner.
	GetProject(ctx context.Context, id uuid.UUID, callerEmail string) (*domain.Project, error)

	// DeleteProject removes the project and all its tasks in one
	// transaction, so no orphaned tasks can survive.
	DeleteProject(ctx context.Context, id uuid.UUID, callerEmail string) error

	// ComputeProgress reads every task of the project (unpaginated, so the
	// counts are exact) and returns completion totals. A project with no
	// tasks reports zero percent.
	ComputeProgress(ctx context.Context, id uuid.UUID, callerEmail string) (*Progress, error)
}

// ProjectServiceImpl implements the ProjectService interface
type ProjectServiceImpl struct {
	projectStore store.ProjectStore
	taskStore    store.TaskStore
	userStore    store.UserStore
	db           *sql.DB
	logger       *slog.Logger

	// runTx defaults to store.RunInTransaction; tests stub it out so
	// service logic can be exercised without a database.
	runTx func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewProjectService creates a new ProjectService
func NewProjectService(
	projectStore store.ProjectStore,
	taskStore store.TaskStore,
	userStore store.UserStore,
	db *sql.DB,
	logger *slog.Logger,
) ProjectService {
	return &ProjectServiceImpl{
		projectStore: projectStore,
		taskStore:    taskStore,
		userStore:    userStore,
		db:           db,
		logger:       logger.With("component", "project_service"),
		runTx:        store.RunInTransaction,
	}
}

// authorizeProject resolves the project's owner and applies the access
// policy against the caller.
func (s *ProjectServiceImpl) authorizeProject(
	ctx context.Context,
	project *domain.Project,
	callerEmail string,
) error {
	owner, err := s.userStore.GetByID(ctx, project.OwnerID)
	if err != nil {
		s.logger.Error("failed to resolve project owner",
			"error", err,
			"project_id", project.ID,
			"owner_id", project.OwnerID)
		return fmt.Errorf("failed to resolve project owner: %w", err)
	}
	return AuthorizeOwner(callerEmail, owner.Email)
}

// CreateProject persists a new project owned by the given user.
func (s *ProjectServiceImpl) CreateProject(
	ctx context.Context,
	title, ownerEmail string,
) (*domain.Project, error) {
	owner, err := s.userStore.GetByEmail(ctx, ownerEmail)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("create project for unknown user", "email", ownerEmail)
			return nil, err
		}
		return nil, fmt.Errorf("failed to resolve owner: %w", err)
	}

	project, err := domain.NewProject(title, owner.ID)
	if err != nil {
		return nil, err
	}

	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.projectStore.WithTx(tx).Create(ctx, project)
	})
	if err != nil {
		s.logger.Error("failed to create project",
			"error", err,
			"owner_id", owner.ID)
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("project created",
		"project_id", project.ID,
		"owner_id", owner.ID)
	return project, nil
}

// ListProjects returns a page of the caller's projects, optionally filtered
// by a case-insensitive title substring.
func (s *ProjectServiceImpl) ListProjects(
	ctx context.Context,
	ownerEmail, search string,
	pageNumber, pageSize int,
) (store.Page[domain.Project], error) {
	owner, err := s.userStore.GetByEmail(ctx, ownerEmail)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return store.Page[domain.Project]{}, err
		}
		return store.Page[domain.Project]{}, fmt.Errorf("failed to resolve owner: %w", err)
	}

	page, err := s.projectStore.ListByOwner(ctx, owner.ID, search, pageNumber, pageSize)
	if err != nil {
		s.logger.Error("failed to list projects",
			"error", err,
			"owner_id", owner.ID)
		return store.Page[domain.Project]{}, fmt.Errorf("failed to list projects: %w", err)
	}
	return page, nil
}

// GetProject retrieves a single project after the ownership check.
func (s *ProjectServiceImpl) GetProject(
	ctx context.Context,
	id uuid.UUID,
	callerEmail string,
) (*domain.Project, error) {
	project, err := s.projectStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeProject(ctx, project, callerEmail); err != nil {
		return nil, err
	}

	return project, nil
}

// DeleteProject removes the project and all its tasks in one transaction.
func (s *ProjectServiceImpl) DeleteProject(
	ctx context.Context,
	id uuid.UUID,
	callerEmail string,
) error {
	project, err := s.projectStore.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.authorizeProject(ctx, project, callerEmail); err != nil {
		return err
	}

	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		// Delete tasks first so the cascade is explicit and observable,
		// even though the schema's ON DELETE CASCADE would also cover it.
		deleted, err := s.taskStore.WithTx(tx).DeleteByProject(ctx, id)
		if err != nil {
			return err
		}
		s.logger.Debug("deleted project tasks",
			"project_id", id,
			"tasks_deleted", deleted)

		return s.projectStore.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			// Lost a race with a concurrent delete; the project is gone
			// either way.
			return err
		}
		s.logger.Error("failed to delete project",
			"error", err,
			"project_id", id)
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.logger.Info("project deleted", "project_id", id)
	return nil
}

// ComputeProgress returns completion totals over all the project's tasks.
func (s *ProjectServiceImpl) ComputeProgress(
	ctx context.Context,
	id uuid.UUID,
	callerEmail string,
) (*Progress, error) {
	project, err := s.projectStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeProject(ctx, project, callerEmail); err != nil {
		return nil, err
	}

	tasks, err := s.taskStore.ListAllByProject(ctx, id)
	if err != nil {
		s.logger.Error("failed to load tasks for progress",
			"error", err,
			"project_id", id)
		return nil, fmt.Errorf("failed to compute progress: %w", err)
	}

	progress := &Progress{TotalTasks: int64(len(tasks))}
	for _, task := range tasks {
		if task.Completed {
			progress.CompletedTasks++
		}
	}
	if progress.TotalTasks > 0 {
		progress.ProgressPercentage = float64(progress.CompletedTasks) * 100 / float64(progress.TotalTasks)
	}

	return progress, nil
}
