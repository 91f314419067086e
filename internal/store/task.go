package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/dkratzer/taskboard-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity if the parent project does not exist.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByProject retrieves a page of the project's tasks, newest first.
	// completed filters by completion state when non-nil: true returns only
	// completed tasks, false only active ones.
	ListByProject(
		ctx context.Context,
		projectID uuid.UUID,
		completed *bool,
		pageNumber, pageSize int,
	) (Page[domain.Task], error)

	// ListAllByProject retrieves every task of the project, unpaginated.
	// Used for progress computation, which needs exact counts.
	ListAllByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Task, error)

	// Update overwrites the task's mutable fields (title, description,
	// due date, completed). Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByProject removes all tasks belonging to the project and
	// returns the number of tasks removed. Used when deleting a project
	// so the cascade is explicit within the surrounding transaction.
	DeleteByProject(ctx context.Context, projectID uuid.UUID) (int64, error)

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
