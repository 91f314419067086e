package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/dkratzer/taskboard-api/internal/domain"
)

// ProjectStore defines the interface for project data persistence.
type ProjectStore interface {
	// Create saves a new project to the store.
	// Returns ErrInvalidEntity if the owner does not exist.
	// Returns validation errors from the domain Project if data is invalid.
	Create(ctx context.Context, project *domain.Project) error

	// GetByID retrieves a project by its unique ID.
	// Returns ErrProjectNotFound if the project does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)

	// ListByOwner retrieves a page of the owner's projects, newest first.
	// If search is non-empty, only projects whose title contains it
	// (case-insensitive) are returned. The page carries the total count
	// of matching projects, not just the page window.
	ListByOwner(
		ctx context.Context,
		ownerID uuid.UUID,
		search string,
		pageNumber, pageSize int,
	) (Page[domain.Project], error)

	// Delete removes a project by its ID. Child tasks are removed with it;
	// the schema enforces the cascade so no orphaned tasks can survive.
	// Returns ErrProjectNotFound if the project does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new ProjectStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ProjectStore
}
