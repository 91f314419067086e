package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/dkratzer/taskboard-api/internal/domain"
	"github.com/dkratzer/taskboard-api/internal/platform/logger"
	"github.com/dkratzer/taskboard-api/internal/store"
)

// PostgresProjectStore implements the store.ProjectStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProjectStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProjectStore creates a new PostgreSQL implementation of the
// ProjectStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresProjectStore(db store.DBTX, logger *slog.Logger) *PostgresProjectStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProjectStore{
		db:     db,
		logger: logger.With(slog.String("component", "project_store")),
	}
}

// Ensure PostgresProjectStore implements store.ProjectStore interface
var _ store.ProjectStore = (*PostgresProjectStore)(nil)

// WithTx implements store.ProjectStore.WithTx
func (s *PostgresProjectStore) WithTx(tx *sql.Tx) store.ProjectStore {
	return &PostgresProjectStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.ProjectStore.Create
// Returns store.ErrInvalidEntity if the owner does not exist
// (foreign key violation).
func (s *PostgresProjectStore) Create(ctx context.Context, project *domain.Project) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := project.Validate(); err != nil {
		log.Warn("project validation failed during create",
			slog.String("error", err.Error()),
			slog.String("project_id", project.ID.String()))
		return err
	}

	query := `
		INSERT INTO projects (id, title, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		project.ID,
		project.Title,
		project.OwnerID,
		project.CreatedAt,
		project.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during project creation",
				slog.String("project_id", project.ID.String()),
				slog.String("owner_id", project.OwnerID.String()))
			return fmt.Errorf("%w: owner with ID %s not found",
				store.ErrInvalidEntity, project.OwnerID)
		}

		log.Error("failed to create project",
			slog.String("error", err.Error()),
			slog.String("project_id", project.ID.String()))
		return MapError(err)
	}

	log.Info("project created successfully",
		slog.String("project_id", project.ID.String()),
		slog.String("owner_id", project.OwnerID.String()))
	return nil
}

// GetByID implements store.ProjectStore.GetByID
// Returns store.ErrProjectNotFound if the project does not exist.
func (s *PostgresProjectStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, owner_id, created_at, updated_at
		FROM projects
		WHERE id = $1
	`

	var project domain.Project
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&project.ID,
		&project.Title,
		&project.OwnerID,
		&project.CreatedAt,
		&project.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("project not found", slog.String("project_id", id.String()))
			return nil, store.ErrProjectNotFound
		}
		log.Error("failed to get project by ID",
			slog.String("error", err.Error()),
			slog.String("project_id", id.String()))
		return nil, MapError(err)
	}

	return &project, nil
}

// ListByOwner implements store.ProjectStore.ListByOwner
// The optional search term matches the title case-insensitively as a
// substring (ILIKE), always scoped to the owner.
func (s *PostgresProjectStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	search string,
	pageNumber, pageSize int,
) (store.Page[domain.Project], error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	pageNumber, pageSize = store.NormalizePagination(pageNumber, pageSize)

	where := `WHERE owner_id = $1`
	args := []any{ownerID}
	if search != "" {
		where += ` AND title ILIKE '%' || $2 || '%'`
		args = append(args, search)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM projects ` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count projects",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return store.Page[domain.Project]{}, MapError(err)
	}

	listQuery := fmt.Sprintf(`
		SELECT id, title, owner_id, created_at, updated_at
		FROM projects
		%s
		ORDER BY created_at DESC, id
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, pageNumber*pageSize)

	rows, err := s.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		log.Error("failed to list projects",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return store.Page[domain.Project]{}, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	projects := []domain.Project{}
	for rows.Next() {
		var project domain.Project
		if err := rows.Scan(
			&project.ID,
			&project.Title,
			&project.OwnerID,
			&project.CreatedAt,
			&project.UpdatedAt,
		); err != nil {
			return store.Page[domain.Project]{}, MapError(err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return store.Page[domain.Project]{}, MapError(err)
	}

	return store.NewPage(projects, total, pageNumber, pageSize), nil
}

// Delete implements store.ProjectStore.Delete
// The tasks table declares ON DELETE CASCADE on project_id, so child tasks
// are removed by the database; callers that need the cascade to be explicit
// delete tasks first within the same transaction.
// Returns store.ErrProjectNotFound if the project does not exist.
func (s *PostgresProjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete project",
			slog.String("error", err.Error()),
			slog.String("project_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "project"); err != nil {
		log.Debug("attempted to delete non-existent project",
			slog.String("project_id", id.String()))
		return store.ErrProjectNotFound
	}

	log.Info("project deleted successfully", slog.String("project_id", id.String()))
	return nil
}
