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

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

const taskColumns = `id, project_id, title, description, due_date, completed, created_at, updated_at`

func scanTask(row interface{ Scan(dest ...any) error }, task *domain.Task) error {
	return row.Scan(
		&task.ID,
		&task.ProjectID,
		&task.Title,
		&task.Description,
		&task.DueDate,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
}

// Create implements store.TaskStore.Create
// Returns store.ErrInvalidEntity if the parent project does not exist
// (foreign key violation).
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.ProjectID,
		task.Title,
		task.Description,
		task.DueDate,
		task.Completed,
		task.CreatedAt,
		task.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during task creation",
				slog.String("task_id", task.ID.String()),
				slog.String("project_id", task.ProjectID.String()))
			return fmt.Errorf("%w: project with ID %s not found",
				store.ErrInvalidEntity, task.ProjectID)
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("project_id", task.ProjectID.String()))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	var task domain.Task
	err := scanTask(s.db.QueryRowContext(ctx, query, id), &task)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}

	return &task, nil
}

// ListByProject implements store.TaskStore.ListByProject
func (s *PostgresTaskStore) ListByProject(
	ctx context.Context,
	projectID uuid.UUID,
	completed *bool,
	pageNumber, pageSize int,
) (store.Page[domain.Task], error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	pageNumber, pageSize = store.NormalizePagination(pageNumber, pageSize)

	where := `WHERE project_id = $1`
	args := []any{projectID}
	if completed != nil {
		where += ` AND completed = $2`
		args = append(args, *completed)
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM tasks ` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error("failed to count tasks",
			slog.String("error", err.Error()),
			slog.String("project_id", projectID.String()))
		return store.Page[domain.Task]{}, MapError(err)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM tasks
		%s
		ORDER BY created_at DESC, id
		LIMIT $%d OFFSET $%d
	`, taskColumns, where, len(args)+1, len(args)+2)
	args = append(args, pageSize, pageNumber*pageSize)

	rows, err := s.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("project_id", projectID.String()))
		return store.Page[domain.Task]{}, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	tasks := []domain.Task{}
	for rows.Next() {
		var task domain.Task
		if err := scanTask(rows, &task); err != nil {
			return store.Page[domain.Task]{}, MapError(err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return store.Page[domain.Task]{}, MapError(err)
	}

	return store.NewPage(tasks, total, pageNumber, pageSize), nil
}

// ListAllByProject implements store.TaskStore.ListAllByProject
// Deliberately unpaginated: progress computation needs exact counts.
func (s *PostgresTaskStore) ListAllByProject(
	ctx context.Context,
	projectID uuid.UUID,
) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = $1 ORDER BY created_at DESC, id`

	rows, err := s.db.QueryContext(ctx, query, projectID)
	if err != nil {
		log.Error("failed to list all tasks",
			slog.String("error", err.Error()),
			slog.String("project_id", projectID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	tasks := []domain.Task{}
	for rows.Next() {
		var task domain.Task
		if err := scanTask(rows, &task); err != nil {
			return nil, MapError(err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return tasks, nil
}

// Update implements store.TaskStore.Update
// Overwrites every mutable field, including completed, so a completed task
// can be reopened through this path.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		UPDATE tasks
		SET title = $2, description = $3, due_date = $4, completed = $5, updated_at = $6
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		task.DueDate,
		task.Completed,
		task.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		log.Debug("attempted to update non-existent task",
			slog.String("task_id", task.ID.String()))
		return store.ErrTaskNotFound
	}

	log.Info("task updated successfully", slog.String("task_id", task.ID.String()))
	return nil
}

// Delete implements store.TaskStore.Delete
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		log.Debug("attempted to delete non-existent task",
			slog.String("task_id", id.String()))
		return store.ErrTaskNotFound
	}

	log.Info("task deleted successfully", slog.String("task_id", id.String()))
	return nil
}

// DeleteByProject implements store.TaskStore.DeleteByProject
// Zero deleted rows is not an error; a project may simply have no tasks.
func (s *PostgresTaskStore) DeleteByProject(
	ctx context.Context,
	projectID uuid.UUID,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE project_id = $1`, projectID)
	if err != nil {
		log.Error("failed to delete tasks by project",
			slog.String("error", err.Error()),
			slog.String("project_id", projectID.String()))
		return 0, MapError(err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Info("tasks deleted for project",
		slog.String("project_id", projectID.String()),
		slog.Int64("deleted", deleted))
	return deleted, nil
}
