package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/dkratzer/taskboard-api/internal/domain"
	"github.com/dkratzer/taskboard-api/internal/platform/logger"
	"github.com/dkratzer/taskboard-api/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.UserStore.Create
// It saves a new user to the database. The user must carry a hashed
// password; the plaintext Password field is never written.
// Returns store.ErrEmailExists if the email is already taken.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return err
	}

	query := `
		INSERT INTO users (id, email, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.HashedPassword,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("attempted to create user with existing email",
				slog.String("email", user.Email))
			return store.ErrEmailExists
		}

		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	log.Info("user created successfully",
		slog.String("user_id", user.ID.String()),
		slog.String("email", user.Email))
	return nil
}

// GetByID implements store.UserStore.GetByID
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, email, hashed_password, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("user_id", id.String()))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, MapError(err)
	}

	return &user, nil
}

// GetByEmail implements store.UserStore.GetByEmail
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, email, hashed_password, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found by email", slog.String("email", email))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by email",
			slog.String("error", err.Error()),
			slog.String("email", email))
		return nil, MapError(err)
	}

	return &user, nil
}
