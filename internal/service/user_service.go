package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dkratzer/taskboard-api/internal/domain"
	"github.com/dkratzer/taskboard-api/internal/service/auth"
	"github.com/dkratzer/taskboard-api/internal/store"
)

// dummyBcryptHash is compared against when a login targets an unknown email,
// so the unknown-email and wrong-password paths cost the same and response
// timing cannot be used to enumerate accounts.
const dummyBcryptHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// WelcomeMailer sends the post-registration welcome mail.
// Implemented by platform/mailer; nil disables the mail entirely.
type WelcomeMailer interface {
	SendWelcome(to string) error
}

// UserService provides account registration and credential verification.
type UserService interface {
	// Register creates a new account with the given email and password.
	// The password is stored only after one-way hashing.
	// Returns store.ErrEmailExists if the email is already taken.
	Register(ctx context.Context, email, password string) (*domain.User, error)

	// Authenticate verifies the given credentials and returns the account
	// on success. Returns auth.ErrInvalidCredentials for both unknown email
	// and wrong password.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	verifier  auth.PasswordVerifier
	mailer    WelcomeMailer
	db        *sql.DB
	logger    *slog.Logger

	// runTx defaults to store.RunInTransaction; tests stub it out so
	// service logic can be exercised without a database.
	runTx func(ctx context.Context, db *sql.DB, fn store.TxFn) error
}

// NewUserService creates a new UserService. mailer may be nil, in which
// case no welcome mail is sent.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	mailer WelcomeMailer,
	db *sql.DB,
	logger *slog.Logger,
) UserService {
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		verifier:  verifier,
		mailer:    mailer,
		db:        db,
		logger:    logger.With("component", "user_service"),
		runTx:     store.RunInTransaction,
	}
}

// Register creates a new user with the specified email and password.
// Uses a transaction to ensure atomicity of the operation.
func (s *UserServiceImpl) Register(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	user, err := domain.NewUser(email, password)
	if err != nil {
		s.logger.Debug("failed to create user object",
			"error", err,
			"email", email)
		return nil, err
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		s.logger.Error("failed to hash password",
			"error", err,
			"email", user.Email)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = "" // Plaintext never reaches the store

	err = s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Create(ctx, user)
	})

	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to register with existing email",
				"email", user.Email)
			return nil, err
		}
		s.logger.Error("failed to save user",
			"error", err,
			"email", user.Email)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered successfully",
		"user_id", user.ID,
		"email", user.Email)

	// The welcome mail is best effort; registration already succeeded.
	if s.mailer != nil {
		go func(to string) {
			if err := s.mailer.SendWelcome(to); err != nil {
				s.logger.Warn("failed to send welcome mail",
					"error", err,
					"email", to)
			}
		}(user.Email)
	}

	return user, nil
}

// Authenticate verifies credentials against the stored hash.
func (s *UserServiceImpl) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.User, error) {
	// Registration normalizes the email before storing it, so the lookup
	// has to normalize the same way or mixed-case logins never match.
	email = domain.NormalizeEmail(email)

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Burn a bcrypt comparison so this path costs the same as a
			// wrong password for an existing account.
			_ = s.verifier.Compare(dummyBcryptHash, password)
			s.logger.Debug("authentication failed: unknown email", "email", email)
			return nil, auth.ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user for authentication",
			"error", err,
			"email", email)
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("authentication failed: wrong password", "email", email)
		return nil, auth.ErrInvalidCredentials
	}

	return user, nil
}
