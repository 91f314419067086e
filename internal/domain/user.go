package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors. All wrap ErrValidation so the API layer can map
// them to a 400 without enumerating each one.
var (
	ErrEmptyUserID         = fmt.Errorf("%w: user ID cannot be empty", ErrValidation)
	ErrEmptyEmail          = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrPasswordTooShort    = fmt.Errorf("%w: password must be at least 12 characters long", ErrValidation)
	ErrPasswordTooLong     = fmt.Errorf("%w: password must be at most 72 characters long", ErrValidation)
	ErrEmptyPassword       = fmt.Errorf("%w: password cannot be empty", ErrValidation)
	ErrEmptyHashedPassword = fmt.Errorf("%w: hashed password cannot be empty", ErrValidation)
)

// User represents a registered account. The email doubles as the login
// identifier and as the principal used for every ownership check.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext password, used temporarily during registration
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given email and password.
// It generates a new UUID for the user ID and sets the creation/update
// timestamps. Returns an error if validation fails.
//
// NOTE: This function only sets up the user structure with the plaintext
// password. The caller is responsible for hashing the password before
// storing the user.
func NewUser(email, password string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Email:     NormalizeEmail(email),
		Password:  password, // Plaintext password, must be hashed before storage
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NormalizeEmail canonicalizes an email for storage and lookup. Every email
// that reaches the store must pass through here, otherwise a user registered
// as "User@Example.com" could never log back in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.Password != "" {
		// When a plaintext password is provided, validate its length.
		// 72 bytes is bcrypt's practical limit.
		if len(u.Password) < 12 {
			return ErrPasswordTooShort
		}
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else {
		// Existing users loaded from the store carry only the hash.
		if u.HashedPassword == "" {
			return ErrEmptyPassword
		}
	}

	return nil
}

// validateEmailFormat performs basic validation of email format: a single @
// with a dotted domain after it. Request payload validation handles the
// stricter check; this is a last line of defense for the domain layer.
func validateEmailFormat(email string) bool {
	atIndex := strings.Index(email, "@")
	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	domainPart := email[atIndex+1:]
	dotIndex := strings.Index(domainPart, ".")
	return dotIndex > 0 && dotIndex < len(domainPart)-1
}
