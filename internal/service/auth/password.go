package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher defines the interface for one-way password hashing.
type PasswordHasher interface {
	// Hash returns the one-way hash of the given plaintext password.
	Hash(password string) (string, error)
}

// PasswordVerifier defines the interface for comparing passwords.
type PasswordVerifier interface {
	// Compare compares a hashed password with its possible plaintext equivalent.
	// Returns nil on success, or an error on failure (e.g., mismatch).
	Compare(hashedPassword, password string) error
}

// BcryptHasher implements PasswordHasher and PasswordVerifier using bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a new BcryptHasher with the default bcrypt cost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

// Hash implements the PasswordHasher interface using bcrypt.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare implements the PasswordVerifier interface using bcrypt.
func (h *BcryptHasher) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
