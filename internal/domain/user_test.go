package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	validEmail := "test@example.com"
	validPassword := "correct-horse-battery"

	user, err := NewUser(validEmail, validPassword)

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if user.Email != validEmail {
		t.Errorf("Expected email %s, got %s", validEmail, user.Email)
	}

	if user.Password != validPassword {
		t.Errorf("Expected password %s, got %s", validPassword, user.Password)
	}

	if user.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if user.UpdatedAt.IsZero() {
		t.Error("Expected non-zero UpdatedAt time")
	}

	// Email is normalized to lower case so lookups by principal are stable
	user, err = NewUser("  Mixed@Example.COM ", validPassword)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Email != "mixed@example.com" {
		t.Errorf("Expected normalized email, got %s", user.Email)
	}

	// Test invalid email
	_, err = NewUser("", validPassword)
	if err != ErrEmptyEmail {
		t.Errorf("Expected error %v, got %v", ErrEmptyEmail, err)
	}

	_, err = NewUser("invalidemail", validPassword)
	if err != ErrInvalidEmail {
		t.Errorf("Expected error %v, got %v", ErrInvalidEmail, err)
	}

	// Test invalid password
	_, err = NewUser(validEmail, "short")
	if err != ErrPasswordTooShort {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooShort, err)
	}

	_, err = NewUser(validEmail, strings.Repeat("x", 73))
	if err != ErrPasswordTooLong {
		t.Errorf("Expected error %v, got %v", ErrPasswordTooLong, err)
	}
}

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"user@example.com", "user@example.com"},
		{"User@Example.COM", "user@example.com"},
		{"  padded@example.com ", "padded@example.com"},
		{" MiXeD@ExAmPlE.cOm\t", "mixed@example.com"},
	}

	for _, tc := range cases {
		if got := NormalizeEmail(tc.in); got != tc.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestUserValidate(t *testing.T) {
	validUser := User{
		ID:             uuid.New(),
		Email:          "test@example.com",
		HashedPassword: "$2a$10$notarealhashbutlongenough",
	}

	if err := validUser.Validate(); err != nil {
		t.Errorf("Expected no error for valid user, got %v", err)
	}

	noID := validUser
	noID.ID = uuid.Nil
	if err := noID.Validate(); err != ErrEmptyUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyUserID, err)
	}

	// Stored users without a plaintext password must carry a hash
	noHash := validUser
	noHash.HashedPassword = ""
	if err := noHash.Validate(); err != ErrEmptyPassword {
		t.Errorf("Expected error %v, got %v", ErrEmptyPassword, err)
	}
}

func TestValidateEmailFormat(t *testing.T) {
	cases := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"a@b.co", true},
		{"user@localhost", false},
		{"@example.com", false},
		{"user@", false},
		{"user@.com", false},
		{"user@example.", false},
		{"plainstring", false},
	}

	for _, tc := range cases {
		if got := validateEmailFormat(tc.email); got != tc.valid {
			t.Errorf("validateEmailFormat(%q) = %v, want %v", tc.email, got, tc.valid)
		}
	}
}
