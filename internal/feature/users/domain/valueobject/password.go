package valueobject

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"users_backend/internal/feature/users/domain"
)

const (
	// MinPasswordLength is the minimum number of characters of a plaintext password.
	MinPasswordLength = 8
	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes = 72

	redacted = "[Protected]"
)

// PlaintextPassword is a password as typed by the user.
// It only lives for the duration of a request and is never persisted.
type PlaintextPassword struct {
	value string
}

// NewPlaintextPassword checks raw against the password policy:
// at least MinPasswordLength characters containing an uppercase letter,
// a lowercase letter, a digit and a punctuation or symbol character.
// The UTF-8 encoding must not exceed MaxPasswordBytes.
// The raw characters are kept verbatim.
func NewPlaintextPassword(raw string) (PlaintextPassword, error) {
	if strings.TrimSpace(raw) == "" {
		return PlaintextPassword{}, domain.NewValidationError("password", "password is required")
	}
	if len(raw) > MaxPasswordBytes {
		return PlaintextPassword{}, domain.NewValidationError("password", "password must be at most 72 bytes long")
	}
	if !satisfiesPolicy(raw) {
		return PlaintextPassword{}, domain.NewValidationError("password",
			"password must have at least 8 characters, an uppercase letter, a lowercase letter, a digit and a special character")
	}
	return PlaintextPassword{value: raw}, nil
}

func satisfiesPolicy(raw string) bool {
	if utf8.RuneCountInString(raw) < MinPasswordLength {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range raw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return upper && lower && digit && special
}

// Reveal returns the raw characters. Only the password hasher should call it.
func (p PlaintextPassword) Reveal() string {
	return p.value
}

// String never prints the password.
func (p PlaintextPassword) String() string {
	return redacted
}

// GoString keeps %#v from leaking the password into logs.
func (p PlaintextPassword) GoString() string {
	return redacted
}

// PasswordHash is the opaque persisted form of a password.
// It is produced by a hasher or loaded from storage and is never
// validated against the plaintext policy.
type PasswordHash struct {
	value string
}

// NewPasswordHash wraps an already computed hash.
func NewPasswordHash(raw string) (PasswordHash, error) {
	if strings.TrimSpace(raw) == "" {
		return PasswordHash{}, domain.NewValidationError("password_hash", "password hash is required")
	}
	return PasswordHash{value: raw}, nil
}

// String returns the encoded hash.
func (h PasswordHash) String() string {
	return h.value
}

// IsZero reports whether h holds no hash.
func (h PasswordHash) IsZero() bool {
	return h.value == ""
}
