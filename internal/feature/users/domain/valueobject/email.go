// Package valueobject defines the immutable value types of the users feature.
package valueobject

import (
	"regexp"
	"strings"

	"users_backend/internal/feature/users/domain"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email is a validated, lower-cased email address.
// The zero value is not a valid Email; use NewEmail.
type Email struct {
	value string
}

// NewEmail validates raw against the address pattern and normalizes it to lower case.
func NewEmail(raw string) (Email, error) {
	if strings.TrimSpace(raw) == "" {
		return Email{}, domain.NewValidationError("email", "email is required")
	}
	if !emailPattern.MatchString(raw) {
		return Email{}, domain.NewValidationError("email", "invalid email")
	}
	return Email{value: strings.ToLower(raw)}, nil
}

// String returns the normalized address.
func (e Email) String() string {
	return e.value
}

// Equals reports whether both addresses normalize to the same value.
func (e Email) Equals(other Email) bool {
	return e.value == other.value
}

// IsZero reports whether e was never initialized through NewEmail.
func (e Email) IsZero() bool {
	return e.value == ""
}
