// Package domain defines domain-level errors for the users feature.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors for user lifecycle operations.
// Upper layers classify failures with errors.Is and never inspect messages.
var (
	// ErrValidation indicates that an input violated a domain rule.
	// Concrete failures are reported as *ValidationError, which unwraps to this value.
	ErrValidation = errors.New("validation failed")

	// ErrEmailAlreadyExists indicates that another user already owns the email address.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound indicates that no user was found with the given criteria.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is the single failure returned by authentication.
	// Unknown email and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError describes which field failed validation and why.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError returns a *ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap allows errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
