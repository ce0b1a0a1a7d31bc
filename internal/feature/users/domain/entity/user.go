// Package entity defines the domain entities for the users feature.
package entity

import (
	"strings"

	"github.com/google/uuid"

	"users_backend/internal/feature/users/domain"
	"users_backend/internal/feature/users/domain/valueobject"
)

// User is the aggregate root of the users feature.
// Fields are unexported so every change goes through the methods below,
// which keep the name non-empty and the password in hashed form.
type User struct {
	id           uuid.UUID
	name         string
	email        valueobject.Email
	passwordHash valueobject.PasswordHash
	profile      valueobject.Profile
}

// NewUser builds a User with a freshly generated id and the default profile.
// The password must already be hashed.
func NewUser(name string, email valueobject.Email, hash valueobject.PasswordHash) (*User, error) {
	if email.IsZero() {
		return nil, domain.NewValidationError("email", "email is required")
	}
	if hash.IsZero() {
		return nil, domain.NewValidationError("password_hash", "password hash is required")
	}
	u := &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: hash,
		profile:      valueobject.ProfileUser,
	}
	if err := u.SetName(name); err != nil {
		return nil, err
	}
	return u, nil
}

// RehydrateUser rebuilds a User from persisted state without generating a new id.
// Repositories are the only expected callers.
func RehydrateUser(id uuid.UUID, name string, email valueobject.Email, hash valueobject.PasswordHash, profile valueobject.Profile) *User {
	return &User{
		id:           id,
		name:         name,
		email:        email,
		passwordHash: hash,
		profile:      profile,
	}
}

// ValidateName checks that name has visible characters.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("name", "name is required")
	}
	return nil
}

// SetName replaces the display name with its trimmed form.
func (u *User) SetName(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	u.name = strings.TrimSpace(name)
	return nil
}

// PromoteToAdmin sets the profile to Admin. Calling it twice is harmless.
func (u *User) PromoteToAdmin() {
	u.profile = valueobject.ProfileAdmin
}

// Update replaces the name and the password hash together.
// Nothing is changed when either argument is invalid.
func (u *User) Update(name string, hash valueobject.PasswordHash) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if hash.IsZero() {
		return domain.NewValidationError("password_hash", "password hash is required")
	}
	u.name = strings.TrimSpace(name)
	u.passwordHash = hash
	return nil
}

func (u *User) ID() uuid.UUID                          { return u.id }
func (u *User) Name() string                           { return u.name }
func (u *User) Email() valueobject.Email               { return u.email }
func (u *User) PasswordHash() valueobject.PasswordHash { return u.passwordHash }
func (u *User) Profile() valueobject.Profile           { return u.profile }
