// Package repository defines repository interfaces for the users feature.
package repository

import (
	"context"

	"github.com/google/uuid"

	"users_backend/internal/feature/users/domain/entity"
	"users_backend/internal/feature/users/domain/valueobject"
)

// UserRepository abstracts the persistence layer for user aggregates.
// It is shared by the domain services and the usecase layer and is
// independent of specific database implementations.
type UserRepository interface {
	// GetByEmail returns domain.ErrUserNotFound when no user owns the address.
	GetByEmail(ctx context.Context, email valueobject.Email) (*entity.User, error)

	// GetByID returns domain.ErrUserNotFound when the id is unknown.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// GetAll returns every user ordered by name ascending.
	GetAll(ctx context.Context) ([]*entity.User, error)

	ExistsByEmail(ctx context.Context, email valueobject.Email) (bool, error)

	Count(ctx context.Context) (int64, error)

	// Add persists a new user. A unique violation on the email column
	// is reported as domain.ErrEmailAlreadyExists.
	Add(ctx context.Context, user *entity.User) error

	// Update overwrites a stored user. It returns domain.ErrUserNotFound
	// when the row does not exist.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes the user. It returns domain.ErrUserNotFound when the row does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
