package service

import (
	"context"
	"fmt"

	"users_backend/internal/feature/users/domain"
	"users_backend/internal/feature/users/domain/entity"
	"users_backend/internal/feature/users/domain/repository"
	"users_backend/internal/feature/users/domain/valueobject"
)

// UserCreationService builds new User aggregates.
// It never persists anything; callers store the result and record the audit event.
type UserCreationService struct {
	users  repository.UserRepository
	hasher PasswordHasher
}

// NewUserCreationService はUserCreationServiceの新しいインスタンスを生成します。
func NewUserCreationService(users repository.UserRepository, hasher PasswordHasher) *UserCreationService {
	return &UserCreationService{users: users, hasher: hasher}
}

// CreateUser validates the input in the order name, email, password and stops at the
// first violation. The email must not be registered yet. When the repository holds no
// users at all the new user is promoted to Admin.
//
// The existence and count checks are separate round-trips, so two concurrent
// registrations can both pass them. The unique index on email stays the real guard.
func (s *UserCreationService) CreateUser(ctx context.Context, name, email, password string) (*entity.User, error) {
	if err := entity.ValidateName(name); err != nil {
		return nil, err
	}
	emailVO, err := valueobject.NewEmail(email)
	if err != nil {
		return nil, err
	}
	passwordVO, err := valueobject.NewPlaintextPassword(password)
	if err != nil {
		return nil, err
	}

	// 重複チェックはハッシュ計算より先に行い、衝突時に無駄なbcryptを避ける
	exists, err := s.users.ExistsByEmail(ctx, emailVO)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	hash, err := s.hasher.Hash(passwordVO)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := entity.NewUser(name, emailVO, hash)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		user.PromoteToAdmin()
	}
	return user, nil
}
