package service

import (
	"context"
	"fmt"
	"strings"

	"users_backend/internal/feature/users/domain"
	"users_backend/internal/feature/users/domain/entity"
	"users_backend/internal/feature/users/domain/repository"
	"users_backend/internal/feature/users/domain/valueobject"
)

// UserValidationService groups the single-field checks used outside of creation.
type UserValidationService struct {
	users repository.UserRepository
}

func NewUserValidationService(users repository.UserRepository) *UserValidationService {
	return &UserValidationService{users: users}
}

func (s *UserValidationService) ValidateName(name string) error {
	return entity.ValidateName(name)
}

func (s *UserValidationService) ValidateEmail(email string) (valueobject.Email, error) {
	return valueobject.NewEmail(email)
}

func (s *UserValidationService) ValidatePassword(password string) (valueobject.PlaintextPassword, error) {
	return valueobject.NewPlaintextPassword(password)
}

// ValidateEmailNotRegistered fails with domain.ErrEmailAlreadyExists when email is taken.
func (s *UserValidationService) ValidateEmailNotRegistered(ctx context.Context, email string) error {
	emailVO, err := valueobject.NewEmail(email)
	if err != nil {
		return err
	}
	exists, err := s.users.ExistsByEmail(ctx, emailVO)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return domain.ErrEmailAlreadyExists
	}
	return nil
}

// ValidateUpdate checks only the fields that were supplied.
// A blank name or password means "leave unchanged" and is not an error.
func (s *UserValidationService) ValidateUpdate(name, password string) error {
	if strings.TrimSpace(name) != "" {
		if err := s.ValidateName(name); err != nil {
			return err
		}
	}
	if strings.TrimSpace(password) != "" {
		if _, err := s.ValidatePassword(password); err != nil {
			return err
		}
	}
	return nil
}
