package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"users_backend/internal/feature/users/domain"
	"users_backend/internal/feature/users/domain/entity"
	"users_backend/internal/feature/users/domain/valueobject"
)

// mockUserRepository is a mock implementation of repository.UserRepository.
// Methods without a configured func behave like an empty store.
type mockUserRepository struct {
	GetByEmailFunc    func(ctx context.Context, email valueobject.Email) (*entity.User, error)
	ExistsByEmailFunc func(ctx context.Context, email valueobject.Email) (bool, error)
	CountFunc         func(ctx context.Context) (int64, error)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email valueobject.Email) (*entity.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) GetAll(ctx context.Context) ([]*entity.User, error) {
	return nil, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email valueobject.Email) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *mockUserRepository) Add(ctx context.Context, user *entity.User) error { return nil }

func (m *mockUserRepository) Update(ctx context.Context, user *entity.User) error { return nil }

func (m *mockUserRepository) Delete(ctx context.Context, id uuid.UUID) error { return nil }

// fakeHasher prefixes the password instead of running bcrypt and counts its calls.
type fakeHasher struct {
	hashCalls    int
	verifyCalls  int
	hashErr      error
	lastVerified valueobject.PasswordHash
}

func (f *fakeHasher) Hash(password valueobject.PlaintextPassword) (valueobject.PasswordHash, error) {
	f.hashCalls++
	if f.hashErr != nil {
		return valueobject.PasswordHash{}, f.hashErr
	}
	if password.Reveal() == "" {
		return valueobject.PasswordHash{}, errors.New("empty password")
	}
	return valueobject.NewPasswordHash("hashed:" + password.Reveal())
}

func (f *fakeHasher) Verify(password valueobject.PlaintextPassword, hash valueobject.PasswordHash) bool {
	f.verifyCalls++
	f.lastVerified = hash
	return strings.TrimPrefix(hash.String(), "hashed:") == password.Reveal() && strings.HasPrefix(hash.String(), "hashed:")
}
