package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"users_backend/internal/feature/users/domain"
	"users_backend/internal/feature/users/domain/entity"
	"users_backend/internal/feature/users/domain/valueobject"
	jwtmw "users_backend/internal/platform/jwt"
)

// mockUserRepository is a mock implementation of repository.UserRepository.
// It simulates database operations during testing.
type mockUserRepository struct {
	GetByEmailFunc    func(ctx context.Context, email valueobject.Email) (*entity.User, error)
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetAllFunc        func(ctx context.Context) ([]*entity.User, error)
	ExistsByEmailFunc func(ctx context.Context, email valueobject.Email) (bool, error)
	CountFunc         func(ctx context.Context) (int64, error)
	AddFunc           func(ctx context.Context, user *entity.User) error
	UpdateFunc        func(ctx context.Context, user *entity.User) error
	DeleteFunc        func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email valueobject.Email) (*entity.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) GetAll(ctx context.Context) ([]*entity.User, error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx)
	}
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

func (m *mockUserRepository) Add(ctx context.Context, user *entity.User) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, user)
	}
	return nil // Default: success
}

func (m *mockUserRepository) Update(ctx context.Context, user *entity.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil // Default: success
}

func (m *mockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil // Default: success
}

// recordingEventStore keeps appended events in memory.
type recordingEventStore struct {
	mu        sync.Mutex
	events    []entity.Event
	appendErr error
}

func (s *recordingEventStore) Append(ctx context.Context, aggregateID uuid.UUID, eventType string, payload any) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, entity.Event{
		ID:          uuid.New(),
		AggregateID: aggregateID,
		Type:        eventType,
		CreatedAt:   time.Now().UTC(),
	})
	return nil
}

func (s *recordingEventStore) ListByAggregate(ctx context.Context, aggregateID uuid.UUID) ([]entity.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Event
	for _, e := range s.events {
		if e.AggregateID == aggregateID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *recordingEventStore) types() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Type)
	}
	return out
}

// mockUserCreator is a mock implementation of UserCreator.
type mockUserCreator struct {
	CreateUserFunc func(ctx context.Context, name, email, password string) (*entity.User, error)
}

func (m *mockUserCreator) CreateUser(ctx context.Context, name, email, password string) (*entity.User, error) {
	return m.CreateUserFunc(ctx, name, email, password)
}

// mockAuthenticator is a mock implementation of Authenticator.
type mockAuthenticator struct {
	AuthenticateFunc func(ctx context.Context, email, password string) (*entity.User, error)
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	return m.AuthenticateFunc(ctx, email, password)
}

// mockTokenGenerator is a mock implementation of TokenGenerator.
type mockTokenGenerator struct {
	GenerateFunc func(subject jwtmw.Subject, settings jwtmw.Settings) (string, time.Time, error)
}

func (m *mockTokenGenerator) Generate(subject jwtmw.Subject, settings jwtmw.Settings) (string, time.Time, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(subject, settings)
	}
	return "mock-jwt-token", time.Now().Add(time.Hour), nil
}

// stubValidator accepts everything unless err is set.
type stubValidator struct{ err error }

func (v stubValidator) ValidateUpdate(name, password string) error { return v.err }

// prefixHasher is a deterministic stand-in for bcrypt.
type prefixHasher struct{ calls int }

func (h *prefixHasher) Hash(password valueobject.PlaintextPassword) (valueobject.PasswordHash, error) {
	h.calls++
	if password.Reveal() == "" {
		return valueobject.PasswordHash{}, errors.New("empty password")
	}
	return valueobject.NewPasswordHash("hashed:" + password.Reveal())
}

func (h *prefixHasher) Verify(password valueobject.PlaintextPassword, hash valueobject.PasswordHash) bool {
	return strings.HasPrefix(hash.String(), "hashed:") && strings.TrimPrefix(hash.String(), "hashed:") == password.Reveal()
}

// newTestUser builds a stored-looking user for handler tests.
func newTestUser(name, email, hash string, profile valueobject.Profile) *entity.User {
	e, _ := valueobject.NewEmail(email)
	h, _ := valueobject.NewPasswordHash(hash)
	return entity.RehydrateUser(uuid.New(), name, e, h, profile)
}
