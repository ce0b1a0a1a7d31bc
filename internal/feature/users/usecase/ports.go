// Package usecase はusersフィーチャーのアプリケーション層（ユースケースハンドラー）を実装します。
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"users_backend/internal/feature/users/domain/entity"
	jwtmw "users_backend/internal/platform/jwt"
)

// EventStore is the append-only audit log.
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type EventStore interface {
	// Append serializes payload as JSON and records it under aggregateID.
	Append(ctx context.Context, aggregateID uuid.UUID, eventType string, payload any) error

	// ListByAggregate returns the events of aggregateID oldest first.
	ListByAggregate(ctx context.Context, aggregateID uuid.UUID) ([]entity.Event, error)
}

// UserCreator builds a validated, hashed, not yet persisted user.
type UserCreator interface {
	CreateUser(ctx context.Context, name, email, password string) (*entity.User, error)
}

// Authenticator verifies login credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*entity.User, error)
}

// UpdateValidator pre-checks the optional fields of an update.
type UpdateValidator interface {
	ValidateUpdate(name, password string) error
}

// TokenGenerator issues signed access tokens.
type TokenGenerator interface {
	Generate(subject jwtmw.Subject, settings jwtmw.Settings) (string, time.Time, error)
}
