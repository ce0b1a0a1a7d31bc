package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"users_backend/internal/feature/users/domain/entity"
	"users_backend/internal/feature/users/domain/repository"
)

// CreateUserInput is the registration request.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// CreateUserHandler registers a new user and records UserCreated.
type CreateUserHandler struct {
	creator UserCreator
	users   repository.UserRepository
	events  EventStore
}

// NewCreateUserHandler はCreateUserHandlerの新しいインスタンスを生成します。
func NewCreateUserHandler(creator UserCreator, users repository.UserRepository, events EventStore) *CreateUserHandler {
	return &CreateUserHandler{creator: creator, users: users, events: events}
}

// Handle builds the aggregate, stores it and then appends the audit event.
// A unique violation raised by the store comes back as domain.ErrEmailAlreadyExists.
// Nothing is appended when the insert fails.
func (h *CreateUserHandler) Handle(ctx context.Context, in CreateUserInput) (UserResponse, error) {
	user, err := h.creator.CreateUser(ctx, in.Name, in.Email, in.Password)
	if err != nil {
		return UserResponse{}, err
	}
	if err := h.users.Add(ctx, user); err != nil {
		return UserResponse{}, err
	}

	appendAudit(ctx, h.events, user.ID(), entity.EventUserCreated, userCreatedPayload{
		ID:      user.ID(),
		Name:    user.Name(),
		Email:   user.Email().String(),
		Profile: user.Profile().String(),
	})
	return toUserResponse(user), nil
}

// appendAudit records an event after the primary write has committed.
// A failure is logged and swallowed because the user change already happened.
func appendAudit(ctx context.Context, events EventStore, aggregateID uuid.UUID, eventType string, payload any) {
	if err := events.Append(ctx, aggregateID, eventType, payload); err != nil {
		slog.Error("failed to append audit event", "error", err, "type", eventType, "aggregate_id", aggregateID.String())
	}
}
