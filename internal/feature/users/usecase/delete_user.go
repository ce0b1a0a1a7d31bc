package usecase

import (
	"context"

	"github.com/google/uuid"

	"users_backend/internal/feature/users/domain/entity"
	"users_backend/internal/feature/users/domain/repository"
)

// DeleteUserHandler removes a user and records UserDeleted.
type DeleteUserHandler struct {
	users  repository.UserRepository
	events EventStore
}

// NewDeleteUserHandler はDeleteUserHandlerの新しいインスタンスを生成します。
func NewDeleteUserHandler(users repository.UserRepository, events EventStore) *DeleteUserHandler {
	return &DeleteUserHandler{users: users, events: events}
}

// Handle returns Deleted=false with domain.ErrUserNotFound when the user does not exist.
func (h *DeleteUserHandler) Handle(ctx context.Context, id uuid.UUID) (DeleteUserResponse, error) {
	user, err := h.users.GetByID(ctx, id)
	if err != nil {
		return DeleteUserResponse{Deleted: false}, err
	}
	if err := h.users.Delete(ctx, id); err != nil {
		return DeleteUserResponse{Deleted: false}, err
	}

	appendAudit(ctx, h.events, id, entity.EventUserDeleted, userDeletedPayload{
		ID:    id,
		Email: user.Email().String(),
	})
	return DeleteUserResponse{Deleted: true}, nil
}
