package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"users_backend/internal/feature/users/domain/entity"
	"users_backend/internal/feature/users/domain/repository"
	"users_backend/internal/feature/users/domain/service"
	"users_backend/internal/feature/users/domain/valueobject"
)

// UpdateUserInput carries the optional changes. Blank fields are left unchanged.
type UpdateUserInput struct {
	UserID      uuid.UUID
	Name        string
	NewPassword string
}

// UpdateUserHandler changes the name and/or the password of a user.
type UpdateUserHandler struct {
	users     repository.UserRepository
	validator UpdateValidator
	hasher    service.PasswordHasher
	events    EventStore
}

// NewUpdateUserHandler はUpdateUserHandlerの新しいインスタンスを生成します。
func NewUpdateUserHandler(users repository.UserRepository, validator UpdateValidator, hasher service.PasswordHasher, events EventStore) *UpdateUserHandler {
	return &UpdateUserHandler{users: users, validator: validator, hasher: hasher, events: events}
}

// Handle validates every supplied field before touching the aggregate.
// With a new password both name and hash are replaced; with only a different
// name the hash is kept. UserUpdated is recorded only when something changed.
func (h *UpdateUserHandler) Handle(ctx context.Context, in UpdateUserInput) (UserResponse, error) {
	user, err := h.users.GetByID(ctx, in.UserID)
	if err != nil {
		return UserResponse{}, err
	}
	if err := h.validator.ValidateUpdate(in.Name, in.NewPassword); err != nil {
		return UserResponse{}, err
	}

	name := user.Name()
	if strings.TrimSpace(in.Name) != "" {
		name = strings.TrimSpace(in.Name)
	}

	passwordChanged := false
	changed := false
	switch {
	case strings.TrimSpace(in.NewPassword) != "":
		plaintext, err := valueobject.NewPlaintextPassword(in.NewPassword)
		if err != nil {
			return UserResponse{}, err
		}
		hash, err := h.hasher.Hash(plaintext)
		if err != nil {
			return UserResponse{}, err
		}
		if err := user.Update(name, hash); err != nil {
			return UserResponse{}, err
		}
		passwordChanged, changed = true, true
	case name != user.Name():
		if err := user.SetName(name); err != nil {
			return UserResponse{}, err
		}
		changed = true
	}

	if err := h.users.Update(ctx, user); err != nil {
		return UserResponse{}, err
	}

	if changed {
		appendAudit(ctx, h.events, user.ID(), entity.EventUserUpdated, userUpdatedPayload{
			ID:              user.ID(),
			Name:            user.Name(),
			PasswordChanged: passwordChanged,
		})
	}
	return toUserResponse(user), nil
}
