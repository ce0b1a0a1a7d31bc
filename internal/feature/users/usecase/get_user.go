package usecase

import (
	"context"

	"github.com/google/uuid"

	"users_backend/internal/feature/users/domain/repository"
	"users_backend/internal/feature/users/domain/valueobject"
)

// GetUserByIDHandler returns a single user projection.
type GetUserByIDHandler struct {
	users repository.UserRepository
}

func NewGetUserByIDHandler(users repository.UserRepository) *GetUserByIDHandler {
	return &GetUserByIDHandler{users: users}
}

func (h *GetUserByIDHandler) Handle(ctx context.Context, id uuid.UUID) (UserResponse, error) {
	user, err := h.users.GetByID(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}
	return toUserResponse(user), nil
}

// GetUserByEmailHandler looks a user up by normalized email.
type GetUserByEmailHandler struct {
	users repository.UserRepository
}

func NewGetUserByEmailHandler(users repository.UserRepository) *GetUserByEmailHandler {
	return &GetUserByEmailHandler{users: users}
}

// Handle fails with a validation error for a malformed address.
func (h *GetUserByEmailHandler) Handle(ctx context.Context, email string) (UserResponse, error) {
	emailVO, err := valueobject.NewEmail(email)
	if err != nil {
		return UserResponse{}, err
	}
	user, err := h.users.GetByEmail(ctx, emailVO)
	if err != nil {
		return UserResponse{}, err
	}
	return toUserResponse(user), nil
}

// ListUsersHandler returns every user ordered by name.
type ListUsersHandler struct {
	users repository.UserRepository
}

func NewListUsersHandler(users repository.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{users: users}
}

func (h *ListUsersHandler) Handle(ctx context.Context) (ListUsersResponse, error) {
	users, err := h.users.GetAll(ctx)
	if err != nil {
		return ListUsersResponse{}, err
	}
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return ListUsersResponse{Users: out}, nil
}
