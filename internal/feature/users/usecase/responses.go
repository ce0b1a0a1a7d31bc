package usecase

import (
	"time"

	"github.com/google/uuid"

	"users_backend/internal/feature/users/domain/entity"
)

// UserResponse is the read projection of a user. It never carries the password hash.
type UserResponse struct {
	ID      uuid.UUID
	Name    string
	Email   string
	Profile string
}

func toUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:      u.ID(),
		Name:    u.Name(),
		Email:   u.Email().String(),
		Profile: u.Profile().String(),
	}
}

// LoginResponse carries the issued access token and its expiry in UTC.
type LoginResponse struct {
	AccessToken  string
	ExpiresAtUTC time.Time
}

// DeleteUserResponse reports whether a user was removed.
type DeleteUserResponse struct {
	Deleted bool
}

// ListUsersResponse holds users ordered by name.
type ListUsersResponse struct {
	Users []UserResponse
}

// audit payloads
type userCreatedPayload struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Profile string    `json:"profile"`
}

type userUpdatedPayload struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	PasswordChanged bool      `json:"passwordChanged"`
}

type userDeletedPayload struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}
