package dto

import (
	"encoding/json"
	"time"

	"users_backend/internal/feature/users/domain/entity"
	"users_backend/internal/feature/users/usecase"
)

// UserRes is the public projection of a user.
type UserRes struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Profile string `json:"profile"`
}

// LoginRes represents the response for a successful login.
type LoginRes struct {
	AccessToken  string    `json:"access_token"`
	ExpiresAtUTC time.Time `json:"expires_at_utc"`
}

// ListUsersRes wraps the name-ordered user list.
type ListUsersRes struct {
	Users []UserRes `json:"users"`
}

// MeRes is built from the token claims of the caller.
type MeRes struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// EventRes is one entry of a user's audit trail.
type EventRes struct {
	ID           string          `json:"id"`
	AggregateID  string          `json:"aggregate_id"`
	Type         string          `json:"type"`
	Payload      json.RawMessage `json:"payload"`
	CreatedAtUTC time.Time       `json:"created_at_utc"`
}

// EventsRes wraps the audit trail in append order.
type EventsRes struct {
	Events []EventRes `json:"events"`
}

// ErrorRes is the body of every non-2xx response.
type ErrorRes struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func FromUser(u usecase.UserResponse) UserRes {
	return UserRes{
		ID:      u.ID.String(),
		Name:    u.Name,
		Email:   u.Email,
		Profile: u.Profile,
	}
}

func FromUsers(list usecase.ListUsersResponse) ListUsersRes {
	out := ListUsersRes{Users: make([]UserRes, 0, len(list.Users))}
	for _, u := range list.Users {
		out.Users = append(out.Users, FromUser(u))
	}
	return out
}

func FromLogin(r usecase.LoginResponse) LoginRes {
	return LoginRes{AccessToken: r.AccessToken, ExpiresAtUTC: r.ExpiresAtUTC.UTC()}
}

// FromEvents keeps stored payloads verbatim; anything that is not valid JSON is sent as a string.
func FromEvents(events []entity.Event) EventsRes {
	out := EventsRes{Events: make([]EventRes, 0, len(events))}
	for _, e := range events {
		payload := json.RawMessage(e.Payload)
		if !json.Valid(payload) {
			payload, _ = json.Marshal(e.Payload)
		}
		out.Events = append(out.Events, EventRes{
			ID:           e.ID.String(),
			AggregateID:  e.AggregateID.String(),
			Type:         e.Type,
			Payload:      payload,
			CreatedAtUTC: e.CreatedAt.UTC(),
		})
	}
	return out
}
