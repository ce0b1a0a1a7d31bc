package entity

import (
	"time"

	"github.com/google/uuid"
)

// Event types recorded in the audit log.
const (
	EventUserCreated = "UserCreated"
	EventUserUpdated = "UserUpdated"
	EventUserDeleted = "UserDeleted"
)

// Event is one immutable entry of the audit log.
// Payload holds the JSON document written at append time.
type Event struct {
	ID          uuid.UUID
	AggregateID uuid.UUID
	Type        string
	Payload     string
	CreatedAt   time.Time
}
