package usecase

import (
	"context"

	"github.com/google/uuid"

	"users_backend/internal/feature/users/domain/entity"
)

// ListUserEventsHandler reads the audit trail of one user.
// Events outlive the user, so deleted users can still be inspected.
type ListUserEventsHandler struct {
	events EventStore
}

func NewListUserEventsHandler(events EventStore) *ListUserEventsHandler {
	return &ListUserEventsHandler{events: events}
}

func (h *ListUserEventsHandler) Handle(ctx context.Context, userID uuid.UUID) ([]entity.Event, error) {
	return h.events.ListByAggregate(ctx, userID)
}
