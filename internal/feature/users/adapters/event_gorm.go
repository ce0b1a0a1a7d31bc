package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"users_backend/internal/feature/users/domain/entity"
	"users_backend/internal/feature/users/usecase"
)

// StoredEventModel is the GORM model for the append-only event_store table.
type StoredEventModel struct {
	ID           string    `gorm:"primaryKey;size:36"`
	AggregateID  string    `gorm:"size:36;not null;index"`
	Type         string    `gorm:"size:100;not null"`
	Data         string    `gorm:"type:text;not null"`
	CreatedAtUTC time.Time `gorm:"column:created_at_utc;not null;index"`
}

// TableName returns the table name for GORM.
func (StoredEventModel) TableName() string {
	return "event_store"
}

// ToEntity converts the GORM model to a domain event.
func (m *StoredEventModel) ToEntity() (entity.Event, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return entity.Event{}, fmt.Errorf("stored event id %q: %w", m.ID, err)
	}
	aggregateID, err := uuid.Parse(m.AggregateID)
	if err != nil {
		return entity.Event{}, fmt.Errorf("stored aggregate id %q: %w", m.AggregateID, err)
	}
	return entity.Event{
		ID:          id,
		AggregateID: aggregateID,
		Type:        m.Type,
		Payload:     m.Data,
		CreatedAt:   m.CreatedAtUTC.UTC(),
	}, nil
}

// eventGorm はEventStoreインターフェースのGORM実装です。
// 行の更新・削除は一切行いません。
type eventGorm struct {
	db *gorm.DB
	// now is the clock; tests replace it.
	now func() time.Time

	mu   sync.Mutex
	last time.Time
}

var _ usecase.EventStore = (*eventGorm)(nil)

// NewEventStore は指定されたgorm.DB接続でeventGormの新しいインスタンスを生成します。
func NewEventStore(db *gorm.DB) *eventGorm {
	return &eventGorm{db: db, now: time.Now}
}

// timestamp returns a UTC time strictly after the previous one handed out by this store.
// Microsecond precision matches PostgreSQL timestamptz.
func (s *eventGorm) timestamp() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.now().UTC().Truncate(time.Microsecond)
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

// Append はペイロードをJSONにシリアライズしてイベントを1件追記します。
func (s *eventGorm) Append(ctx context.Context, aggregateID uuid.UUID, eventType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", eventType, err)
	}
	m := &StoredEventModel{
		ID:           uuid.NewString(),
		AggregateID:  aggregateID.String(),
		Type:         eventType,
		Data:         string(data),
		CreatedAtUTC: s.timestamp(),
	}
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to append %s event: %w", eventType, err)
	}
	return nil
}

// ListByAggregate は集約IDに紐づくイベントを作成日時の昇順で返します。
func (s *eventGorm) ListByAggregate(ctx context.Context, aggregateID uuid.UUID) ([]entity.Event, error) {
	var rows []StoredEventModel
	if err := s.db.WithContext(ctx).
		Where("aggregate_id = ?", aggregateID.String()).
		Order("created_at_utc ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Event, 0, len(rows))
	for i := range rows {
		e, err := rows[i].ToEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}
