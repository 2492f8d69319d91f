package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/iho/finledger/internal/domain"
)

// newOutboxEvent builds an outbox row recorded alongside the state change.
func newOutboxEvent(aggregateType, aggregateID, eventType string, payload map[string]any, now time.Time) *domain.OutboxEvent {
	return &domain.OutboxEvent{
		ID:            uuid.NewString(),
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		EventType:     eventType,
		Payload:       payload,
		CreatedAt:     now,
	}
}

func aggregateCacheKey(instrumentID string) string {
	return "aggregate:" + instrumentID
}
