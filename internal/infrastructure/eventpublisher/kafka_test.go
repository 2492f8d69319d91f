package eventpublisher

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/finledger/internal/domain"
)

func TestNewKafkaPublisher(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9092", "localhost:9093"}, "finledger.events")
	defer p.Close()

	require.NotNil(t, p.writer)
	assert.Equal(t, "finledger.events", p.writer.Topic)
	assert.IsType(t, &kafka.Hash{}, p.writer.Balancer)
	assert.Equal(t, kafka.RequireAll, p.writer.RequiredAcks)
}

func TestEventEnvelopeJSON(t *testing.T) {
	createdAt := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	event := &domain.OutboxEvent{
		ID:            "01JZZZZZZZZZZZZZZZZZZZZZZZ",
		AggregateID:   "instrument-1",
		AggregateType: "instrument",
		EventType:     domain.EventTypeInstrumentCreated,
		Payload:       map[string]any{"name": "Bike Loan"},
		CreatedAt:     createdAt,
	}

	data, err := json.Marshal(eventEnvelope{
		ID:            event.ID,
		AggregateID:   event.AggregateID,
		AggregateType: event.AggregateType,
		EventType:     event.EventType,
		Payload:       event.Payload,
		CreatedAt:     event.CreatedAt,
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "instrument-1", decoded["aggregate_id"])
	assert.Equal(t, domain.EventTypeInstrumentCreated, decoded["event_type"])
	assert.Equal(t, "Bike Loan", decoded["payload"].(map[string]any)["name"])
}
