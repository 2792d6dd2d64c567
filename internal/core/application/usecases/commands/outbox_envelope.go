package commands

import (
	"encoding/json"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// eventEnvelope is the JSON shape outbox payloads are serialized to. It is
// self-describing so consumers can dispatch on the name without out-of-band
// metadata.
type eventEnvelope struct {
	EventID    kernel.UUID    `json:"event_id"`
	Name       string         `json:"name"`
	OccurredAt time.Time      `json:"occurred_at"`
	Order      order.Snapshot `json:"order"`
}

// newOutboxMessage serializes a domain event into an outbox message ready to
// be persisted alongside the aggregate change that produced it.
func newOutboxMessage(event order.DomainEvent) (ports.OutboxMessage, error) {
	payload, err := json.Marshal(eventEnvelope{
		EventID:    event.EventID(),
		Name:       event.Name(),
		OccurredAt: event.OccurredAt(),
		Order:      event.Order(),
	})
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:         event.EventID(),
		Name:       event.Name(),
		Payload:    payload,
		OccurredAt: event.OccurredAt(),
	}, nil
}
