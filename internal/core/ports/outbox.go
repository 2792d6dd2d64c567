package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
)

// OutboxMessage is a domain event persisted for later publication. Messages
// are written in the same transaction as the aggregate change that produced
// them and published asynchronously by the outbox dispatch job, giving
// at-least-once delivery.
type OutboxMessage struct {
	// ID is the event id; publication is deduplicated on it downstream.
	ID kernel.UUID

	// Name is the event name, e.g. "order.created", used as the routing key.
	Name string

	// Payload is the JSON-encoded event envelope.
	Payload []byte

	// OccurredAt is the UTC time the domain event was produced.
	OccurredAt time.Time

	// Attempts counts failed publication attempts.
	Attempts int

	// LastError holds the most recent publication failure, empty when none.
	LastError string

	// PublishedAt is set once the message has been handed to the broker.
	PublishedAt *time.Time
}

// OutboxRepository defines the persistence contract for outbox messages.
type OutboxRepository interface {
	// Add persists a message within the ambient transaction.
	Add(ctx context.Context, message OutboxMessage) error

	// GetUnpublished retrieves up to limit unpublished messages ordered by
	// occurrence time.
	GetUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished records a successful publication.
	MarkPublished(ctx context.Context, id kernel.UUID) error

	// RecordFailure increments the attempt counter and stores the failure
	// reason. The message stays eligible for the next dispatch run.
	RecordFailure(ctx context.Context, id kernel.UUID, reason string) error
}

// EventPublisher hands a serialized event to the message broker.
type EventPublisher interface {
	// Publish sends the message under its event name as the routing key.
	Publish(ctx context.Context, message OutboxMessage) error
}
