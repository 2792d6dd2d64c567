package order

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
)

// Event names used for outbox records and message routing.
const (
	EventNameCreated             = "order.created"
	EventNamePaid                = "order.paid"
	EventNameApproved            = "order.approved"
	EventNameCancellationStarted = "order.cancellation_started"
	EventNameCancelled           = "order.cancelled"
)

// DomainEvent is the common shape of the order lifecycle events. Every event
// is produced exactly once per successful transition and is immutable: it
// carries a Snapshot of the order, not the live aggregate.
type DomainEvent interface {
	// EventID is the unique identity of this event occurrence.
	EventID() kernel.UUID

	// Name returns the event name, e.g. "order.created".
	Name() string

	// Order returns the order snapshot taken when the event was produced.
	Order() Snapshot

	// OccurredAt returns the UTC time the event was produced.
	OccurredAt() time.Time
}

// event carries the fields shared by all concrete events.
type event struct {
	id         kernel.UUID
	order      Snapshot
	occurredAt time.Time
}

func newEvent(order Snapshot, occurredAt time.Time) event {
	return event{
		id:         kernel.NewUUID(),
		order:      order,
		occurredAt: occurredAt.UTC(),
	}
}

// EventID returns the unique identity of this event occurrence.
func (e event) EventID() kernel.UUID {
	return e.id
}

// Order returns the order snapshot the event carries.
func (e event) Order() Snapshot {
	return e.order
}

// OccurredAt returns the UTC production time.
func (e event) OccurredAt() time.Time {
	return e.occurredAt
}

// CreatedEvent signals that an order passed creation validation and entered
// Pending. The saga coordinator reacts by requesting payment.
type CreatedEvent struct {
	event
}

// NewCreatedEvent produces a CreatedEvent for the given order snapshot.
func NewCreatedEvent(order Snapshot, occurredAt time.Time) CreatedEvent {
	return CreatedEvent{event: newEvent(order, occurredAt)}
}

// Name returns "order.created".
func (CreatedEvent) Name() string { return EventNameCreated }

// PaidEvent signals a successful Pending -> Paid transition. The saga
// coordinator reacts by requesting restaurant approval.
type PaidEvent struct {
	event
}

// NewPaidEvent produces a PaidEvent for the given order snapshot.
func NewPaidEvent(order Snapshot, occurredAt time.Time) PaidEvent {
	return PaidEvent{event: newEvent(order, occurredAt)}
}

// Name returns "order.paid".
func (PaidEvent) Name() string { return EventNamePaid }

// ApprovedEvent signals the terminal Paid -> Approved transition. Emitted so
// downstream consumers (notifications, order tracking) learn about the final
// state without polling.
type ApprovedEvent struct {
	event
}

// NewApprovedEvent produces an ApprovedEvent for the given order snapshot.
func NewApprovedEvent(order Snapshot, occurredAt time.Time) ApprovedEvent {
	return ApprovedEvent{event: newEvent(order, occurredAt)}
}

// Name returns "order.approved".
func (ApprovedEvent) Name() string { return EventNameApproved }

// CancellationStartedEvent signals the Paid -> Cancelling transition:
// compensation has begun and the payment must be refunded. Distinct from
// final cancellation.
type CancellationStartedEvent struct {
	event
}

// NewCancellationStartedEvent produces a CancellationStartedEvent.
func NewCancellationStartedEvent(order Snapshot, occurredAt time.Time) CancellationStartedEvent {
	return CancellationStartedEvent{event: newEvent(order, occurredAt)}
}

// Name returns "order.cancellation_started".
func (CancellationStartedEvent) Name() string { return EventNameCancellationStarted }

// CancelledEvent signals the terminal Cancelled state.
type CancelledEvent struct {
	event
}

// NewCancelledEvent produces a CancelledEvent for the given order snapshot.
func NewCancelledEvent(order Snapshot, occurredAt time.Time) CancelledEvent {
	return CancelledEvent{event: newEvent(order, occurredAt)}
}

// Name returns "order.cancelled".
func (CancelledEvent) Name() string { return EventNameCancelled }
