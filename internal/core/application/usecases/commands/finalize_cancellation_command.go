package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrFinalizeCancellationCommandIsNotConstructed = errors.New(
	"FinalizeCancellationCommand must be created via NewFinalizeCancellationCommand constructor",
)

// FinalizeCancellationCommand represents a refund confirmation from the
// payment service for an order under compensation.
type FinalizeCancellationCommand struct { //nolint:recvcheck //using for validation
	trackingID      kernel.TrackingID
	failureMessages []string

	guard guard.ConstructorGuard
}

// NewFinalizeCancellationCommand creates a command from a refund
// confirmation.
func NewFinalizeCancellationCommand(
	trackingID kernel.TrackingID,
	failureMessages []string,
) (FinalizeCancellationCommand, error) {
	if err := trackingID.Validate(); err != nil {
		return FinalizeCancellationCommand{}, err
	}

	return FinalizeCancellationCommand{
		trackingID:      trackingID,
		failureMessages: append([]string(nil), failureMessages...),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c FinalizeCancellationCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeCancellationCommandIsNotConstructed)
}

// TrackingID returns the saga correlation id of the order.
func (c FinalizeCancellationCommand) TrackingID() kernel.TrackingID {
	return c.trackingID
}

// FailureMessages returns additional reasons reported with the refund.
func (c FinalizeCancellationCommand) FailureMessages() []string {
	return append([]string(nil), c.failureMessages...)
}
