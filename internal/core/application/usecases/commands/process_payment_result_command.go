package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrProcessPaymentResultCommandIsNotConstructed = errors.New(
	"ProcessPaymentResultCommand must be created via NewProcessPaymentResultCommand constructor",
)

// ProcessPaymentResultCommand represents a payment service response for an
// order, matched to the saga by the tracking id. A failed payment carries the
// reasons the payment service reported.
type ProcessPaymentResultCommand struct { //nolint:recvcheck //using for validation
	trackingID      kernel.TrackingID
	success         bool
	failureMessages []string

	guard guard.ConstructorGuard
}

// NewProcessPaymentResultCommand creates a command from a payment response.
func NewProcessPaymentResultCommand(
	trackingID kernel.TrackingID,
	success bool,
	failureMessages []string,
) (ProcessPaymentResultCommand, error) {
	if err := trackingID.Validate(); err != nil {
		return ProcessPaymentResultCommand{}, err
	}

	return ProcessPaymentResultCommand{
		trackingID:      trackingID,
		success:         success,
		failureMessages: append([]string(nil), failureMessages...),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessPaymentResultCommand) Validate() error {
	return c.guard.Validate(ErrProcessPaymentResultCommandIsNotConstructed)
}

// TrackingID returns the saga correlation id of the order.
func (c ProcessPaymentResultCommand) TrackingID() kernel.TrackingID {
	return c.trackingID
}

// Success reports whether the payment was captured.
func (c ProcessPaymentResultCommand) Success() bool {
	return c.success
}

// FailureMessages returns the reasons reported by the payment service.
func (c ProcessPaymentResultCommand) FailureMessages() []string {
	return append([]string(nil), c.failureMessages...)
}
