package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var ErrProcessApprovalResultCommandIsNotConstructed = errors.New(
	"ProcessApprovalResultCommand must be created via NewProcessApprovalResultCommand constructor",
)

// ProcessApprovalResultCommand represents a restaurant approval response for
// an order, matched to the saga by the tracking id. A rejection carries the
// reasons the restaurant reported.
type ProcessApprovalResultCommand struct { //nolint:recvcheck //using for validation
	trackingID      kernel.TrackingID
	success         bool
	failureMessages []string

	guard guard.ConstructorGuard
}

// NewProcessApprovalResultCommand creates a command from an approval
// response.
func NewProcessApprovalResultCommand(
	trackingID kernel.TrackingID,
	success bool,
	failureMessages []string,
) (ProcessApprovalResultCommand, error) {
	if err := trackingID.Validate(); err != nil {
		return ProcessApprovalResultCommand{}, err
	}

	return ProcessApprovalResultCommand{
		trackingID:      trackingID,
		success:         success,
		failureMessages: append([]string(nil), failureMessages...),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessApprovalResultCommand) Validate() error {
	return c.guard.Validate(ErrProcessApprovalResultCommandIsNotConstructed)
}

// TrackingID returns the saga correlation id of the order.
func (c ProcessApprovalResultCommand) TrackingID() kernel.TrackingID {
	return c.trackingID
}

// Success reports whether the restaurant approved the order.
func (c ProcessApprovalResultCommand) Success() bool {
	return c.success
}

// FailureMessages returns the reasons reported by the restaurant service.
func (c ProcessApprovalResultCommand) FailureMessages() []string {
	return append([]string(nil), c.failureMessages...)
}
