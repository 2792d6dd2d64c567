package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a closed
// state machine: the only way to obtain a new Status is through one of the
// transition methods, each of which checks the current state first.
//
// State transitions:
//
//	Pending ──> Paid ──> Approved            (happy path)
//	              │
//	              └──> Cancelling ──> Cancelled   (compensation path)
//	Pending ─────────────────────────> Cancelled  (payment failed before it was taken)
//
// Approved and Cancelled are terminal; no transition leaves them.
type Status int

const (
	// Unknown represents an invalid or undefined status. This value (0)
	// helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status assigned at order creation. The order is
	// waiting for the payment collaborator to confirm payment.
	Pending

	// Paid indicates the payment collaborator confirmed payment. The order
	// is waiting for restaurant approval.
	Paid

	// Approved indicates the restaurant accepted the order. Terminal success
	// state.
	Approved

	// Cancelling indicates a compensation is in flight: the order was paid
	// but a later step failed, and the payment is being refunded.
	Cancelling

	// Cancelled is the terminal failure state, reached either directly from
	// Pending (payment never succeeded) or from Cancelling once the refund
	// is confirmed.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		Paid:       "Paid",
		Approved:   "Approved",
		Cancelling: "Cancelling",
		Cancelled:  "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "Pending",
		Paid:       "Paid",
		Approved:   "Approved",
		Cancelling: "Cancelling",
		Cancelled:  "Cancelled",
	}
}

// Validate checks that the Status holds one of the defined lifecycle values.
// Unknown (0) and out-of-range values are invalid. Used when reconstructing
// orders from persistence or external messages.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status. Implements
// fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status is final. No transition method
// accepts a terminal status as its starting point.
func (s Status) IsTerminal() bool {
	return s == Approved || s == Cancelled
}

// Pay transitions the status to Paid. Only Pending orders can be paid.
func (s Status) Pay() (Status, error) {
	if s != Pending {
		return 0, NewStateError("pay", s)
	}
	return Paid, nil
}

// Approve transitions the status to Approved. Only Paid orders can be
// approved; Approved is terminal.
func (s Status) Approve() (Status, error) {
	if s != Paid {
		return 0, NewStateError("approve", s)
	}
	return Approved, nil
}

// BeginCancellation transitions the status to Cancelling. Only Paid orders
// enter compensation; anything earlier is cancelled directly and anything
// later is already settled.
func (s Status) BeginCancellation() (Status, error) {
	if s != Paid {
		return 0, NewStateError("begin cancellation", s)
	}
	return Cancelling, nil
}

// Cancel transitions the status to Cancelled, either directly from Pending
// or from Cancelling once compensation completed. Cancelled is terminal.
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != Cancelling {
		return 0, NewStateError("cancel", s)
	}
	return Cancelled, nil
}

// MarshalText serializes the status as its name, for event payloads.
func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText parses a status from its name.
func (s *Status) UnmarshalText(text []byte) error {
	name := string(text)
	for status, str := range getValidStatusStrings() {
		if str == name {
			*s = status
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", name))
}
