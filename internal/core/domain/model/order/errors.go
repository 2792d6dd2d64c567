package order

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two failure classes of the aggregate. Callers use
// errors.Is to distinguish a malformed order (rejected command, never
// persisted) from an illegal lifecycle transition (caller bug or duplicate
// message, treated as a no-op by the saga coordinator when the order is
// already terminal).
var (
	ErrOrderValidation = errors.New("order validation failed")
	ErrOrderState      = errors.New("order state does not permit operation")
)

// ValidationError indicates the order violates a creation invariant:
// non-positive price, empty item list, or item sums that do not add up.
type ValidationError struct {
	Message string
	Cause   error
}

// NewValidationError creates a ValidationError without a cause.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NewValidationErrorWithCause creates a ValidationError wrapping a detail error.
func NewValidationErrorWithCause(message string, cause error) *ValidationError {
	return &ValidationError{Message: message, Cause: cause}
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("order validation failed: %s (cause: %v)", e.Message, e.Cause)
	}
	return fmt.Sprintf("order validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrOrderValidation
}

// StateError indicates an attempted transition that the state machine does
// not allow from the order's current status. The order is left unchanged
// apart from failure messages already recorded.
type StateError struct {
	Operation string
	Status    Status
}

// NewStateError creates a StateError for the given operation and the status
// the order was in when the operation was attempted.
func NewStateError(operation string, status Status) *StateError {
	return &StateError{Operation: operation, Status: status}
}

func (e *StateError) Error() string {
	return fmt.Sprintf("order state does not permit %s: current status is %s", e.Operation, e.Status)
}

func (e *StateError) Unwrap() error {
	return ErrOrderState
}
