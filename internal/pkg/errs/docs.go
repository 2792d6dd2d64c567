// Package errs provides standardized error types for the ordering application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g. ErrValueIsRequired)
//   - A struct type carrying the error details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// Domain-specific errors (order state violations, order validation failures,
// restaurant validation failures) live next to the domain objects that raise
// them; this package only holds the generic kinds shared across layers.
package errs
