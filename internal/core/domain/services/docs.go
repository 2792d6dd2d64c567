// Package services provides domain services that coordinate business
// operations spanning multiple aggregates of the ordering system.
//
// The package includes:
//   - OrderLifecycle: validates orders against restaurant catalogs and drives
//     lifecycle transitions, producing exactly one domain event per
//     successful transition
//
// Domain services hold no state of their own; they operate on aggregates
// passed in by the application layer, which owns transactional boundaries.
package services
