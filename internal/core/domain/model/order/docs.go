// Package order implements the order aggregate and its lifecycle state
// machine for the ordering system.
//
// The package includes:
//   - Order: the aggregate root owning items, address, price, status, and
//     failure messages
//   - OrderItem: a line item with a non-owning back-reference to its order
//   - Status: the closed state machine enforcing valid transitions
//   - Snapshot: an immutable copy of order state used as event payload
//   - the lifecycle domain events (created, paid, approved, cancellation
//     started, cancelled)
//
// Key business rules:
//   - the total price is strictly positive and equals the sum of item
//     subtotals; each subtotal equals unit price times quantity
//   - status follows Pending -> Paid -> Approved on the happy path and
//     Paid -> Cancelling -> Cancelled (or Pending -> Cancelled) on failure
//   - failure messages accumulate append-only and survive rejected
//     transitions
//   - only the aggregate's own methods mutate status, keeping the state
//     machine closed and auditable
package order
