package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. The stored row version
	// must match the aggregate's version; on mismatch the update fails with
	// errs.VersionIsInvalidError and nothing is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// GetByID retrieves an order by its internal identity.
	GetByID(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// GetByTrackingID retrieves an order by its externally exposed tracking
	// identity.
	GetByTrackingID(ctx context.Context, trackingID kernel.TrackingID) (*order.Order, error)

	// GetOverdue retrieves orders that have sat in one of the given
	// non-terminal statuses since before the deadline. Used by the saga
	// timeout job.
	GetOverdue(ctx context.Context, statuses []order.Status, olderThan time.Time) ([]*order.Order, error)
}
