package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/restaurant"
)

// RestaurantRepository loads read-only restaurant snapshots with their
// product catalogs for order validation.
type RestaurantRepository interface {
	// Get retrieves a restaurant snapshot by identity. Returns
	// errs.ObjectNotFoundError when no such restaurant exists.
	Get(ctx context.Context, id kernel.RestaurantID) (*restaurant.Restaurant, error)
}

// CustomerRepository checks customer existence. The ordering core keeps no
// customer aggregate; knowing the customer exists is enough to accept an
// order.
type CustomerRepository interface {
	Exists(ctx context.Context, id kernel.CustomerID) (bool, error)
}
