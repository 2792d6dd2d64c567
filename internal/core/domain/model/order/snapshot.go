package order

import "ordering/internal/core/domain/model/kernel"

// Snapshot is an immutable copy of an order's state, taken at the moment a
// lifecycle transition succeeds. Domain events carry snapshots instead of the
// live aggregate so that later in-place mutation of the order cannot change
// an event that was already produced.
type Snapshot struct {
	ID              kernel.OrderID      `json:"order_id"`
	CustomerID      kernel.CustomerID   `json:"customer_id"`
	RestaurantID    kernel.RestaurantID `json:"restaurant_id"`
	TrackingID      kernel.TrackingID   `json:"tracking_id"`
	Address         AddressSnapshot     `json:"address"`
	Price           kernel.Money        `json:"price"`
	Items           []ItemSnapshot      `json:"items"`
	Status          Status              `json:"status"`
	FailureMessages []string            `json:"failure_messages,omitempty"`
	Version         int                 `json:"version"`
}

// AddressSnapshot is the delivery address part of a Snapshot.
type AddressSnapshot struct {
	ID         kernel.UUID `json:"id"`
	Street     string      `json:"street"`
	PostalCode string      `json:"postal_code"`
	City       string      `json:"city"`
}

// ItemSnapshot is a single line item within a Snapshot.
type ItemSnapshot struct {
	ID          kernel.OrderItemID `json:"order_item_id"`
	ProductID   kernel.ProductID   `json:"product_id"`
	ProductName string             `json:"product_name,omitempty"`
	Quantity    int                `json:"quantity"`
	Price       kernel.Money       `json:"price"`
	Subtotal    kernel.Money       `json:"subtotal"`
}

// Snapshot copies the order's current state into an immutable value.
func (o *Order) Snapshot() Snapshot {
	items := make([]ItemSnapshot, 0, len(o.items))
	for _, item := range o.items {
		items = append(items, ItemSnapshot{
			ID:          item.ID(),
			ProductID:   item.Product().ID(),
			ProductName: item.Product().Name(),
			Quantity:    item.Quantity(),
			Price:       item.Price(),
			Subtotal:    item.Subtotal(),
		})
	}

	return Snapshot{
		ID:           o.id,
		CustomerID:   o.customerID,
		RestaurantID: o.restaurantID,
		TrackingID:   o.trackingID,
		Address: AddressSnapshot{
			ID:         o.address.ID(),
			Street:     o.address.Street(),
			PostalCode: o.address.PostalCode(),
			City:       o.address.City(),
		},
		Price:           o.price,
		Items:           items,
		Status:          o.status,
		FailureMessages: o.FailureMessages(),
		Version:         o.version,
	}
}
