package http

import (
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
)

// Error is the uniform error body of the API.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AddressRequest is the delivery address part of an order request.
type AddressRequest struct {
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
}

// OrderItemRequest is one line of an order request. Prices travel as decimal
// strings so amounts survive the wire exactly.
type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	CustomerID   string             `json:"customer_id"`
	RestaurantID string             `json:"restaurant_id"`
	Address      AddressRequest     `json:"address"`
	Price        string             `json:"price"`
	Items        []OrderItemRequest `json:"items"`
}

// CreateOrderResponse is the body returned on successful order placement.
type CreateOrderResponse struct {
	OrderTrackingID string `json:"order_tracking_id"`
	Status          string `json:"status"`
}

// TrackOrderResponse is the body of GET /api/v1/orders/:trackingId.
type TrackOrderResponse struct {
	TrackingID      string   `json:"tracking_id"`
	Status          string   `json:"status"`
	FailureMessages []string `json:"failure_messages,omitempty"`
}

// toCommand parses the raw request into a validated CreateOrderCommand.
func (r CreateOrderRequest) toCommand() (commands.CreateOrderCommand, error) {
	customerID, err := kernel.CustomerIDFromString(r.CustomerID)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	restaurantID, err := kernel.RestaurantIDFromString(r.RestaurantID)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	price, err := kernel.NewMoneyFromString(r.Price)
	if err != nil {
		return commands.CreateOrderCommand{}, err
	}

	items := make([]commands.CreateOrderItem, 0, len(r.Items))
	for _, line := range r.Items {
		productID, err := kernel.ProductIDFromString(line.ProductID)
		if err != nil {
			return commands.CreateOrderCommand{}, err
		}

		linePrice, err := kernel.NewMoneyFromString(line.Price)
		if err != nil {
			return commands.CreateOrderCommand{}, err
		}

		items = append(items, commands.CreateOrderItem{
			ProductID: productID,
			Quantity:  line.Quantity,
			Price:     linePrice,
		})
	}

	return commands.NewCreateOrderCommand(
		customerID,
		restaurantID,
		r.Address.Street,
		r.Address.PostalCode,
		r.Address.City,
		price,
		items,
	)
}
