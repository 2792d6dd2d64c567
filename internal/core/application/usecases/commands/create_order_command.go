package commands

import (
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errors.New("at least one order item is required")
)

// CreateOrderItem is a single line of a create order request: a product
// reference with the quantity and the unit price the client saw.
type CreateOrderItem struct {
	ProductID kernel.ProductID
	Quantity  int
	Price     kernel.Money
}

// CreateOrderCommand represents a request to place a new order: who orders,
// from which restaurant, where to deliver, and what the client expects to
// pay. The submitted prices are verified against the restaurant catalog
// before the order is accepted.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID   kernel.CustomerID
	restaurantID kernel.RestaurantID
	street       string
	postalCode   string
	city         string
	price        kernel.Money
	items        []CreateOrderItem

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order. Validates the
// identities and requires a non-empty item list; the address fields and price
// invariants are enforced by the domain when the order is built.
func NewCreateOrderCommand(
	customerID kernel.CustomerID,
	restaurantID kernel.RestaurantID,
	street, postalCode, city string,
	price kernel.Money,
	items []CreateOrderItem,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		street:     street,
		postalCode: postalCode,
		city:       city,
		price:      price,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setRestaurantID(restaurantID),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerID returns the ordering customer's identity.
func (c CreateOrderCommand) CustomerID() kernel.CustomerID {
	return c.customerID
}

// RestaurantID returns the target restaurant's identity.
func (c CreateOrderCommand) RestaurantID() kernel.RestaurantID {
	return c.restaurantID
}

// Street returns the delivery street address.
func (c CreateOrderCommand) Street() string {
	return c.street
}

// PostalCode returns the delivery postal code.
func (c CreateOrderCommand) PostalCode() string {
	return c.postalCode
}

// City returns the delivery city.
func (c CreateOrderCommand) City() string {
	return c.city
}

// Price returns the total the client expects to pay.
func (c CreateOrderCommand) Price() kernel.Money {
	return c.price
}

// Items returns the requested order lines.
func (c CreateOrderCommand) Items() []CreateOrderItem {
	return c.items
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.CustomerID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(restaurantID kernel.RestaurantID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderCommand) setItems(items []CreateOrderItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			return err
		}
	}

	c.items = append([]CreateOrderItem(nil), items...)
	return nil
}
