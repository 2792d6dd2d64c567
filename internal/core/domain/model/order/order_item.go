package order

import (
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/pkg/errs"
)

// OrderItem is a line item owned by exactly one Order. It keeps a back-
// reference to the owning OrderID rather than the Order itself, so the
// aggregate graph stays acyclic. The recorded subtotal must equal the unit
// price multiplied by the quantity.
type OrderItem struct {
	id       kernel.OrderItemID
	orderID  kernel.OrderID
	product  restaurant.Product
	quantity int
	price    kernel.Money
	subtotal kernel.Money
}

// NewOrderItem creates a line item from client-submitted data. The product
// may be a bare reference (id only); its name and authoritative price are
// reconciled against the restaurant catalog during order validation. The
// owning order id is assigned when the item is attached to an Order.
func NewOrderItem(product restaurant.Product, quantity int, price, subtotal kernel.Money) (*OrderItem, error) {
	if err := product.Validate(); err != nil {
		return nil, err
	}

	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	if !price.IsGreaterThanZero() {
		return nil, errs.NewValueIsInvalidError("item price must be greater than 0")
	}

	if !price.MultiplyInt(quantity).IsEqual(subtotal) {
		return nil, NewValidationError(fmt.Sprintf(
			"item subtotal %s does not equal unit price %s times quantity %d",
			subtotal, price, quantity))
	}

	return &OrderItem{
		id:       kernel.NewOrderItemID(),
		product:  product,
		quantity: quantity,
		price:    price,
		subtotal: subtotal,
	}, nil
}

// RestoreOrderItem rebuilds a line item from persistence with its original
// identity and owner.
func RestoreOrderItem(
	id kernel.OrderItemID,
	orderID kernel.OrderID,
	product restaurant.Product,
	quantity int,
	price, subtotal kernel.Money,
) (*OrderItem, error) {
	item, err := NewOrderItem(product, quantity, price, subtotal)
	if err != nil {
		return nil, err
	}

	if err = id.Validate(); err != nil {
		return nil, err
	}

	if err = orderID.Validate(); err != nil {
		return nil, err
	}

	item.id = id
	item.orderID = orderID
	return item, nil
}

// ID returns the item identity.
func (i *OrderItem) ID() kernel.OrderItemID {
	return i.id
}

// OrderID returns the identity of the owning order.
func (i *OrderItem) OrderID() kernel.OrderID {
	return i.orderID
}

// Product returns the referenced product snapshot.
func (i *OrderItem) Product() restaurant.Product {
	return i.product
}

// Quantity returns the ordered quantity.
func (i *OrderItem) Quantity() int {
	return i.quantity
}

// Price returns the unit price the item was submitted with.
func (i *OrderItem) Price() kernel.Money {
	return i.price
}

// Subtotal returns the recorded line subtotal.
func (i *OrderItem) Subtotal() kernel.Money {
	return i.subtotal
}

// attach sets the back-reference to the owning order. Called by NewOrder.
func (i *OrderItem) attach(orderID kernel.OrderID) {
	i.orderID = orderID
}

// confirmProduct replaces the product snapshot with the catalog's
// authoritative entry. Called by the aggregate after the domain service has
// verified existence and price agreement.
func (i *OrderItem) confirmProduct(p restaurant.Product) {
	i.product = p
}
