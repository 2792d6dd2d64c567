package order

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/restaurant"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// FailureMessageDelimiter separates failure messages when the list is
// flattened to a single column. Messages containing the delimiter are not
// produced by this system.
const FailureMessageDelimiter = ","

// Order is the aggregate root of the ordering domain. It owns its item list,
// delivery address, total price, lifecycle status, and accumulated failure
// messages, and it is the only place where status changes happen.
//
// Invariants:
//   - total price is strictly greater than zero
//   - the item list is non-empty and every item subtotal equals its unit
//     price times quantity
//   - the sum of item subtotals equals the order price
//   - status only moves along the transitions defined on Status; the
//     transition methods below are its sole mutators
//
// The aggregate is not safe for concurrent use. It is meant to be loaded,
// mutated inside one transactional boundary, and persisted with an
// optimistic version check; the version field carries that check.
type Order struct {
	id           kernel.OrderID
	customerID   kernel.CustomerID
	restaurantID kernel.RestaurantID
	address      kernel.StreetAddress
	price        kernel.Money
	items        []*OrderItem

	trackingID      kernel.TrackingID
	status          Status
	failureMessages []string
	version         int

	isConstructed bool
}

// NewOrder creates a new order in Pending status. A fresh OrderID and
// TrackingID are assigned; the tracking id is the externally exposed identity
// and the saga correlation id, never reused once assigned. Items receive
// their back-reference to the new order.
func NewOrder(
	customerID kernel.CustomerID,
	restaurantID kernel.RestaurantID,
	address kernel.StreetAddress,
	price kernel.Money,
	items []*OrderItem,
) (*Order, error) {
	if err := errors.Join(
		customerID.Validate(),
		restaurantID.Validate(),
		address.Validate(),
	); err != nil {
		return nil, err
	}

	if err := validatePrice(price, items); err != nil {
		return nil, err
	}

	order := &Order{
		id:           kernel.NewOrderID(),
		customerID:   customerID,
		restaurantID: restaurantID,
		address:      address,
		price:        price,
		items:        items,
		trackingID:   kernel.NewTrackingID(),
		status:       Pending,

		isConstructed: true,
	}

	for _, item := range order.items {
		item.attach(order.id)
	}

	return order, nil
}

// RestoreOrder rebuilds an order from persistence without re-running the
// creation transition. The stored status, failure messages, and version are
// taken as-is; the structural invariants are still checked.
func RestoreOrder(
	id kernel.OrderID,
	customerID kernel.CustomerID,
	restaurantID kernel.RestaurantID,
	address kernel.StreetAddress,
	price kernel.Money,
	items []*OrderItem,
	trackingID kernel.TrackingID,
	status Status,
	failureMessages []string,
	version int,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		restaurantID.Validate(),
		address.Validate(),
		trackingID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if err := validatePrice(price, items); err != nil {
		return nil, err
	}

	return &Order{
		id:              id,
		customerID:      customerID,
		restaurantID:    restaurantID,
		address:         address,
		price:           price,
		items:           items,
		trackingID:      trackingID,
		status:          status,
		failureMessages: append([]string(nil), failureMessages...),
		version:         version,

		isConstructed: true,
	}, nil
}

// validatePrice enforces the money invariants shared by NewOrder and
// RestoreOrder: positive total, non-empty items, and agreeing sums.
func validatePrice(price kernel.Money, items []*OrderItem) error {
	if !price.IsGreaterThanZero() {
		return NewValidationError("total price must be greater than 0")
	}

	if len(items) == 0 {
		return NewValidationError("order must contain at least one item")
	}

	sum := kernel.ZeroMoney()
	for _, item := range items {
		if item == nil {
			return NewValidationError("order item must not be nil")
		}
		sum = sum.Add(item.Subtotal())
	}

	if !sum.IsEqual(price) {
		return NewValidationError(fmt.Sprintf(
			"sum of item subtotals %s does not equal order price %s", sum, price))
	}

	return nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the stable internal order identity.
func (o *Order) ID() kernel.OrderID {
	return o.id
}

// CustomerID returns the customer that placed the order.
func (o *Order) CustomerID() kernel.CustomerID {
	return o.customerID
}

// RestaurantID returns the restaurant the order was placed against.
func (o *Order) RestaurantID() kernel.RestaurantID {
	return o.restaurantID
}

// Address returns the delivery address.
func (o *Order) Address() kernel.StreetAddress {
	return o.address
}

// Price returns the total order price.
func (o *Order) Price() kernel.Money {
	return o.price
}

// Items returns the line items. Items expose no mutators; all changes go
// through the aggregate.
func (o *Order) Items() []*OrderItem {
	return o.items
}

// TrackingID returns the externally exposed order identity, used as the saga
// correlation id.
func (o *Order) TrackingID() kernel.TrackingID {
	return o.trackingID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// FailureMessages returns a copy of the accumulated failure reasons.
func (o *Order) FailureMessages() []string {
	return append([]string(nil), o.failureMessages...)
}

// Version returns the optimistic concurrency token maintained by the
// persistence layer.
func (o *Order) Version() int {
	return o.version
}

// Pay marks the order as paid. Valid only from Pending.
func (o *Order) Pay() error {
	newStatus, err := o.status.Pay()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Approve marks the order as approved by the restaurant. Valid only from
// Paid; Approved is terminal.
func (o *Order) Approve() error {
	newStatus, err := o.status.Approve()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// BeginCancellation starts the compensation path for a paid order whose
// approval failed. The supplied reasons are recorded whether or not the
// transition is allowed, so a rejected duplicate still leaves its trace.
func (o *Order) BeginCancellation(reasons []string) error {
	o.recordFailureMessages(reasons)

	newStatus, err := o.status.BeginCancellation()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Cancel finalizes cancellation, either directly from Pending or from
// Cancelling once the refund is confirmed. Reasons are recorded regardless
// of the transition outcome.
func (o *Order) Cancel(reasons []string) error {
	o.recordFailureMessages(reasons)

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// recordFailureMessages appends the given reasons to the failure list,
// dropping empty strings. The list is append-only and never cleared.
func (o *Order) recordFailureMessages(reasons []string) {
	for _, reason := range reasons {
		if reason == "" {
			continue
		}
		o.failureMessages = append(o.failureMessages, reason)
	}
}

// ConfirmProductDetails replaces every item's product snapshot with the
// restaurant catalog's authoritative entry. The domain service calls this
// after verifying that each product exists and that submitted prices agree
// with the catalog; a missing product here means that check was skipped.
func (o *Order) ConfirmProductDetails(r *restaurant.Restaurant) error {
	for _, item := range o.items {
		confirmed, ok := r.ProductByID(item.Product().ID())
		if !ok {
			return NewValidationError(fmt.Sprintf(
				"product %s is not in restaurant %s catalog", item.Product().ID(), r.ID()))
		}
		item.confirmProduct(confirmed)
	}
	return nil
}
