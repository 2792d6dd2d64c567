package services

import (
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"
)

// ErrRestaurantInactive is returned when an order targets a restaurant that is
// not currently accepting orders.
var ErrRestaurantInactive = errors.New("restaurant is not active")

// ErrProductNotInCatalog is returned when an order item references a product
// the restaurant does not offer.
var ErrProductNotInCatalog = errors.New("product is not in restaurant catalog")

// ErrPriceDisagreement is returned when a client-submitted price differs from
// the restaurant catalog price.
var ErrPriceDisagreement = errors.New("submitted price disagrees with catalog")

// RestaurantInactiveError reports which restaurant rejected the order.
type RestaurantInactiveError struct {
	RestaurantID kernel.RestaurantID
}

func NewRestaurantInactiveError(restaurantID kernel.RestaurantID) *RestaurantInactiveError {
	return &RestaurantInactiveError{RestaurantID: restaurantID}
}

func (e *RestaurantInactiveError) Error() string {
	return fmt.Sprintf("restaurant %s is not active", e.RestaurantID)
}

func (e *RestaurantInactiveError) Unwrap() error {
	return ErrRestaurantInactive
}

// ProductNotInCatalogError reports which product an order item referenced that
// the restaurant catalog does not contain.
type ProductNotInCatalogError struct {
	RestaurantID kernel.RestaurantID
	ProductID    kernel.ProductID
}

func NewProductNotInCatalogError(restaurantID kernel.RestaurantID, productID kernel.ProductID) *ProductNotInCatalogError {
	return &ProductNotInCatalogError{RestaurantID: restaurantID, ProductID: productID}
}

func (e *ProductNotInCatalogError) Error() string {
	return fmt.Sprintf("product %s is not in restaurant %s catalog", e.ProductID, e.RestaurantID)
}

func (e *ProductNotInCatalogError) Unwrap() error {
	return ErrProductNotInCatalog
}

// PriceDisagreementError reports a mismatch between the price a client
// submitted for a product and the restaurant catalog price.
type PriceDisagreementError struct {
	ProductID kernel.ProductID
	Submitted kernel.Money
	Catalog   kernel.Money
}

func NewPriceDisagreementError(productID kernel.ProductID, submitted, catalog kernel.Money) *PriceDisagreementError {
	return &PriceDisagreementError{ProductID: productID, Submitted: submitted, Catalog: catalog}
}

func (e *PriceDisagreementError) Error() string {
	return fmt.Sprintf("submitted price %s for product %s disagrees with catalog price %s",
		e.Submitted, e.ProductID, e.Catalog)
}

func (e *PriceDisagreementError) Unwrap() error {
	return ErrPriceDisagreement
}

// OrderLifecycle is the domain service driving order lifecycle transitions.
// Each method validates its inputs, applies exactly one transition on the
// aggregate, and returns the domain event the transition produced. Persisting
// the order and the event together is the caller's job.
//
// Business rules:
//   - a new order is accepted only against an active restaurant
//   - every item's product must exist in the restaurant catalog and the
//     submitted unit price must equal the catalog price
//   - each transition produces exactly one event, carrying a snapshot taken
//     after the transition
type OrderLifecycle struct{}

// NewOrderLifecycle creates an OrderLifecycle service instance.
func NewOrderLifecycle() OrderLifecycle {
	return OrderLifecycle{}
}

// ValidateAndInitiate checks a freshly created order against the restaurant
// snapshot, confirms product details from the catalog, and produces the
// creation event. The order must already be in Pending.
func (s OrderLifecycle) ValidateAndInitiate(o *order.Order, r *restaurant.Restaurant) (order.CreatedEvent, error) {
	if err := o.Validate(); err != nil {
		return order.CreatedEvent{}, err
	}

	if err := r.Validate(); err != nil {
		return order.CreatedEvent{}, err
	}

	if !r.IsActive() {
		return order.CreatedEvent{}, NewRestaurantInactiveError(r.ID())
	}

	for _, item := range o.Items() {
		catalogProduct, ok := r.ProductByID(item.Product().ID())
		if !ok {
			return order.CreatedEvent{}, NewProductNotInCatalogError(r.ID(), item.Product().ID())
		}

		if !item.Price().IsEqual(catalogProduct.Price()) {
			return order.CreatedEvent{}, NewPriceDisagreementError(
				catalogProduct.ID(), item.Price(), catalogProduct.Price())
		}
	}

	if err := o.ConfirmProductDetails(r); err != nil {
		return order.CreatedEvent{}, err
	}

	return order.NewCreatedEvent(o.Snapshot(), time.Now()), nil
}

// Pay applies the Pending -> Paid transition and produces the paid event.
func (s OrderLifecycle) Pay(o *order.Order) (order.PaidEvent, error) {
	if err := o.Validate(); err != nil {
		return order.PaidEvent{}, err
	}

	if err := o.Pay(); err != nil {
		return order.PaidEvent{}, err
	}

	return order.NewPaidEvent(o.Snapshot(), time.Now()), nil
}

// Approve applies the Paid -> Approved transition and produces the approved
// event. Approved is terminal.
func (s OrderLifecycle) Approve(o *order.Order) (order.ApprovedEvent, error) {
	if err := o.Validate(); err != nil {
		return order.ApprovedEvent{}, err
	}

	if err := o.Approve(); err != nil {
		return order.ApprovedEvent{}, err
	}

	return order.NewApprovedEvent(o.Snapshot(), time.Now()), nil
}

// BeginCancellation applies the Paid -> Cancelling transition, recording the
// failure reasons, and produces the cancellation started event that triggers
// the refund.
func (s OrderLifecycle) BeginCancellation(o *order.Order, reasons []string) (order.CancellationStartedEvent, error) {
	if err := o.Validate(); err != nil {
		return order.CancellationStartedEvent{}, err
	}

	if err := o.BeginCancellation(reasons); err != nil {
		return order.CancellationStartedEvent{}, err
	}

	return order.NewCancellationStartedEvent(o.Snapshot(), time.Now()), nil
}

// Cancel applies the transition to the terminal Cancelled state, either
// directly from Pending or from Cancelling once the refund is confirmed, and
// produces the cancelled event.
func (s OrderLifecycle) Cancel(o *order.Order, reasons []string) (order.CancelledEvent, error) {
	if err := o.Validate(); err != nil {
		return order.CancelledEvent{}, err
	}

	if err := o.Cancel(reasons); err != nil {
		return order.CancelledEvent{}, err
	}

	return order.NewCancelledEvent(o.Snapshot(), time.Now()), nil
}
