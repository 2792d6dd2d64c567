package commands

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/core/domain/services"
	"ordering/internal/pkg/errs"
)

// CreateOrderCommandHandler handles order placement. It verifies the customer
// exists, validates the request against the restaurant catalog, persists the
// new Pending order together with its creation event, and returns the
// tracking id the client polls with.
type CreateOrderCommandHandler struct {
	uowFactory CreateOrderUoWFactory
	lifecycle  services.OrderLifecycle
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires a CreateOrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory CreateOrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  services.NewOrderLifecycle(),
	}
}

// Handle processes the order placement command. The order row and its outbox
// message commit atomically; the saga starts only when the creation event is
// later dispatched from the outbox.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.TrackingID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.TrackingID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.TrackingID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	exists, err := uow.CustomerRepository().Exists(ctx, cmd.CustomerID())
	if err != nil {
		return kernel.TrackingID{}, err
	}
	if !exists {
		return kernel.TrackingID{}, errs.NewObjectNotFoundError("customerID", cmd.CustomerID())
	}

	rest, err := uow.RestaurantRepository().Get(ctx, cmd.RestaurantID())
	if err != nil {
		return kernel.TrackingID{}, err
	}

	newOrder, err := buildOrder(cmd)
	if err != nil {
		return kernel.TrackingID{}, err
	}

	event, err := h.lifecycle.ValidateAndInitiate(newOrder, rest)
	if err != nil {
		return kernel.TrackingID{}, err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return kernel.TrackingID{}, err
	}

	message, err := newOutboxMessage(event)
	if err != nil {
		return kernel.TrackingID{}, err
	}

	if err = uow.OutboxRepository().Add(ctx, message); err != nil {
		return kernel.TrackingID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.TrackingID{}, err
	}

	return newOrder.TrackingID(), nil
}

// buildOrder assembles the order aggregate from the raw command data.
func buildOrder(cmd CreateOrderCommand) (*order.Order, error) {
	address, err := kernel.NewStreetAddress(cmd.Street(), cmd.PostalCode(), cmd.City())
	if err != nil {
		return nil, err
	}

	items := make([]*order.OrderItem, 0, len(cmd.Items()))
	for _, line := range cmd.Items() {
		productRef, err := restaurant.NewProductRef(line.ProductID)
		if err != nil {
			return nil, err
		}

		item, err := order.NewOrderItem(
			productRef, line.Quantity, line.Price, line.Price.MultiplyInt(line.Quantity))
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return order.NewOrder(cmd.CustomerID(), cmd.RestaurantID(), address, cmd.Price(), items)
}
