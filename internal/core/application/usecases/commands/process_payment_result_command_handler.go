package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
)

// ProcessPaymentResultCommandHandler applies a payment response to the order
// saga. A successful payment moves a Pending order to Paid; a failed payment
// cancels it directly, no compensation needed since nothing was charged.
//
// The handler is idempotent: a response for an order that already left
// Pending, including duplicates and stale responses arriving after
// cancellation, changes nothing and is acknowledged without error.
type ProcessPaymentResultCommandHandler struct {
	uowFactory OrderUoWFactory
	lifecycle  services.OrderLifecycle
}

// NewProcessPaymentResultCommandHandler creates a handler for payment
// responses.
func NewProcessPaymentResultCommandHandler(uowFactory OrderUoWFactory) ProcessPaymentResultCommandHandler {
	return ProcessPaymentResultCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  services.NewOrderLifecycle(),
	}
}

// Handle processes the payment response.
func (h *ProcessPaymentResultCommandHandler) Handle(ctx context.Context, cmd ProcessPaymentResultCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetByTrackingID(ctx, cmd.TrackingID())
	if err != nil {
		return err
	}

	if o.Status() != order.Pending {
		return nil
	}

	var event order.DomainEvent
	if cmd.Success() {
		paidEvent, err := h.lifecycle.Pay(o)
		if err != nil {
			return err
		}
		event = paidEvent
	} else {
		cancelledEvent, err := h.lifecycle.Cancel(o, cmd.FailureMessages())
		if err != nil {
			return err
		}
		event = cancelledEvent
	}

	if err = persistTransition(ctx, uow, o, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
