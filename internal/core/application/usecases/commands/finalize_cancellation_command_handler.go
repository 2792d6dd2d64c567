package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
)

// FinalizeCancellationCommandHandler completes the compensation path. Once
// the payment service confirms the refund, the Cancelling order moves to the
// terminal Cancelled state.
//
// The handler is idempotent: a duplicate refund confirmation for an already
// Cancelled order changes nothing and is acknowledged without error.
type FinalizeCancellationCommandHandler struct {
	uowFactory OrderUoWFactory
	lifecycle  services.OrderLifecycle
}

// NewFinalizeCancellationCommandHandler creates a handler for refund
// confirmations.
func NewFinalizeCancellationCommandHandler(uowFactory OrderUoWFactory) FinalizeCancellationCommandHandler {
	return FinalizeCancellationCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  services.NewOrderLifecycle(),
	}
}

// Handle processes the refund confirmation.
func (h *FinalizeCancellationCommandHandler) Handle(ctx context.Context, cmd FinalizeCancellationCommand) error {
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

	if o.Status() != order.Cancelling {
		return nil
	}

	event, err := h.lifecycle.Cancel(o, cmd.FailureMessages())
	if err != nil {
		return err
	}

	if err = persistTransition(ctx, uow, o, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
