package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/services"
)

// ProcessApprovalResultCommandHandler applies a restaurant approval response
// to the order saga. Approval moves a Paid order to the terminal Approved
// state; rejection begins compensation by moving it to Cancelling, which
// triggers the refund.
//
// The handler is idempotent: a response for an order that already left Paid
// changes nothing and is acknowledged without error.
type ProcessApprovalResultCommandHandler struct {
	uowFactory OrderUoWFactory
	lifecycle  services.OrderLifecycle
}

// NewProcessApprovalResultCommandHandler creates a handler for approval
// responses.
func NewProcessApprovalResultCommandHandler(uowFactory OrderUoWFactory) ProcessApprovalResultCommandHandler {
	return ProcessApprovalResultCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  services.NewOrderLifecycle(),
	}
}

// Handle processes the approval response.
func (h *ProcessApprovalResultCommandHandler) Handle(ctx context.Context, cmd ProcessApprovalResultCommand) error {
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

	if o.Status() != order.Paid {
		return nil
	}

	var event order.DomainEvent
	if cmd.Success() {
		approvedEvent, err := h.lifecycle.Approve(o)
		if err != nil {
			return err
		}
		event = approvedEvent
	} else {
		startedEvent, err := h.lifecycle.BeginCancellation(o, cmd.FailureMessages())
		if err != nil {
			return err
		}
		event = startedEvent
	}

	if err = persistTransition(ctx, uow, o, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
