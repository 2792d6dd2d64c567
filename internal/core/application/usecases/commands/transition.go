package commands

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// persistTransition writes the mutated order and the outbox message of the
// event it produced within the handler's open transaction.
func persistTransition(ctx context.Context, uow OrderUoW, o *order.Order, event order.DomainEvent) error {
	if err := uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	message, err := newOutboxMessage(event)
	if err != nil {
		return err
	}

	return uow.OutboxRepository().Add(ctx, message)
}
