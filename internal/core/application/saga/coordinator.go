// Package saga coordinates the order lifecycle across the payment and
// restaurant services. The coordinator reacts to order domain events by
// issuing requests to the participating services, and feeds their responses
// back into the order through the idempotent command handlers.
package saga

import (
	"context"
	"log/slog"
	"sync"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
)

// Coordinator drives the order saga. Responses for the same order are
// serialized on a per-correlation-id lock, so two messages racing for one
// order never interleave; messages for different orders proceed in parallel.
//
// Saga flow:
//
//	order.created              -> request payment
//	payment ok                 -> order Paid, order.paid -> request approval
//	payment failed             -> order Cancelled
//	approval ok                -> order Approved (terminal)
//	approval failed            -> order Cancelling, order.cancellation_started -> request refund
//	refund confirmed           -> order Cancelled (terminal)
//
// Duplicate and stale responses are absorbed by the command handlers, which
// only act on the expected current status.
type Coordinator struct {
	payments  ports.PaymentClient
	approvals ports.RestaurantApprovalClient

	paymentResults  commands.ProcessPaymentResultCommandHandler
	approvalResults commands.ProcessApprovalResultCommandHandler
	finalization    commands.FinalizeCancellationCommandHandler

	logger *slog.Logger

	mu    sync.Mutex
	locks map[string]*correlationLock
}

// correlationLock serializes saga work for one order. The reference count
// lets the coordinator drop the entry once the last holder releases it.
type correlationLock struct {
	mu   sync.Mutex
	refs int
}

// NewCoordinator creates a saga coordinator.
func NewCoordinator(
	payments ports.PaymentClient,
	approvals ports.RestaurantApprovalClient,
	paymentResults commands.ProcessPaymentResultCommandHandler,
	approvalResults commands.ProcessApprovalResultCommandHandler,
	finalization commands.FinalizeCancellationCommandHandler,
	logger *slog.Logger,
) *Coordinator {
	return &Coordinator{
		payments:        payments,
		approvals:       approvals,
		paymentResults:  paymentResults,
		approvalResults: approvalResults,
		finalization:    finalization,
		logger:          logger.With("component", "saga_coordinator"),
		locks:           make(map[string]*correlationLock),
	}
}

// acquire takes the correlation lock for a tracking id and returns its
// release function.
func (c *Coordinator) acquire(trackingID kernel.TrackingID) func() {
	key := trackingID.String()

	c.mu.Lock()
	lock, ok := c.locks[key]
	if !ok {
		lock = &correlationLock{}
		c.locks[key] = lock
	}
	lock.refs++
	c.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		c.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(c.locks, key)
		}
		c.mu.Unlock()
	}
}

// HandleOrderEvent reacts to a published order domain event by issuing the
// next saga request. Terminal events complete the saga and trigger nothing.
func (c *Coordinator) HandleOrderEvent(ctx context.Context, name string, snapshot order.Snapshot) error {
	release := c.acquire(snapshot.TrackingID)
	defer release()

	switch name {
	case order.EventNameCreated:
		return c.payments.RequestPayment(ctx, ports.PaymentRequest{
			CorrelationID: snapshot.TrackingID,
			OrderID:       snapshot.ID,
			CustomerID:    snapshot.CustomerID,
			Amount:        snapshot.Price,
		})

	case order.EventNamePaid:
		items := make([]ports.ApprovalRequestItem, 0, len(snapshot.Items))
		for _, item := range snapshot.Items {
			items = append(items, ports.ApprovalRequestItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}

		return c.approvals.RequestApproval(ctx, ports.ApprovalRequest{
			CorrelationID: snapshot.TrackingID,
			OrderID:       snapshot.ID,
			RestaurantID:  snapshot.RestaurantID,
			Price:         snapshot.Price,
			Items:         items,
		})

	case order.EventNameCancellationStarted:
		return c.payments.RequestRefund(ctx, ports.RefundRequest{
			CorrelationID: snapshot.TrackingID,
			OrderID:       snapshot.ID,
			CustomerID:    snapshot.CustomerID,
			Amount:        snapshot.Price,
		})

	case order.EventNameApproved, order.EventNameCancelled:
		c.logger.InfoContext(ctx, "saga completed",
			"tracking_id", snapshot.TrackingID, "outcome", name)
		return nil

	default:
		c.logger.WarnContext(ctx, "ignoring unknown order event", "event", name)
		return nil
	}
}

// HandlePaymentResponse feeds a payment service response into the saga.
func (c *Coordinator) HandlePaymentResponse(ctx context.Context, trackingID kernel.TrackingID, success bool, failureMessages []string) error {
	release := c.acquire(trackingID)
	defer release()

	cmd, err := commands.NewProcessPaymentResultCommand(trackingID, success, failureMessages)
	if err != nil {
		return err
	}

	return c.paymentResults.Handle(ctx, cmd)
}

// HandleApprovalResponse feeds a restaurant approval response into the saga.
func (c *Coordinator) HandleApprovalResponse(ctx context.Context, trackingID kernel.TrackingID, success bool, failureMessages []string) error {
	release := c.acquire(trackingID)
	defer release()

	cmd, err := commands.NewProcessApprovalResultCommand(trackingID, success, failureMessages)
	if err != nil {
		return err
	}

	return c.approvalResults.Handle(ctx, cmd)
}

// HandleRefundResponse feeds a refund confirmation into the saga, completing
// the compensation path.
func (c *Coordinator) HandleRefundResponse(ctx context.Context, trackingID kernel.TrackingID, failureMessages []string) error {
	release := c.acquire(trackingID)
	defer release()

	cmd, err := commands.NewFinalizeCancellationCommand(trackingID, failureMessages)
	if err != nil {
		return err
	}

	return c.finalization.Handle(ctx, cmd)
}
