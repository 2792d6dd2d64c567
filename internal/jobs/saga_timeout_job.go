package jobs

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// sagaTimeoutHandler is the coordinator surface the timeout job needs.
type sagaTimeoutHandler interface {
	HandlePaymentResponse(ctx context.Context, trackingID kernel.TrackingID, success bool, failureMessages []string) error
	HandleApprovalResponse(ctx context.Context, trackingID kernel.TrackingID, success bool, failureMessages []string) error
}

// SagaTimeoutJob cancels orders stuck waiting on a saga response. Runs every
// thirty seconds and treats an order that sat in Pending or Paid longer than
// the configured timeout as a failed payment or a rejected approval.
type SagaTimeoutJob struct {
	orders  ports.OrderRepository
	saga    sagaTimeoutHandler
	timeout time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSagaTimeoutJob creates a new job for timing out stuck sagas.
func NewSagaTimeoutJob(
	orders ports.OrderRepository,
	saga sagaTimeoutHandler,
	timeout time.Duration,
	logger *slog.Logger,
) *SagaTimeoutJob {
	return &SagaTimeoutJob{
		orders:  orders,
		saga:    saga,
		timeout: timeout,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "saga_timeout_job"),
	}
}

// Start begins the saga timeout job to run every thirty seconds.
func (j *SagaTimeoutJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		j.expire(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(),
		"Saga timeout job started (running every thirty seconds)", "timeout", j.timeout)
	return nil
}

// Stop stops the saga timeout job.
func (j *SagaTimeoutJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Saga timeout job stopped")
}

// expire feeds a synthetic failure response into the saga for every overdue
// order. The coordinator routes it through the same idempotent handlers as a
// real response, so a late genuine response afterwards is a harmless no-op.
func (j *SagaTimeoutJob) expire(ctx context.Context) {
	olderThan := time.Now().Add(-j.timeout)

	overdue, err := j.orders.GetOverdue(ctx, []order.Status{order.Pending, order.Paid}, olderThan)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to load overdue orders", "error", err)
		return
	}

	for _, o := range overdue {
		var handleErr error
		switch o.Status() {
		case order.Pending:
			handleErr = j.saga.HandlePaymentResponse(
				ctx, o.TrackingID(), false, []string{"payment timed out"})
		case order.Paid:
			handleErr = j.saga.HandleApprovalResponse(
				ctx, o.TrackingID(), false, []string{"restaurant approval timed out"})
		}

		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Failed to expire overdue order",
				"tracking_id", o.TrackingID(), "status", o.Status(), "error", handleErr)
			continue
		}

		j.logger.InfoContext(ctx, "Expired overdue order",
			"tracking_id", o.TrackingID(), "status", o.Status())
	}
}
