package jobs

import (
	"context"
	"log/slog"

	"ordering/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// outboxBatchSize limits how many messages one dispatch run picks up.
const outboxBatchSize = 100

// OutboxDispatchJob publishes stored domain events to the message broker.
// Runs every second so events leave the outbox shortly after commit.
type OutboxDispatchJob struct {
	outbox    ports.OutboxRepository
	publisher ports.EventPublisher
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOutboxDispatchJob creates a new job for dispatching outbox messages.
func NewOutboxDispatchJob(
	outbox ports.OutboxRepository,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) *OutboxDispatchJob {
	return &OutboxDispatchJob{
		outbox:    outbox,
		publisher: publisher,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "outbox_dispatch_job"),
	}
}

// Start begins the outbox dispatch job to run every second.
func (j *OutboxDispatchJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		j.dispatch(context.Background())
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox dispatch job started (running every second)")
	return nil
}

// Stop stops the outbox dispatch job.
func (j *OutboxDispatchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox dispatch job stopped")
}

// dispatch publishes one batch of unpublished messages in occurrence order.
// A message that fails to publish stays in the outbox with its failure
// recorded and is retried on a later run.
func (j *OutboxDispatchJob) dispatch(ctx context.Context) {
	messages, err := j.outbox.GetUnpublished(ctx, outboxBatchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to load unpublished messages", "error", err)
		return
	}

	for _, message := range messages {
		if err := j.publisher.Publish(ctx, message); err != nil {
			j.logger.WarnContext(ctx, "Failed to publish message, will retry",
				"message_id", message.ID, "event", message.Name, "error", err)

			if err := j.outbox.RecordFailure(ctx, message.ID, err.Error()); err != nil {
				j.logger.ErrorContext(ctx, "Failed to record publish failure",
					"message_id", message.ID, "error", err)
			}
			continue
		}

		if err := j.outbox.MarkPublished(ctx, message.ID); err != nil {
			j.logger.ErrorContext(ctx, "Failed to mark message as published",
				"message_id", message.ID, "error", err)
		}
	}
}
