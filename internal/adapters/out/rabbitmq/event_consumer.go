package rabbitmq

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/streadway/amqp"
)

// orderEventMessage mirrors the envelope the outbox dispatcher publishes.
type orderEventMessage struct {
	EventID    kernel.UUID    `json:"event_id"`
	Name       string         `json:"name"`
	OccurredAt time.Time      `json:"occurred_at"`
	Order      order.Snapshot `json:"order"`
}

// OrderEventConsumer consumes the service's own order events from a queue
// bound to the events exchange and hands them to the saga coordinator, which
// reacts by issuing the next saga request.
type OrderEventConsumer struct {
	client *Client
	saga   sagaHandler
	logger *slog.Logger
	queue  amqp.Queue

	stop chan struct{}
	done chan struct{}
}

// NewOrderEventConsumer declares the queue, binds it to the exchange for all
// order events and returns a consumer reading from it.
func NewOrderEventConsumer(
	client *Client,
	saga sagaHandler,
	exchange string,
	queueName string,
	logger *slog.Logger,
) (*OrderEventConsumer, error) {
	if err := client.DeclareTopicExchange(exchange); err != nil {
		return nil, err
	}

	queue, err := client.DeclareQueue(DeclareQueueConfig{
		Name:    queueName,
		Durable: true,
	})
	if err != nil {
		return nil, err
	}

	if err := client.BindQueue(queue.Name, "order.*", exchange); err != nil {
		return nil, err
	}

	return &OrderEventConsumer{
		client: client,
		saga:   saga,
		logger: logger.With("component", "order_event_consumer"),
		queue:  queue,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}, nil
}

// Run consumes order events until the context is cancelled or Shutdown is
// called.
func (c *OrderEventConsumer) Run(ctx context.Context) error {
	messages, err := c.client.Consume(ConsumeConfig{
		Queue:    c.queue.Name,
		Consumer: "ordering-order-events",
	})
	if err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "consumer started", "queue", c.queue.Name)

	defer close(c.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.stop:
			return nil
		case msg, ok := <-messages:
			if !ok {
				return amqp.ErrClosed
			}
			c.processEvent(ctx, msg)
		}
	}
}

// Shutdown stops the consumer and waits for the run loop to exit.
func (c *OrderEventConsumer) Shutdown() {
	close(c.stop)

	select {
	case <-c.done:
	case <-time.After(10 * time.Second):
		c.logger.Warn("consumer shutdown timeout")
	}
}

func (c *OrderEventConsumer) processEvent(ctx context.Context, msg amqp.Delivery) {
	var event orderEventMessage
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		c.logger.ErrorContext(ctx, "malformed order event", "error", err)
		if err := msg.Nack(false, false); err != nil {
			c.logger.ErrorContext(ctx, "failed to nack message", "error", err)
		}
		return
	}

	if err := c.saga.HandleOrderEvent(ctx, event.Name, event.Order); err != nil {
		c.logger.ErrorContext(ctx, "order event failed",
			"event", event.Name, "tracking_id", event.Order.TrackingID, "error", err)
		if err := msg.Nack(false, true); err != nil {
			c.logger.ErrorContext(ctx, "failed to nack message", "error", err)
		}
		return
	}

	if err := msg.Ack(false); err != nil {
		c.logger.ErrorContext(ctx, "failed to ack message", "error", err)
	}
}
