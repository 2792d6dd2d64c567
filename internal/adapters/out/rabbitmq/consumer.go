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

// sagaHandler is the coordinator surface the consumers need.
type sagaHandler interface {
	HandleOrderEvent(ctx context.Context, name string, snapshot order.Snapshot) error
	HandlePaymentResponse(ctx context.Context, trackingID kernel.TrackingID, success bool, failureMessages []string) error
	HandleApprovalResponse(ctx context.Context, trackingID kernel.TrackingID, success bool, failureMessages []string) error
	HandleRefundResponse(ctx context.Context, trackingID kernel.TrackingID, failureMessages []string) error
}

// Wire formats for saga responses. A payment response with Refund set
// confirms a refund instead of a charge.
type paymentResponseMessage struct {
	CorrelationID   kernel.TrackingID `json:"correlation_id"`
	Success         bool              `json:"success"`
	Refund          bool              `json:"refund,omitempty"`
	FailureMessages []string          `json:"failure_messages,omitempty"`
}

type approvalResponseMessage struct {
	CorrelationID   kernel.TrackingID `json:"correlation_id"`
	Success         bool              `json:"success"`
	FailureMessages []string          `json:"failure_messages,omitempty"`
}

// SagaResponseConsumer consumes payment and restaurant approval responses and
// feeds them into the saga coordinator.
type SagaResponseConsumer struct {
	client *Client
	saga   sagaHandler
	logger *slog.Logger

	paymentQueue  amqp.Queue
	approvalQueue amqp.Queue

	stop chan struct{}
	done chan struct{}
}

// NewSagaResponseConsumer declares both response queues and returns a
// consumer reading from them.
func NewSagaResponseConsumer(
	client *Client,
	saga sagaHandler,
	paymentQueueName string,
	approvalQueueName string,
	logger *slog.Logger,
) (*SagaResponseConsumer, error) {
	paymentQueue, err := client.DeclareQueue(DeclareQueueConfig{
		Name:    paymentQueueName,
		Durable: true,
	})
	if err != nil {
		return nil, err
	}

	approvalQueue, err := client.DeclareQueue(DeclareQueueConfig{
		Name:    approvalQueueName,
		Durable: true,
	})
	if err != nil {
		return nil, err
	}

	return &SagaResponseConsumer{
		client:        client,
		saga:          saga,
		logger:        logger.With("component", "saga_response_consumer"),
		paymentQueue:  paymentQueue,
		approvalQueue: approvalQueue,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}, nil
}

// Run consumes from both response queues until the context is cancelled or
// Shutdown is called.
func (c *SagaResponseConsumer) Run(ctx context.Context) error {
	paymentMessages, err := c.client.Consume(ConsumeConfig{
		Queue:    c.paymentQueue.Name,
		Consumer: "ordering-payment-responses",
	})
	if err != nil {
		return err
	}

	approvalMessages, err := c.client.Consume(ConsumeConfig{
		Queue:    c.approvalQueue.Name,
		Consumer: "ordering-approval-responses",
	})
	if err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "consumer started",
		"payment_queue", c.paymentQueue.Name, "approval_queue", c.approvalQueue.Name)

	defer close(c.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.stop:
			return nil
		case msg, ok := <-paymentMessages:
			if !ok {
				return amqp.ErrClosed
			}
			c.processPaymentResponse(ctx, msg)
		case msg, ok := <-approvalMessages:
			if !ok {
				return amqp.ErrClosed
			}
			c.processApprovalResponse(ctx, msg)
		}
	}
}

// Shutdown stops the consumer and waits for the run loop to exit.
func (c *SagaResponseConsumer) Shutdown() {
	close(c.stop)

	select {
	case <-c.done:
	case <-time.After(10 * time.Second):
		c.logger.Warn("consumer shutdown timeout")
	}
}

func (c *SagaResponseConsumer) processPaymentResponse(ctx context.Context, msg amqp.Delivery) {
	var response paymentResponseMessage
	if err := json.Unmarshal(msg.Body, &response); err != nil {
		c.logger.ErrorContext(ctx, "malformed payment response", "error", err)
		c.nack(ctx, msg, false)
		return
	}

	var err error
	if response.Refund {
		err = c.saga.HandleRefundResponse(ctx, response.CorrelationID, response.FailureMessages)
	} else {
		err = c.saga.HandlePaymentResponse(ctx, response.CorrelationID, response.Success, response.FailureMessages)
	}
	if err != nil {
		c.logger.ErrorContext(ctx, "payment response failed",
			"tracking_id", response.CorrelationID, "error", err)
		c.nack(ctx, msg, true)
		return
	}

	c.ack(ctx, msg)
}

func (c *SagaResponseConsumer) processApprovalResponse(ctx context.Context, msg amqp.Delivery) {
	var response approvalResponseMessage
	if err := json.Unmarshal(msg.Body, &response); err != nil {
		c.logger.ErrorContext(ctx, "malformed approval response", "error", err)
		c.nack(ctx, msg, false)
		return
	}

	if err := c.saga.HandleApprovalResponse(
		ctx, response.CorrelationID, response.Success, response.FailureMessages); err != nil {
		c.logger.ErrorContext(ctx, "approval response failed",
			"tracking_id", response.CorrelationID, "error", err)
		c.nack(ctx, msg, true)
		return
	}

	c.ack(ctx, msg)
}

func (c *SagaResponseConsumer) ack(ctx context.Context, msg amqp.Delivery) {
	if err := msg.Ack(false); err != nil {
		c.logger.ErrorContext(ctx, "failed to ack message", "error", err)
	}
}

func (c *SagaResponseConsumer) nack(ctx context.Context, msg amqp.Delivery, requeue bool) {
	if err := msg.Nack(false, requeue); err != nil {
		c.logger.ErrorContext(ctx, "failed to nack message", "error", err)
	}
}
