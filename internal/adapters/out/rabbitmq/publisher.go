package rabbitmq

import (
	"context"

	"ordering/internal/core/ports"

	"github.com/streadway/amqp"
)

// EventPublisher publishes outbox messages to a topic exchange. The routing
// key is the event name, so consumers can bind with patterns like "order.*".
type EventPublisher struct {
	client   *Client
	exchange string
}

// NewEventPublisher declares the exchange and returns a publisher bound to it.
func NewEventPublisher(client *Client, exchange string) (*EventPublisher, error) {
	if err := client.DeclareTopicExchange(exchange); err != nil {
		return nil, err
	}

	return &EventPublisher{
		client:   client,
		exchange: exchange,
	}, nil
}

// Publish sends one outbox message to the exchange.
func (p *EventPublisher) Publish(ctx context.Context, message ports.OutboxMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return p.client.Channel().Publish(
		p.exchange,
		message.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			MessageId:   message.ID.String(),
			Timestamp:   message.OccurredAt,
			Body:        message.Payload,
		},
	)
}
