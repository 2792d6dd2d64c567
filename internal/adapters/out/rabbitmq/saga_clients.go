package rabbitmq

import (
	"context"
	"encoding/json"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"

	"github.com/streadway/amqp"
)

// Wire formats for saga requests. The correlation id is the order tracking
// id; the participating service echoes it back in its response.
type paymentRequestMessage struct {
	CorrelationID kernel.TrackingID `json:"correlation_id"`
	OrderID       kernel.OrderID    `json:"order_id"`
	CustomerID    kernel.CustomerID `json:"customer_id"`
	Amount        kernel.Money      `json:"amount"`
	Refund        bool              `json:"refund,omitempty"`
}

type approvalRequestItemMessage struct {
	ProductID kernel.ProductID `json:"product_id"`
	Quantity  int              `json:"quantity"`
}

type approvalRequestMessage struct {
	CorrelationID kernel.TrackingID            `json:"correlation_id"`
	OrderID       kernel.OrderID               `json:"order_id"`
	RestaurantID  kernel.RestaurantID          `json:"restaurant_id"`
	Price         kernel.Money                 `json:"price"`
	Items         []approvalRequestItemMessage `json:"items"`
}

// PaymentQueueClient sends payment and refund requests to the payment
// service's request queue.
type PaymentQueueClient struct {
	client *Client
	queue  amqp.Queue
}

// NewPaymentQueueClient declares the request queue and returns a client
// publishing to it.
func NewPaymentQueueClient(client *Client, queueName string) (*PaymentQueueClient, error) {
	queue, err := client.DeclareQueue(DeclareQueueConfig{
		Name:    queueName,
		Durable: true,
	})
	if err != nil {
		return nil, err
	}

	return &PaymentQueueClient{
		client: client,
		queue:  queue,
	}, nil
}

// RequestPayment asks the payment service to charge the customer.
func (c *PaymentQueueClient) RequestPayment(ctx context.Context, request ports.PaymentRequest) error {
	return c.send(ctx, paymentRequestMessage{
		CorrelationID: request.CorrelationID,
		OrderID:       request.OrderID,
		CustomerID:    request.CustomerID,
		Amount:        request.Amount,
	})
}

// RequestRefund asks the payment service to return the charged amount.
func (c *PaymentQueueClient) RequestRefund(ctx context.Context, request ports.RefundRequest) error {
	return c.send(ctx, paymentRequestMessage{
		CorrelationID: request.CorrelationID,
		OrderID:       request.OrderID,
		CustomerID:    request.CustomerID,
		Amount:        request.Amount,
		Refund:        true,
	})
}

func (c *PaymentQueueClient) send(ctx context.Context, message paymentRequestMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(message)
	if err != nil {
		return err
	}

	return c.client.Channel().Publish("", c.queue.Name, false, false, amqp.Publishing{
		ContentType:   "application/json",
		CorrelationId: message.CorrelationID.String(),
		Body:          body,
	})
}

// RestaurantApprovalQueueClient sends approval requests to the restaurant
// service's request queue.
type RestaurantApprovalQueueClient struct {
	client *Client
	queue  amqp.Queue
}

// NewRestaurantApprovalQueueClient declares the request queue and returns a
// client publishing to it.
func NewRestaurantApprovalQueueClient(client *Client, queueName string) (*RestaurantApprovalQueueClient, error) {
	queue, err := client.DeclareQueue(DeclareQueueConfig{
		Name:    queueName,
		Durable: true,
	})
	if err != nil {
		return nil, err
	}

	return &RestaurantApprovalQueueClient{
		client: client,
		queue:  queue,
	}, nil
}

// RequestApproval asks the restaurant service to confirm it can fulfil the
// order.
func (c *RestaurantApprovalQueueClient) RequestApproval(ctx context.Context, request ports.ApprovalRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	items := make([]approvalRequestItemMessage, 0, len(request.Items))
	for _, item := range request.Items {
		items = append(items, approvalRequestItemMessage{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	body, err := json.Marshal(approvalRequestMessage{
		CorrelationID: request.CorrelationID,
		OrderID:       request.OrderID,
		RestaurantID:  request.RestaurantID,
		Price:         request.Price,
		Items:         items,
	})
	if err != nil {
		return err
	}

	return c.client.Channel().Publish("", c.queue.Name, false, false, amqp.Publishing{
		ContentType:   "application/json",
		CorrelationId: request.CorrelationID.String(),
		Body:          body,
	})
}
