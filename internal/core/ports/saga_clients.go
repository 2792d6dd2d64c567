package ports

import (
	"context"

	"ordering/internal/core/domain/model/kernel"
)

// PaymentRequest asks the payment service to charge a customer for an order.
// The tracking id doubles as the saga correlation id; responses come back
// carrying it.
type PaymentRequest struct {
	CorrelationID kernel.TrackingID
	OrderID       kernel.OrderID
	CustomerID    kernel.CustomerID
	Amount        kernel.Money
}

// RefundRequest asks the payment service to return a previously captured
// payment during compensation.
type RefundRequest struct {
	CorrelationID kernel.TrackingID
	OrderID       kernel.OrderID
	CustomerID    kernel.CustomerID
	Amount        kernel.Money
}

// ApprovalRequestItem is a single line of an approval request.
type ApprovalRequestItem struct {
	ProductID kernel.ProductID
	Quantity  int
}

// ApprovalRequest asks the restaurant service to confirm it will prepare a
// paid order.
type ApprovalRequest struct {
	CorrelationID kernel.TrackingID
	OrderID       kernel.OrderID
	RestaurantID  kernel.RestaurantID
	Price         kernel.Money
	Items         []ApprovalRequestItem
}

// PaymentClient is the outbound contract to the payment service.
type PaymentClient interface {
	RequestPayment(ctx context.Context, request PaymentRequest) error
	RequestRefund(ctx context.Context, request RefundRequest) error
}

// RestaurantApprovalClient is the outbound contract to the restaurant
// service.
type RestaurantApprovalClient interface {
	RequestApproval(ctx context.Context, request ApprovalRequest) error
}
