package saga_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPaymentClient struct{ mock.Mock }

func (m *MockPaymentClient) RequestPayment(ctx context.Context, request ports.PaymentRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockPaymentClient) RequestRefund(ctx context.Context, request ports.RefundRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

type MockRestaurantApprovalClient struct{ mock.Mock }

func (m *MockRestaurantApprovalClient) RequestApproval(ctx context.Context, request ports.ApprovalRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByTrackingID(ctx context.Context, trackingID kernel.TrackingID) (*order.Order, error) {
	args := m.Called(ctx, trackingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetOverdue(ctx context.Context, statuses []order.Status, olderThan time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, statuses, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, message ports.OutboxMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.OutboxMessage), args.Error(1)
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOutboxRepository) RecordFailure(ctx context.Context, id kernel.UUID, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockOrderUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

// storedOrder builds an order as the repository would return it, advanced to
// the given status.
func storedOrder(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	address, err := kernel.NewStreetAddress("1 Main St", "10001", "New York")
	require.NoError(t, err)

	productRef, err := restaurant.NewProductRef(kernel.NewProductID())
	require.NoError(t, err)
	item, err := order.NewOrderItem(productRef, 2, mustMoney(t, "7.50"), mustMoney(t, "15.00"))
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewCustomerID(),
		kernel.NewRestaurantID(),
		address,
		mustMoney(t, "15.00"),
		[]*order.OrderItem{item},
	)
	require.NoError(t, err)

	switch status {
	case order.Pending:
	case order.Paid:
		require.NoError(t, o.Pay())
	case order.Cancelling:
		require.NoError(t, o.Pay())
		require.NoError(t, o.BeginCancellation([]string{"restaurant rejected"}))
	default:
		t.Fatalf("unsupported fixture status %s", status)
	}

	return o
}
