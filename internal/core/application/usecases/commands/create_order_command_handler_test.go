package commands_test

import (
	"testing"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/core/domain/services"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// createOrderFixture is the command plus the catalog it validates against.
type createOrderFixture struct {
	cmd        commands.CreateOrderCommand
	restaurant *restaurant.Restaurant
}

func newCreateOrderFixture(t *testing.T, active bool) createOrderFixture {
	t.Helper()

	product, err := restaurant.NewProduct(kernel.NewProductID(), "Margherita", mustMoney(t, "7.50"))
	require.NoError(t, err)

	restaurantID := kernel.NewRestaurantID()
	r, err := restaurant.NewRestaurant(restaurantID, active, []restaurant.Product{product})
	require.NoError(t, err)

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewCustomerID(), restaurantID, "1 Main St", "10001", "New York",
		mustMoney(t, "15.00"),
		[]commands.CreateOrderItem{
			{ProductID: product.ID(), Quantity: 2, Price: mustMoney(t, "7.50")},
		})
	require.NoError(t, err)

	return createOrderFixture{cmd: cmd, restaurant: r}
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	fixture := newCreateOrderFixture(t, true)

	orderRepo := new(MockOrderRepository)
	restaurantRepo := new(MockRestaurantRepository)
	customerRepo := new(MockCustomerRepository)
	outboxRepo := new(MockOutboxRepository)
	uow := new(MockCreateOrderUoW)

	var addedOrder *order.Order
	var addedMessage ports.OutboxMessage

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("Exists", ctx, fixture.cmd.CustomerID()).Return(true, nil).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		restaurantRepo.On("Get", ctx, fixture.cmd.RestaurantID()).Return(fixture.restaurant, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) { addedOrder = args.Get(1).(*order.Order) }).
			Return(nil).Once(),
		uow.On("OutboxRepository").Return(outboxRepo).Once(),
		outboxRepo.On("Add", ctx, mock.AnythingOfType("ports.OutboxMessage")).
			Run(func(args mock.Arguments) { addedMessage = args.Get(1).(ports.OutboxMessage) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	trackingID, err := h.Handle(ctx, fixture.cmd)

	require.NoError(t, err)
	require.NoError(t, trackingID.Validate())

	require.NotNil(t, addedOrder)
	assert.Equal(t, order.Pending, addedOrder.Status())
	assert.True(t, addedOrder.TrackingID().IsEqual(trackingID))

	assert.Equal(t, order.EventNameCreated, addedMessage.Name)
	assert.NotEmpty(t, addedMessage.Payload)

	mock.AssertExpectationsForObjects(t, factory, uow, orderRepo, restaurantRepo, customerRepo, outboxRepo)
}

func TestCreateOrderCommandHandler_Handle_UnknownCustomer(t *testing.T) {
	ctx := t.Context()
	fixture := newCreateOrderFixture(t, true)

	customerRepo := new(MockCustomerRepository)
	uow := new(MockCreateOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("Exists", ctx, fixture.cmd.CustomerID()).Return(false, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, fixture.cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_InactiveRestaurant(t *testing.T) {
	ctx := t.Context()
	fixture := newCreateOrderFixture(t, false)

	restaurantRepo := new(MockRestaurantRepository)
	customerRepo := new(MockCustomerRepository)
	uow := new(MockCreateOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("Exists", ctx, fixture.cmd.CustomerID()).Return(true, nil).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		restaurantRepo.On("Get", ctx, fixture.cmd.RestaurantID()).Return(fixture.restaurant, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err := h.Handle(ctx, fixture.cmd)

	require.ErrorIs(t, err, services.ErrRestaurantInactive)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_PriceDisagreement(t *testing.T) {
	ctx := t.Context()

	product, err := restaurant.NewProduct(kernel.NewProductID(), "Margherita", mustMoney(t, "8.00"))
	require.NoError(t, err)
	restaurantID := kernel.NewRestaurantID()
	r, err := restaurant.NewRestaurant(restaurantID, true, []restaurant.Product{product})
	require.NoError(t, err)

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewCustomerID(), restaurantID, "1 Main St", "10001", "New York",
		mustMoney(t, "15.00"),
		[]commands.CreateOrderItem{
			{ProductID: product.ID(), Quantity: 2, Price: mustMoney(t, "7.50")},
		})
	require.NoError(t, err)

	restaurantRepo := new(MockRestaurantRepository)
	customerRepo := new(MockCustomerRepository)
	uow := new(MockCreateOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("Exists", ctx, cmd.CustomerID()).Return(true, nil).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		restaurantRepo.On("Get", ctx, cmd.RestaurantID()).Return(r, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCreateOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, services.ErrPriceDisagreement)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_InvalidCommand(t *testing.T) {
	factory := new(MockCreateOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory)

	var cmd commands.CreateOrderCommand
	_, err := h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
