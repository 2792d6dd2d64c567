package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite verifies order persistence against a
// real PostgreSQL instance.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	address, err := kernel.NewStreetAddress("1 Main St", "10001", "New York")
	suite.Require().NoError(err)

	price, err := kernel.NewMoneyFromString("7.50")
	suite.Require().NoError(err)

	product, err := restaurant.NewProduct(kernel.NewProductID(), "Margherita", price)
	suite.Require().NoError(err)

	item, err := order.NewOrderItem(product, 2, price, price.MultiplyInt(2))
	suite.Require().NoError(err)

	total, err := kernel.NewMoneyFromString("15.00")
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewCustomerID(),
		kernel.NewRestaurantID(),
		address,
		total,
		[]*order.OrderItem{item},
	)
	suite.Require().NoError(err)

	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGetByID() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.GetByID(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(loaded.IsEqual(testOrder))
	suite.Equal(order.Pending, loaded.Status())
	suite.True(loaded.TrackingID().IsEqual(testOrder.TrackingID()))
	suite.True(loaded.Price().IsEqual(testOrder.Price()))
	suite.Require().Len(loaded.Items(), 1)
	suite.Equal("Margherita", loaded.Items()[0].Product().Name())
	suite.Equal(2, loaded.Items()[0].Quantity())
	suite.True(loaded.Address().IsEqual(testOrder.Address()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByTrackingID() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.GetByTrackingID(ctx, testOrder.TrackingID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(testOrder))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByID_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.GetByID(ctx, kernel.NewOrderID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsTransition() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.Pay())
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.GetByID(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Paid, loaded.Status())
	suite.Equal(1, loaded.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsFailureMessages() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.Pay())
	suite.Require().NoError(testOrder.BeginCancellation([]string{"out of stock"}))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.GetByID(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelling, loaded.Status())
	suite.Equal([]string{"out of stock"}, loaded.FailureMessages())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_VersionConflict() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// First writer wins and bumps the stored version.
	suite.Require().NoError(testOrder.Pay())
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	// Second write still carries version 0 and must lose.
	err := suite.repository.Update(ctx, testOrder)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	loaded, err := suite.repository.GetByID(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Paid, loaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetOverdue() {
	ctx := context.Background()

	stale := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, stale))

	// Backdate the row so it counts as overdue.
	suite.Require().NoError(suite.db.Exec(
		"UPDATE orders SET updated_at = ? WHERE id = ?",
		time.Now().Add(-time.Hour), stale.ID().UUID().Bytes()).Error)

	fresh := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, fresh))

	overdue, err := suite.repository.GetOverdue(
		ctx, []order.Status{order.Pending, order.Paid}, time.Now().Add(-time.Minute))
	suite.Require().NoError(err)

	suite.Require().Len(overdue, 1)
	suite.True(overdue[0].IsEqual(stale))
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
