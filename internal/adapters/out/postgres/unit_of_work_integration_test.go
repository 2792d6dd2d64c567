package postgres_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/customerrepo"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/outboxrepo"
	"ordering/internal/adapters/out/postgres/restaurantrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that the order aggregate and its
// outbox messages commit and roll back together.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
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

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&restaurantrepo.RestaurantDTO{},
		&restaurantrepo.ProductDTO{},
		&customerrepo.CustomerDTO{},
		&outboxrepo.OutboxMessageDTO{},
	))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, order_items, restaurants, products, customers, outbox_messages").Error)
	suite.factory = postgres.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder() *order.Order {
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

func (suite *UnitOfWorkIntegrationTestSuite) newMessage() ports.OutboxMessage {
	return ports.OutboxMessage{
		ID:         kernel.NewUUID(),
		Name:       order.EventNameCreated,
		Payload:    []byte(`{"name":"order.created"}`),
		OccurredAt: time.Now().UTC(),
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsOrderAndOutboxTogether() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	testOrder := suite.createTestOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.OutboxRepository().Add(ctx, suite.newMessage()))

	suite.Require().NoError(uow.Commit(ctx))

	verify := suite.factory.Create()
	loaded, err := verify.OrderRepository().GetByID(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(testOrder))

	messages, err := verify.OutboxRepository().GetUnpublished(ctx, 10)
	suite.Require().NoError(err)
	suite.Len(messages, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsOrderAndOutboxTogether() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	testOrder := suite.createTestOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(uow.OutboxRepository().Add(ctx, suite.newMessage()))

	suite.Require().NoError(uow.Rollback(ctx))

	verify := suite.factory.Create()
	_, err := verify.OrderRepository().GetByID(ctx, testOrder.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	messages, err := verify.OutboxRepository().GetUnpublished(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(messages)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitWithoutBegin_Fails() {
	uow := suite.factory.Create()
	suite.Require().ErrorIs(uow.Commit(context.Background()), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRestaurantAndCustomerLookups() {
	ctx := context.Background()

	price, err := kernel.NewMoneyFromString("10.50")
	suite.Require().NoError(err)
	product, err := restaurant.NewProduct(kernel.NewProductID(), "Margherita", price)
	suite.Require().NoError(err)

	restaurantID := kernel.NewRestaurantID()
	suite.Require().NoError(suite.db.Create(&restaurantrepo.RestaurantDTO{
		ID:     restaurantID.UUID().Bytes(),
		Name:   "Luigi's",
		Active: true,
		Products: []restaurantrepo.ProductDTO{{
			ID:           product.ID().UUID().Bytes(),
			RestaurantID: restaurantID.UUID().Bytes(),
			Name:         product.Name(),
			Price:        product.Price().Amount(),
		}},
	}).Error)

	customerID := kernel.NewCustomerID()
	suite.Require().NoError(suite.db.Create(&customerrepo.CustomerDTO{
		ID:       customerID.UUID().Bytes(),
		Username: "alice",
	}).Error)

	uow := suite.factory.Create()

	loaded, err := uow.RestaurantRepository().Get(ctx, restaurantID)
	suite.Require().NoError(err)
	suite.True(loaded.IsActive())
	found, ok := loaded.ProductByID(product.ID())
	suite.Require().True(ok)
	suite.Equal("Margherita", found.Name())

	exists, err := uow.CustomerRepository().Exists(ctx, customerID)
	suite.Require().NoError(err)
	suite.True(exists)

	exists, err = uow.CustomerRepository().Exists(ctx, kernel.NewCustomerID())
	suite.Require().NoError(err)
	suite.False(exists)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
