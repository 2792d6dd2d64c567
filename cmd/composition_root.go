package cmd

import (
	"log/slog"
	"strconv"
	"time"

	httpin "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/outboxrepo"
	"ordering/internal/adapters/out/rabbitmq"
	"ordering/internal/core/application/saga"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/jobs"

	"gorm.io/gorm"
)

// Broker topology. The service publishes its own events to the events
// exchange and consumes them back through a bound queue; requests and
// responses travel over per-service queues.
const (
	EventsExchange        = "order.events"
	OrderEventsQueue      = "ordering.order.events"
	PaymentRequestQueue   = "payment.requests"
	PaymentResponseQueue  = "payment.responses"
	ApprovalRequestQueue  = "restaurant.approval.requests"
	ApprovalResponseQueue = "restaurant.approval.responses"
)

const defaultSagaTimeout = 5 * time.Minute

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	amqpClient *rabbitmq.Client
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, amqpClient *rabbitmq.Client, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		amqpClient: amqpClient,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.CreateOrderUoWFactory = FuncCreateOrderUoWFactory(func() commands.CreateOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateProcessPaymentResultCommandHandler() commands.ProcessPaymentResultCommandHandler {
	return commands.NewProcessPaymentResultCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateProcessApprovalResultCommandHandler() commands.ProcessApprovalResultCommandHandler {
	return commands.NewProcessApprovalResultCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateFinalizeCancellationCommandHandler() commands.FinalizeCancellationCommandHandler {
	return commands.NewFinalizeCancellationCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateTrackOrderQueryHandler(),
	)
}

func (c *CompositionRoot) CreateSagaCoordinator() (*saga.Coordinator, error) {
	payments, err := rabbitmq.NewPaymentQueueClient(c.amqpClient, PaymentRequestQueue)
	if err != nil {
		return nil, err
	}

	approvals, err := rabbitmq.NewRestaurantApprovalQueueClient(c.amqpClient, ApprovalRequestQueue)
	if err != nil {
		return nil, err
	}

	return saga.NewCoordinator(
		payments,
		approvals,
		c.CreateProcessPaymentResultCommandHandler(),
		c.CreateProcessApprovalResultCommandHandler(),
		c.CreateFinalizeCancellationCommandHandler(),
		c.logger,
	), nil
}

func (c *CompositionRoot) CreateOrderEventConsumer(coordinator *saga.Coordinator) (*rabbitmq.OrderEventConsumer, error) {
	return rabbitmq.NewOrderEventConsumer(c.amqpClient, coordinator, EventsExchange, OrderEventsQueue, c.logger)
}

func (c *CompositionRoot) CreateSagaResponseConsumer(coordinator *saga.Coordinator) (*rabbitmq.SagaResponseConsumer, error) {
	return rabbitmq.NewSagaResponseConsumer(
		c.amqpClient, coordinator, PaymentResponseQueue, ApprovalResponseQueue, c.logger)
}

func (c *CompositionRoot) CreateJobManager(coordinator *saga.Coordinator) (*jobs.JobManager, error) {
	publisher, err := rabbitmq.NewEventPublisher(c.amqpClient, EventsExchange)
	if err != nil {
		return nil, err
	}

	return jobs.NewJobManager(
		outboxrepo.NewGormOutboxRepository(c.gormDB),
		publisher,
		orderrepo.NewGormOrderRepository(c.gormDB),
		coordinator,
		c.sagaTimeout(),
		c.logger,
	), nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) sagaTimeout() time.Duration {
	seconds, err := strconv.Atoi(c.config.SagaTimeoutSeconds)
	if err != nil || seconds <= 0 {
		return defaultSagaTimeout
	}
	return time.Duration(seconds) * time.Second
}

type FuncCreateOrderUoWFactory func() commands.CreateOrderUoW

func (f FuncCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
