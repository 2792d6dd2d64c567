package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"ordering/cmd"
	"ordering/internal/adapters/out/postgres/customerrepo"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/outboxrepo"
	"ordering/internal/adapters/out/postgres/restaurantrepo"
	"ordering/internal/adapters/out/rabbitmq"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	amqpClient, err := rabbitmq.NewClient(configs.AmqpURL)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer amqpClient.Close()

	app := cmd.NewCompositionRoot(configs, gormDB, amqpClient, logger)

	coordinator, err := app.CreateSagaCoordinator()
	if err != nil {
		log.Fatalf("Failed to create saga coordinator: %v", err)
	}

	eventConsumer, err := app.CreateOrderEventConsumer(coordinator)
	if err != nil {
		log.Fatalf("Failed to create order event consumer: %v", err)
	}

	responseConsumer, err := app.CreateSagaResponseConsumer(coordinator)
	if err != nil {
		log.Fatalf("Failed to create saga response consumer: %v", err)
	}

	jobManager, err := app.CreateJobManager(coordinator)
	if err != nil {
		log.Fatalf("Failed to create job manager: %v", err)
	}

	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	ctx := context.Background()
	go func() {
		if err := eventConsumer.Run(ctx); err != nil {
			logger.Error("Order event consumer stopped", "error", err)
		}
	}()
	defer eventConsumer.Shutdown()

	go func() {
		if err := responseConsumer.Run(ctx); err != nil {
			logger.Error("Saga response consumer stopped", "error", err)
		}
	}()
	defer responseConsumer.Shutdown()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		AmqpURL:            goDotEnvVariable("AMQP_URL"),
		SagaTimeoutSeconds: goDotEnvVariable("SAGA_TIMEOUT_SECONDS"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&restaurantrepo.RestaurantDTO{},
		&restaurantrepo.ProductDTO{},
		&customerrepo.CustomerDTO{},
		&outboxrepo.OutboxMessageDTO{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	app.CreateHTTPServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
