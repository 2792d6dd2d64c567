// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence, writing the domain events each
// transition produces to the outbox inside the same transaction.
package commands

import (
	"context"

	"ordering/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. These abstractions ensure data consistency across aggregate
// boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// RestaurantRepoFactory provides access to the restaurant repository
	// within a transaction.
	RestaurantRepoFactory interface {
		RestaurantRepository() ports.RestaurantRepository
	}

	// CustomerRepoFactory provides access to the customer repository within
	// a transaction.
	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	// OutboxRepoFactory provides access to the outbox repository within a
	// transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW manages transactions for lifecycle commands that touch only
	// the order aggregate and its outbox messages.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		OutboxRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CreateOrderUoW manages transactions for order creation, which also
	// reads the customer and restaurant stores.
	CreateOrderUoW interface {
		TxManager
		OrderRepoFactory
		RestaurantRepoFactory
		CustomerRepoFactory
		OutboxRepoFactory
	}

	// CreateOrderUoWFactory creates new creation unit of work instances.
	CreateOrderUoWFactory interface {
		Create() CreateOrderUoW
	}
)
