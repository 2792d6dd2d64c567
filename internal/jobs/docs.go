// Package jobs provides scheduled background tasks for the ordering system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the ordering service.
//
// # Available Jobs
//
// 1. OutboxDispatchJob - Runs every second to publish stored domain events to the message broker
// 2. SagaTimeoutJob - Runs every thirty seconds to cancel orders stuck waiting on a saga response
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(outboxRepo, publisher, orderRepo, coordinator, sagaTimeout, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Dispatch failures are recorded on the outbox message and retried on later runs
// - Timeout failures are routed through the idempotent saga handlers, so a late genuine response after a timeout is a harmless no-op
// - Failed job starts will stop any already running jobs
package jobs
