// Package jobs provides scheduled background tasks for the order workflow.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order dispatch.
//
// # Available Jobs
//
// 1. OrderFeedJob - Polls the order table every second for newly inserted
// orders and dispatches each to nearby connected suppliers.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(uowFactory, dispatchHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The feed job uses the cron expression "* * * * * *" which means it runs
// every second. This frequency keeps push offers close to real time for
// orders that arrive outside the HTTP intake path.
//
// # Error Handling
//
// - Poll failures are logged and retried on the next tick
// - Per-order dispatch failures never stall the feed; the cursor still
//   advances and suppliers fall back to their pull worklist
// - Failed job starts leave no jobs running
package jobs
