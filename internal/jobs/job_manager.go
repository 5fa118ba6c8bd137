package jobs

import (
	"fmt"

	"go.uber.org/zap"

	"waterdelivery/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderFeedJob *OrderFeedJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	uowFactory commands.OrderUoWFactory,
	dispatcher commands.DispatchTrigger,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		orderFeedJob: NewOrderFeedJob(uowFactory, dispatcher, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderFeedJob.Start(); err != nil {
		return fmt.Errorf("failed to start order feed job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderFeedJob.Stop()
}
