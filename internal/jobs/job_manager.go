package jobs

import (
	"fmt"
	"log/slog"
)

// Schedules holds six-field cron expressions (seconds first). Empty values
// fall back to the job defaults.
type Schedules struct {
	CollectionRefresh string
	CounterRepair     string
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	collectionRefreshJob *CollectionRefreshJob
	counterRepairJob     *CounterRepairJob
}

func NewJobManager(
	refreshHandler collectionRefresher,
	repairHandler counterRepairer,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		collectionRefreshJob: NewCollectionRefreshJob(refreshHandler, schedules.CollectionRefresh, logger),
		counterRepairJob:     NewCounterRepairJob(repairHandler, schedules.CounterRepair, logger),
	}
}

// StartAll starts all scheduled jobs. Jobs already started are stopped if a
// later one fails.
func (jm *JobManager) StartAll() error {
	if err := jm.collectionRefreshJob.Start(); err != nil {
		return fmt.Errorf("failed to start collection refresh job: %w", err)
	}

	if err := jm.counterRepairJob.Start(); err != nil {
		jm.collectionRefreshJob.Stop()
		return fmt.Errorf("failed to start counter repair job: %w", err)
	}

	return nil
}

// StopAll stops all jobs and waits for running invocations to finish.
func (jm *JobManager) StopAll() {
	jm.counterRepairJob.Stop()
	jm.collectionRefreshJob.Stop()
}
