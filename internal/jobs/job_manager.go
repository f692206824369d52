package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// JobManager owns the background jobs of the lot registry.
type JobManager struct {
	chronographJob *ChronographJob
}

// NewJobManager fails when a job cannot be built from its settings.
func NewJobManager(
	checkLotStatusesHandler CheckLotStatusesHandler,
	chronographSchedule string,
	chronographBatchSize int,
	logger *zap.Logger,
) (*JobManager, error) {
	chronographJob, err := NewChronographJob(checkLotStatusesHandler, chronographSchedule, chronographBatchSize, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create chronograph job: %w", err)
	}
	return &JobManager{chronographJob: chronographJob}, nil
}

// StartAll registers every job with its scheduler. A bad schedule surfaces here.
func (jm *JobManager) StartAll() error {
	if err := jm.chronographJob.Start(); err != nil {
		return fmt.Errorf("failed to start chronograph job: %w", err)
	}
	return nil
}

// StopAll blocks until running jobs have finished.
func (jm *JobManager) StopAll() {
	jm.chronographJob.Stop()
}
