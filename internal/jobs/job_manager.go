package jobs

import (
	"fmt"
)

// JobManager starts and stops the scheduled jobs together.
type JobManager struct {
	operationsFinishedJob *OperationsFinishedJob
}

func NewJobManager(operationsFinishedJob *OperationsFinishedJob) *JobManager {
	return &JobManager{
		operationsFinishedJob: operationsFinishedJob,
	}
}

func (jm *JobManager) StartAll() error {
	if err := jm.operationsFinishedJob.Start(); err != nil {
		return fmt.Errorf("failed to start operations finished job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running ones.
func (jm *JobManager) StopAll() {
	jm.operationsFinishedJob.Stop()
}
