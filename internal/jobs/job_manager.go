package jobs

import (
	"fmt"
)

// JobManager starts and stops all scheduled jobs together.
type JobManager struct {
	assignmentExpiryJob *AssignmentExpiryJob
}

func NewJobManager(assignmentExpiryJob *AssignmentExpiryJob) *JobManager {
	return &JobManager{
		assignmentExpiryJob: assignmentExpiryJob,
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.assignmentExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start assignment expiry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ticks.
func (jm *JobManager) StopAll() {
	jm.assignmentExpiryJob.Stop()
}
