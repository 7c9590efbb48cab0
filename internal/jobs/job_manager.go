package jobs

import (
	"fmt"
	"log/slog"

	"atelier/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	dueDateReminderJob *DueDateReminderJob
}

// NewJobManager creates a job manager with all required jobs wired to
// their command handlers.
func NewJobManager(
	deadlineRemindersHandler commands.SendDeadlineRemindersCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		dueDateReminderJob: NewDueDateReminderJob(deadlineRemindersHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.dueDateReminderJob.Start(); err != nil {
		return fmt.Errorf("failed to start due date reminder job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.dueDateReminderJob.Stop()
}
