// Package jobs schedules the application's background work.
package jobs

import (
	"context"
	"log/slog"

	"atelier/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DueDateReminderJob periodically reminds customers about orders
// approaching their estimated completion date. Runs daily; the reminder
// window lives in the command handler.
type DueDateReminderJob struct {
	handler commands.SendDeadlineRemindersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDueDateReminderJob creates a new job for sending deadline reminders.
func NewDueDateReminderJob(
	handler commands.SendDeadlineRemindersCommandHandler,
	logger *slog.Logger,
) *DueDateReminderJob {
	return &DueDateReminderJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "due_date_reminder_job"),
	}
}

// Start begins the reminder job on a daily schedule.
func (j *DueDateReminderJob) Start() error {
	_, err := j.cron.AddFunc("@daily", func() {
		ctx := context.Background()
		cmd := commands.NewSendDeadlineRemindersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Due date reminder job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Due date reminder job started (running daily)")
	return nil
}

// Stop stops the reminder job.
func (j *DueDateReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Due date reminder job stopped")
}
