package commands

import (
	"errors"

	"atelier/internal/pkg/guard"
)

var ErrSendDeadlineRemindersCommandIsNotConstructed = errors.New(
	"SendDeadlineRemindersCommand must be created via NewSendDeadlineRemindersCommand constructor",
)

// SendDeadlineRemindersCommand triggers deadline reminders for orders
// approaching their estimated completion date. The scheduler raises it;
// there is no acting user.
type SendDeadlineRemindersCommand struct {
	guard guard.ConstructorGuard
}

// NewSendDeadlineRemindersCommand creates a new command to trigger
// deadline reminders.
func NewSendDeadlineRemindersCommand() SendDeadlineRemindersCommand {
	return SendDeadlineRemindersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c SendDeadlineRemindersCommand) Validate() error {
	return c.guard.Validate(ErrSendDeadlineRemindersCommandIsNotConstructed)
}
