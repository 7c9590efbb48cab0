package commands

import (
	"context"
	"fmt"
	"time"

	"atelier/internal/core/ports"
)

// reminderWindow is how far ahead of the estimated completion date a
// customer hears about it.
const reminderWindow = 24 * time.Hour

// SendDeadlineRemindersCommandHandler notifies customers whose active
// orders are due within the reminder window.
type SendDeadlineRemindersCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
}

// NewSendDeadlineRemindersCommandHandler creates a handler for deadline
// reminders.
func NewSendDeadlineRemindersCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.Notifier,
) SendDeadlineRemindersCommandHandler {
	return SendDeadlineRemindersCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle collects the due orders in one read transaction and publishes a
// reminder per order afterwards. Delivery failures are swallowed; the next
// run reminds again.
func (h SendDeadlineRemindersCommandHandler) Handle(ctx context.Context, command SendDeadlineRemindersCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	due, err := uow.OrderRepository().GetActiveDueBefore(ctx, now.Add(reminderWindow))
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, aggregate := range due {
		orderID := aggregate.ID()
		_ = h.notifier.Publish(ctx, ports.Notification{
			UserID: aggregate.CustomerID(),
			Title:  "Order Due Soon",
			Message: fmt.Sprintf("Your order %s is due on %s.",
				aggregate.OrderNumber(), aggregate.EstimatedCompletionDate().Format("2006-01-02")),
			Kind:      ports.NotificationDeadline,
			RelatedID: &orderID,
		})
	}

	return nil
}
