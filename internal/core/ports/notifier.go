package ports

import (
	"context"

	"atelier/internal/core/domain/model/kernel"
)

// NotificationKind classifies a notification for routing by the delivery
// collaborator.
type NotificationKind string

const (
	// NotificationOrderUpdate tells a customer their order changed state.
	NotificationOrderUpdate NotificationKind = "order_update"

	// NotificationAssignment tells a worker they received an order.
	NotificationAssignment NotificationKind = "assignment"

	// NotificationDeadline reminds a customer of an approaching due date.
	NotificationDeadline NotificationKind = "deadline"
)

// Notification is the message handed to the delivery collaborator. The
// core only raises it; transports (email, SMS, push) live elsewhere.
type Notification struct {
	UserID    kernel.UUID
	Title     string
	Message   string
	Kind      NotificationKind
	RelatedID *kernel.UUID
}

// Notifier emits notifications fire-and-forget. Callers invoke Publish
// after their transaction commits and ignore the error beyond logging;
// a lost notification never fails or rolls back a business mutation.
type Notifier interface {
	Publish(ctx context.Context, notification Notification) error
}
