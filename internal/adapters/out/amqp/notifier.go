// Package amqp delivers notifications to the message broker. The core
// treats notification delivery as fire-and-forget: a broker outage must
// never fail or roll back the business mutation that raised the message.
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"atelier/internal/core/ports"
)

const exchangeName = "notifications"

// notificationMessage is the wire format consumed by the delivery workers
// (email, SMS, push).
type notificationMessage struct {
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Kind      string `json:"kind"`
	RelatedID string `json:"related_id,omitempty"`
}

// RabbitMQNotifier implements ports.Notifier on top of a shared AMQP
// connection. Each publish opens a short-lived channel; channels are cheap
// and must not be shared across goroutines.
type RabbitMQNotifier struct {
	conn   *amqp.Connection
	logger *slog.Logger
}

// NewRabbitMQNotifier creates a notifier bound to an established broker
// connection and declares the notifications exchange.
func NewRabbitMQNotifier(conn *amqp.Connection, logger *slog.Logger) (*RabbitMQNotifier, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &RabbitMQNotifier{
		conn:   conn,
		logger: logger.With("component", "rabbitmq_notifier"),
	}, nil
}

// Publish sends one notification to the broker. Routing keys follow the
// pattern notify.<kind>, so delivery workers can bind per notification
// kind.
func (n *RabbitMQNotifier) Publish(ctx context.Context, notification ports.Notification) error {
	ch, err := n.conn.Channel()
	if err != nil {
		n.logger.ErrorContext(ctx, "Failed to open channel", "error", err)
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	msg := notificationMessage{
		UserID:  notification.UserID.String(),
		Title:   notification.Title,
		Message: notification.Message,
		Kind:    string(notification.Kind),
	}
	if notification.RelatedID != nil {
		msg.RelatedID = notification.RelatedID.String()
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	routingKey := fmt.Sprintf("notify.%s", notification.Kind)

	err = ch.PublishWithContext(ctx, exchangeName, routingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		n.logger.ErrorContext(ctx, "Failed to publish notification",
			"kind", notification.Kind, "user_id", notification.UserID.String(), "error", err)
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	n.logger.DebugContext(ctx, "Notification published",
		"kind", notification.Kind, "user_id", notification.UserID.String())
	return nil
}
