package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/transferhq/dispatch-be/internal/dispatch/model"
	"github.com/transferhq/dispatch-be/shared/metrics"
	"github.com/transferhq/dispatch-be/shared/rabbitmq"
)

// Message is the queue payload nudging the delivery worker. The worker
// loads everything else from the committed notification row.
type Message struct {
	NotificationID string `json:"notification_id"`
}

// Publisher implements dispatch.Notifier over RabbitMQ.
type Publisher struct {
	client  *rabbitmq.Client
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewPublisher(client *rabbitmq.Client, m *metrics.Metrics, logger *slog.Logger) *Publisher {
	return &Publisher{client: client, metrics: m, logger: logger}
}

// NotifyAssigned publishes the notification id to the delivery queue.
func (p *Publisher) NotifyAssigned(ctx context.Context, n *model.Notification) error {
	body, err := json.Marshal(Message{NotificationID: n.NotificationID})
	if err != nil {
		return fmt.Errorf("failed to marshal notification message: %w", err)
	}

	if err := p.client.Publish(ctx, body, "application/json"); err != nil {
		return err
	}

	if p.metrics != nil {
		p.metrics.NotificationsPublished.Inc()
	}
	p.logger.Debug("notification nudge published",
		slog.String("notification_id", n.NotificationID),
		slog.String("rep_id", n.RepID),
	)
	return nil
}
