package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/transferhq/dispatch-be/internal/worker/domain"
)

// Deliverer sends a rendered notification to the rep. The production
// implementation plugs in the messaging gateway; the default logs the
// message so a deployment without a gateway still drains the queue.
type Deliverer interface {
	Deliver(ctx context.Context, n *domain.Notification) error
}

// LogDeliverer writes the rendered message to the log.
type LogDeliverer struct {
	Logger *slog.Logger
}

func (d *LogDeliverer) Deliver(ctx context.Context, n *domain.Notification) error {
	d.Logger.Info("delivering notification",
		slog.String("notification_id", n.NotificationID),
		slog.String("rep", n.RepName),
		slog.String("phone", n.RepPhone),
		slog.String("message", RenderMessage(n)),
	)
	return nil
}

// RenderMessage builds the rep-facing text for a notification.
func RenderMessage(n *domain.Notification) string {
	switch n.Kind {
	case "JOB_ASSIGNED":
		return fmt.Sprintf("Hi %s, you have been assigned to job %s. Please confirm.", n.RepName, n.JobRef)
	default:
		return fmt.Sprintf("Hi %s, update on job %s.", n.RepName, n.JobRef)
	}
}
