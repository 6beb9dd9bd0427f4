package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/transferhq/dispatch-be/internal/worker/domain"
)

// setupConsumer configures QoS and returns the delivery channel.
func (w *Worker) setupConsumer() (<-chan amqp.Delivery, error) {
	channel := w.rabbitClient.GetChannel()
	if channel == nil {
		return nil, fmt.Errorf("rabbitmq channel is nil")
	}

	// prefetch bounds the number of unacked messages per consumer
	if err := channel.Qos(w.prefetchCount, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	deliveries, err := w.rabbitClient.Consume(w.workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	w.logger.Info("RabbitMQ consumer started",
		slog.String("consumer_tag", w.workerID),
		slog.Int("prefetch_count", w.prefetchCount),
	)
	return deliveries, nil
}

// dispatch routes queue deliveries into the worker pool.
func (w *Worker) dispatch(ctx context.Context, deliveries <-chan amqp.Delivery) {
	w.logger.Info("message dispatcher started", slog.String("worker_id", w.workerID))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("message dispatcher stopped - context canceled")
			return

		case delivery, ok := <-deliveries:
			if !ok {
				w.logger.Warn("RabbitMQ delivery channel closed")
				return
			}

			var msg struct {
				NotificationID string `json:"notification_id"`
			}
			if err := json.Unmarshal(delivery.Body, &msg); err != nil {
				w.logger.Error("failed to parse message JSON",
					slog.String("error", err.Error()),
					slog.String("body", string(delivery.Body)),
				)
				// malformed messages never become deliverable, drop them
				w.nackNoRequeue(delivery)
				continue
			}

			if _, err := uuid.Parse(msg.NotificationID); err != nil {
				w.logger.Error("invalid notification_id - not a UUID",
					slog.String("notification_id", msg.NotificationID),
				)
				w.nackNoRequeue(delivery)
				continue
			}

			notifyMsg := &domain.NotificationMessage{
				NotificationID: msg.NotificationID,
				DeliveryTag:    delivery.DeliveryTag,
			}

			select {
			case w.msgChan <- notifyMsg:
				w.logger.Debug("notification dispatched to pool",
					slog.String("notification_id", msg.NotificationID),
					slog.Uint64("delivery_tag", delivery.DeliveryTag),
				)
			case <-ctx.Done():
				w.logger.Info("message dispatcher stopped while dispatching")
				if nackErr := delivery.Nack(false, true); nackErr != nil {
					w.logger.Error("failed to NACK message on shutdown", slog.String("error", nackErr.Error()))
				}
				return
			}
		}
	}
}

func (w *Worker) nackNoRequeue(delivery amqp.Delivery) {
	if err := delivery.Nack(false, false); err != nil {
		w.logger.Error("failed to NACK malformed message", slog.String("error", err.Error()))
	}
}
