package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/transferhq/dispatch-be/internal/worker/domain"
	"github.com/transferhq/dispatch-be/internal/worker/storage"
	"github.com/transferhq/dispatch-be/shared/metrics"
	"github.com/transferhq/dispatch-be/shared/postgresql"
	"github.com/transferhq/dispatch-be/shared/rabbitmq"
)

// Config holds worker configuration.
type Config struct {
	Logger          *slog.Logger
	DBClient        *postgresql.Client
	RabbitClient    *rabbitmq.Client
	Metrics         *metrics.Metrics
	Deliverer       Deliverer
	Concurrency     int
	PrefetchCount   int
	DeliveryTimeout time.Duration
}

// Worker consumes notification nudges and delivers rep notifications.
type Worker struct {
	logger          *slog.Logger
	storage         *storage.Storage
	rabbitClient    *rabbitmq.Client
	metrics         *metrics.Metrics
	deliverer       Deliverer
	concurrency     int
	prefetchCount   int
	deliveryTimeout time.Duration
	workerID        string
	msgChan         chan *domain.NotificationMessage
	wg              sync.WaitGroup
	stopChan        chan struct{}
}

// NewWorker creates a new worker instance.
func NewWorker(cfg *Config) *Worker {
	deliverer := cfg.Deliverer
	if deliverer == nil {
		deliverer = &LogDeliverer{Logger: cfg.Logger}
	}
	return &Worker{
		logger:          cfg.Logger,
		storage:         storage.NewStorage(cfg.DBClient.GetDB(), cfg.Logger),
		rabbitClient:    cfg.RabbitClient,
		metrics:         cfg.Metrics,
		deliverer:       deliverer,
		concurrency:     cfg.Concurrency,
		prefetchCount:   cfg.PrefetchCount,
		deliveryTimeout: cfg.DeliveryTimeout,
		workerID:        "notify-worker-" + uuid.New().String()[:8],
		msgChan:         make(chan *domain.NotificationMessage),
		stopChan:        make(chan struct{}),
	}
}

// Start consumes the queue and processes notifications until ctx is done.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("starting notification worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Duration("delivery_timeout", w.deliveryTimeout),
	)

	deliveries, err := w.setupConsumer()
	if err != nil {
		return fmt.Errorf("failed to set up consumer: %w", err)
	}

	go w.dispatch(ctx, deliveries)
	w.spawnPool(ctx)

	<-ctx.Done()
	w.logger.Info("worker context canceled, stopping")
	return nil
}

// Stop gracefully stops the worker pool.
func (w *Worker) Stop() {
	w.logger.Info("stopping worker pool")
	close(w.stopChan)
	w.wg.Wait()
	w.logger.Info("worker pool stopped")
}

func (w *Worker) spawnPool(ctx context.Context) {
	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.loop(ctx, i)
	}
	w.logger.Info("worker pool spawned", slog.Int("worker_count", w.concurrency))
}

func (w *Worker) loop(ctx context.Context, workerNum int) {
	defer w.wg.Done()

	name := fmt.Sprintf("%s-%d", w.workerID, workerNum)
	w.logger.Info("worker goroutine started", slog.String("worker_name", name))

	for {
		select {
		case <-w.stopChan:
			w.logger.Info("worker goroutine stopping", slog.String("worker_name", name))
			return

		case <-ctx.Done():
			w.logger.Info("worker goroutine stopping - context canceled", slog.String("worker_name", name))
			return

		case msg, ok := <-w.msgChan:
			if !ok {
				return
			}

			err := w.process(ctx, msg)

			channel := w.rabbitClient.GetChannel()
			if channel == nil {
				w.logger.Error("no RabbitMQ channel for ack/nack",
					slog.String("notification_id", msg.NotificationID),
				)
				continue
			}

			if err != nil {
				requeue := w.shouldRequeue(err)
				w.logger.Error("notification delivery failed",
					slog.String("worker_name", name),
					slog.String("notification_id", msg.NotificationID),
					slog.Bool("requeue", requeue),
					slog.String("error", err.Error()),
				)
				if nackErr := channel.Nack(msg.DeliveryTag, false, requeue); nackErr != nil {
					w.logger.Error("failed to NACK message", slog.String("error", nackErr.Error()))
				}
				continue
			}

			if ackErr := channel.Ack(msg.DeliveryTag, false); ackErr != nil {
				w.logger.Error("failed to ACK message", slog.String("error", ackErr.Error()))
			}
		}
	}
}

// process claims the notification row, delivers the message, and resolves
// the row. A claim miss means another worker got there first.
func (w *Worker) process(ctx context.Context, msg *domain.NotificationMessage) error {
	notification, err := w.storage.ClaimNotification(ctx, msg.NotificationID)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyClaimed) {
			return fmt.Errorf("notification already claimed: %w", err)
		}
		return domain.NewRetryableError(fmt.Errorf("failed to claim notification: %w", err))
	}

	deliveryCtx, cancel := context.WithTimeout(ctx, w.deliveryTimeout)
	defer cancel()

	if err := w.deliverer.Deliver(deliveryCtx, notification); err != nil {
		if markErr := w.storage.MarkFailed(ctx, notification.NotificationID, err.Error()); markErr != nil {
			w.logger.Error("failed to mark notification failed", slog.String("error", markErr.Error()))
		}

		if notification.Attempts < notification.MaxAttempts {
			return domain.NewRetryableError(fmt.Errorf("delivery failed: %w", err))
		}
		if w.metrics != nil {
			w.metrics.NotificationsFailed.Inc()
		}
		return fmt.Errorf("%w: %v", domain.ErrMaxAttemptsExceeded, err)
	}

	if err := w.storage.MarkSent(ctx, notification.NotificationID); err != nil {
		// Delivered but unrecorded; a redelivery would double-send, so ack anyway.
		w.logger.Error("failed to mark notification sent",
			slog.String("notification_id", notification.NotificationID),
			slog.String("error", err.Error()),
		)
		return nil
	}

	if w.metrics != nil {
		w.metrics.NotificationsDelivered.Inc()
	}
	w.logger.Info("notification delivered",
		slog.String("notification_id", notification.NotificationID),
		slog.String("rep_id", notification.RepID),
		slog.String("job_ref", notification.JobRef),
	)
	return nil
}

func (w *Worker) shouldRequeue(err error) bool {
	if errors.Is(err, domain.ErrAlreadyClaimed) {
		return false
	}
	if errors.Is(err, domain.ErrMaxAttemptsExceeded) {
		return false
	}
	if errors.Is(err, domain.ErrInvalidMessage) {
		return false
	}

	var retryableErr *domain.RetryableError
	return errors.As(err, &retryableErr)
}
