package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/transferhq/dispatch-be/internal/worker/domain"
)

// Storage handles the worker's database operations on notification rows.
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewStorage(db *sqlx.DB, logger *slog.Logger) *Storage {
	return &Storage{db: db, logger: logger}
}

// ClaimNotification moves a notification to SENDING and bumps its attempt
// counter. The status predicate is the optimistic lock: a second worker
// claiming the same row gets ErrAlreadyClaimed.
func (s *Storage) ClaimNotification(ctx context.Context, notificationID string) (*domain.Notification, error) {
	query := `
		UPDATE notifications
		SET status = $1,
		    attempts = attempts + 1,
		    updated_at = NOW()
		WHERE notification_id = $2
		  AND status IN ($3, $4)
		RETURNING notification_id, rep_id, job_id, kind, attempts, max_attempts
	`

	var n domain.Notification
	err := s.db.QueryRowContext(ctx, query,
		domain.StatusSending, notificationID, domain.StatusPending, domain.StatusFailed,
	).Scan(&n.NotificationID, &n.RepID, &n.JobID, &n.Kind, &n.Attempts, &n.MaxAttempts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("failed to claim notification - already claimed or resolved",
				slog.String("notification_id", notificationID),
			)
			return nil, domain.ErrAlreadyClaimed
		}
		return nil, fmt.Errorf("failed to claim notification: %w", err)
	}
	n.Status = domain.StatusSending

	query = `
		SELECT r.name, r.phone, j.ref
		FROM notifications n
		JOIN reps r ON r.rep_id = n.rep_id
		JOIN jobs j ON j.job_id = n.job_id
		WHERE n.notification_id = $1
	`
	err = s.db.QueryRowContext(ctx, query, notificationID).Scan(&n.RepName, &n.RepPhone, &n.JobRef)
	if err != nil {
		return nil, fmt.Errorf("failed to load notification details: %w", err)
	}

	return &n, nil
}

// MarkSent resolves the notification as delivered.
func (s *Storage) MarkSent(ctx context.Context, notificationID string) error {
	query := `
		UPDATE notifications
		SET status = $1, sent_at = NOW(), error_message = NULL, updated_at = NOW()
		WHERE notification_id = $2
	`

	if _, err := s.db.ExecContext(ctx, query, domain.StatusSent, notificationID); err != nil {
		return fmt.Errorf("failed to mark notification sent: %w", err)
	}
	return nil
}

// MarkFailed records a delivery failure. The row stays claimable so a
// requeue can retry it.
func (s *Storage) MarkFailed(ctx context.Context, notificationID, errorMsg string) error {
	query := `
		UPDATE notifications
		SET status = $1, error_message = $2, updated_at = NOW()
		WHERE notification_id = $3
	`

	if _, err := s.db.ExecContext(ctx, query, domain.StatusFailed, errorMsg, notificationID); err != nil {
		return fmt.Errorf("failed to mark notification failed: %w", err)
	}
	return nil
}
