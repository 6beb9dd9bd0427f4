package domain

import "errors"

var (
	// ErrNotificationNotFound is returned when a notification row is absent.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrAlreadyClaimed is returned when another worker holds the notification.
	ErrAlreadyClaimed = errors.New("notification already claimed or resolved")

	// ErrInvalidMessage is returned when a queue message cannot be parsed.
	ErrInvalidMessage = errors.New("invalid notification message")

	// ErrMaxAttemptsExceeded is returned when delivery has failed too often.
	ErrMaxAttemptsExceeded = errors.New("max delivery attempts exceeded")
)

// RetryableError wraps transient errors that should trigger a requeue.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable error: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryableError creates a new retryable error.
func NewRetryableError(err error) error {
	return &RetryableError{Err: err}
}
