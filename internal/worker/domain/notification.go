package domain

// Notification is a delivery-side view of a notification row, joined with
// the rep and job details the message template needs.
type Notification struct {
	NotificationID string
	RepID          string
	RepName        string
	RepPhone       string
	JobID          string
	JobRef         string
	Kind           string
	Status         string
	Attempts       int
	MaxAttempts    int
}

// NotificationMessage is the queue payload nudging the worker.
type NotificationMessage struct {
	NotificationID string `json:"notification_id"`
	DeliveryTag    uint64 `json:"-"`
}

// Notification status values, mirroring the engine's lifecycle.
const (
	StatusPending = "PENDING"
	StatusSending = "SENDING"
	StatusSent    = "SENT"
	StatusFailed  = "FAILED"
)
