package worker

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/transferhq/dispatch-be/internal/worker/domain"
)

func TestShouldRequeue(t *testing.T) {
	w := &Worker{}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "already claimed is dropped",
			err:  fmt.Errorf("notification already claimed: %w", domain.ErrAlreadyClaimed),
			want: false,
		},
		{
			name: "max attempts exceeded is dropped",
			err:  fmt.Errorf("%w: gateway down", domain.ErrMaxAttemptsExceeded),
			want: false,
		},
		{
			name: "invalid message is dropped",
			err:  domain.ErrInvalidMessage,
			want: false,
		},
		{
			name: "retryable error is requeued",
			err:  domain.NewRetryableError(errors.New("db connection reset")),
			want: true,
		},
		{
			name: "wrapped retryable error is requeued",
			err:  fmt.Errorf("process: %w", domain.NewRetryableError(errors.New("timeout"))),
			want: true,
		},
		{
			name: "plain error is dropped",
			err:  errors.New("something else"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.shouldRequeue(tt.err))
		})
	}
}

func TestRenderMessage(t *testing.T) {
	tests := []struct {
		name         string
		notification *domain.Notification
		want         string
	}{
		{
			name: "job assigned",
			notification: &domain.Notification{
				Kind:    "JOB_ASSIGNED",
				RepName: "Mira",
				JobRef:  "TRF-001",
			},
			want: "Hi Mira, you have been assigned to job TRF-001. Please confirm.",
		},
		{
			name: "unknown kind falls back to a generic update",
			notification: &domain.Notification{
				Kind:    "JOB_RESCHEDULED",
				RepName: "Lena",
				JobRef:  "TRF-002",
			},
			want: "Hi Lena, update on job TRF-002.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderMessage(tt.notification))
		})
	}
}
