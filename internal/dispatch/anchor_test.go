package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/transferhq/dispatch-be/internal/dispatch/domain"
)

func tp(t time.Time) *time.Time { return &t }

func TestAnchor(t *testing.T) {
	arrival := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	departure := time.Date(2026, 8, 29, 18, 30, 0, 0, time.UTC)
	pickup := time.Date(2026, 8, 29, 15, 45, 0, 0, time.UTC)

	tests := []struct {
		name   string
		timing Timing
		want   time.Time
		wantOK bool
	}{
		{
			name:   "arrival anchors on flight arrival",
			timing: Timing{Service: domain.ServiceArrival, FlightArrival: tp(arrival)},
			want:   arrival,
			wantOK: true,
		},
		{
			name:   "arrival without flight data has no anchor",
			timing: Timing{Service: domain.ServiceArrival},
			wantOK: false,
		},
		{
			name: "departure prefers pickup time over flight departure",
			timing: Timing{
				Service:         domain.ServiceDeparture,
				Pickup:          tp(pickup),
				FlightDeparture: tp(departure),
			},
			want:   pickup,
			wantOK: true,
		},
		{
			name:   "departure falls back to flight departure",
			timing: Timing{Service: domain.ServiceDeparture, FlightDeparture: tp(departure)},
			want:   departure,
			wantOK: true,
		},
		{
			name:   "departure with neither has no anchor",
			timing: Timing{Service: domain.ServiceDeparture},
			wantOK: false,
		},
		{
			name:   "excursion has no anchor",
			timing: Timing{Service: domain.ServiceExcursion, Pickup: tp(pickup)},
			wantOK: false,
		},
		{
			name:   "transfer has no anchor",
			timing: Timing{Service: domain.ServiceTransfer},
			wantOK: false,
		},
		{
			name:   "city job has no anchor",
			timing: Timing{Service: domain.ServiceCity},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Anchor(tt.timing)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, got.Equal(tt.want))
			}
		})
	}
}
