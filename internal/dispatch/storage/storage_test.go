package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNullUUID(t *testing.T) {
	t.Run("empty id becomes NULL", func(t *testing.T) {
		n := nullUUID("")
		assert.False(t, n.Valid)
	})

	t.Run("non-empty id is passed through", func(t *testing.T) {
		n := nullUUID("0b84aa4c-9c15-4f2e-9d2a-6a2fb4a1d001")
		assert.True(t, n.Valid)
		assert.Equal(t, "0b84aa4c-9c15-4f2e-9d2a-6a2fb4a1d001", n.String)
	})
}

func TestDateOnly(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "midnight is unchanged",
			in:   time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "time of day is stripped",
			in:   time.Date(2026, 8, 29, 14, 35, 12, 500, time.UTC),
			want: time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "the value's own calendar date is kept",
			in:   time.Date(2026, 8, 29, 1, 0, 0, 0, time.FixedZone("GST", 4*3600)),
			want: time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, dateOnly(tt.in).Equal(tt.want))
		})
	}
}
