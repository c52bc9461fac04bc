package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNextDaily(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		hour int
		want time.Time
	}{
		{
			name: "before the hour fires today",
			now:  time.Date(2025, time.June, 16, 1, 30, 0, 0, time.UTC),
			hour: 3,
			want: time.Date(2025, time.June, 16, 3, 0, 0, 0, time.UTC),
		},
		{
			name: "at the hour fires tomorrow",
			now:  time.Date(2025, time.June, 16, 3, 0, 0, 0, time.UTC),
			hour: 3,
			want: time.Date(2025, time.June, 17, 3, 0, 0, 0, time.UTC),
		},
		{
			name: "after the hour fires tomorrow",
			now:  time.Date(2025, time.June, 16, 15, 45, 0, 0, time.UTC),
			hour: 3,
			want: time.Date(2025, time.June, 17, 3, 0, 0, 0, time.UTC),
		},
		{
			name: "month boundary",
			now:  time.Date(2025, time.June, 30, 12, 0, 0, 0, time.UTC),
			hour: 3,
			want: time.Date(2025, time.July, 1, 3, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, nextDaily(tt.now, tt.hour))
		})
	}
}

func TestNextMonthly(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		hour int
		want time.Time
	}{
		{
			name: "mid-month fires next first",
			now:  time.Date(2025, time.June, 16, 12, 0, 0, 0, time.UTC),
			hour: 3,
			want: time.Date(2025, time.July, 1, 3, 0, 0, 0, time.UTC),
		},
		{
			name: "first of month before the hour fires today",
			now:  time.Date(2025, time.June, 1, 1, 0, 0, 0, time.UTC),
			hour: 3,
			want: time.Date(2025, time.June, 1, 3, 0, 0, 0, time.UTC),
		},
		{
			name: "first of month after the hour fires next month",
			now:  time.Date(2025, time.June, 1, 4, 0, 0, 0, time.UTC),
			hour: 3,
			want: time.Date(2025, time.July, 1, 3, 0, 0, 0, time.UTC),
		},
		{
			name: "december rolls into january",
			now:  time.Date(2025, time.December, 15, 12, 0, 0, 0, time.UTC),
			hour: 3,
			want: time.Date(2026, time.January, 1, 3, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, nextMonthly(tt.now, tt.hour))
		})
	}
}
