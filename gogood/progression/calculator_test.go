package progression

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCalculator_FromTotal(t *testing.T) {
	c := NewCalculator(NewDefaultConfig())

	tests := []struct {
		name    string
		total   int64
		wantLvl int
		wantExp int64
	}{
		{name: "zero exp", total: 0, wantLvl: 1, wantExp: 0},
		{name: "just below first threshold", total: 19, wantLvl: 1, wantExp: 19},
		{name: "exactly first threshold", total: 20, wantLvl: 2, wantExp: 0},
		{name: "mid level 2", total: 35, wantLvl: 2, wantExp: 15},
		{name: "exactly level 3 boundary", total: 50, wantLvl: 3, wantExp: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.FromTotal(tt.total)
			require.Equal(t, tt.wantLvl, got.Level)
			require.Equal(t, tt.wantExp, got.ExpInLevel)
		})
	}
}

func TestCalculator_FromTotal_TerminalLevel(t *testing.T) {
	c := NewCalculator(NewDefaultConfig())

	// Sum of all thresholds through level 19.
	var sum int64
	for l := 1; l < MaxLevel; l++ {
		req, ok := c.RequiredExp(l)
		require.True(t, ok)
		sum += req
	}
	require.Equal(t, int64(2090), sum)

	got := c.FromTotal(sum)
	require.Equal(t, MaxLevel, got.Level)
	require.Equal(t, int64(0), got.ExpInLevel)

	// Surplus accumulates without bound at the terminal level.
	got = c.FromTotal(sum + 99999)
	require.Equal(t, MaxLevel, got.Level)
	require.Equal(t, int64(99999), got.ExpInLevel)
}

func TestCalculator_FromTotal_Invariants(t *testing.T) {
	c := NewCalculator(NewDefaultConfig())

	for total := int64(0); total <= 3000; total += 7 {
		got := c.FromTotal(total)
		require.GreaterOrEqual(t, got.Level, 1)
		require.LessOrEqual(t, got.Level, MaxLevel)
		require.GreaterOrEqual(t, got.ExpInLevel, int64(0))
		if got.Level < MaxLevel {
			req, ok := c.RequiredExp(got.Level)
			require.True(t, ok)
			require.Less(t, got.ExpInLevel, req)
		}
		// Round trip back to the same total.
		require.Equal(t, total, c.TotalFor(got.Level, got.ExpInLevel))
	}
}

func TestCalculator_TotalFor(t *testing.T) {
	c := NewCalculator(NewDefaultConfig())

	require.Equal(t, int64(0), c.TotalFor(1, 0))
	require.Equal(t, int64(20), c.TotalFor(2, 0))
	require.Equal(t, int64(35), c.TotalFor(2, 15))
	require.Equal(t, int64(2090), c.TotalFor(MaxLevel, 0))
}
