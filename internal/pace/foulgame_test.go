package pace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsInFoulGame(t *testing.T) {
	tests := []struct {
		name      string
		period    int
		clock     Clock
		pointDiff int
		expected  bool
	}{
		{name: "classic foul game", period: 2, clock: Clock{Minutes: 1, Seconds: 30}, pointDiff: 6, expected: true},
		{name: "exactly 120 seconds", period: 2, clock: Clock{Minutes: 2}, pointDiff: 5, expected: true},
		{name: "just over two minutes", period: 2, clock: Clock{Minutes: 2, Seconds: 1}, pointDiff: 5, expected: false},
		{name: "tie game has no fouling incentive", period: 2, clock: Clock{Minutes: 1}, pointDiff: 0, expected: false},
		{name: "blowout", period: 2, clock: Clock{Minutes: 1}, pointDiff: 11, expected: false},
		{name: "first half", period: 1, clock: Clock{Minutes: 1}, pointDiff: 5, expected: false},
		{name: "overtime", period: 3, clock: Clock{Minutes: 1}, pointDiff: 5, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsInFoulGame(tt.period, tt.clock, tt.pointDiff))
		})
	}
}

func TestCouldEnterFoulGame(t *testing.T) {
	tests := []struct {
		name      string
		period    int
		clock     Clock
		pointDiff int
		expected  bool
	}{
		{name: "five minutes twelve points", period: 2, clock: Clock{Minutes: 5}, pointDiff: 12, expected: true},
		{name: "tie game still anticipatory", period: 2, clock: Clock{Minutes: 4}, pointDiff: 0, expected: true},
		{name: "too far out", period: 2, clock: Clock{Minutes: 5, Seconds: 1}, pointDiff: 8, expected: false},
		{name: "margin too wide", period: 2, clock: Clock{Minutes: 3}, pointDiff: 13, expected: false},
		{name: "first half", period: 1, clock: Clock{Minutes: 3}, pointDiff: 8, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CouldEnterFoulGame(tt.period, tt.clock, tt.pointDiff))
		})
	}
}

func TestFoulGameAdjustment(t *testing.T) {
	tests := []struct {
		deficit  int
		expected float64
		ok       bool
	}{
		{deficit: 1, expected: 4.2, ok: true},
		{deficit: 2, expected: 5.0, ok: true},
		{deficit: 7, expected: 7.3, ok: true},
		{deficit: 10, expected: 5.7, ok: true},
		{deficit: 0, ok: false},
		{deficit: 11, ok: false},
		{deficit: -3, ok: false},
	}

	for _, tt := range tests {
		got, ok := FoulGameAdjustment(tt.deficit)
		require.Equal(t, tt.ok, ok, "deficit %d", tt.deficit)
		if tt.ok {
			assert.Equal(t, tt.expected, got, "deficit %d", tt.deficit)
		}
	}
}

func TestAdjustedProjection(t *testing.T) {
	t.Run("strict window adds table value plus modifier", func(t *testing.T) {
		got := AdjustedProjection(140.0, 2, Clock{Minutes: 1, Seconds: 30}, 7, 0.5)
		assert.InDelta(t, 140.0+7.3+0.5, got, 1e-9)
	})

	t.Run("anticipatory window adds the default average", func(t *testing.T) {
		got := AdjustedProjection(140.0, 2, Clock{Minutes: 4}, 12, 0)
		assert.InDelta(t, 140.0+DefaultFoulGameAdjustment, got, 1e-9)
	})

	t.Run("outside both windows passes through", func(t *testing.T) {
		got := AdjustedProjection(140.0, 2, Clock{Minutes: 10}, 4, 1.0)
		assert.Equal(t, 140.0, got)
	})
}
