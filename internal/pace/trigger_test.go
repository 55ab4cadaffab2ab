package pace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func liveInput(minutesRemaining, currentPPM, requiredPPM float64) TriggerInput {
	return TriggerInput{
		Live:             true,
		MinutesRemaining: minutesRemaining,
		CurrentPPM:       currentPPM,
		HasCurrentPPM:    true,
		RequiredPPM:      requiredPPM,
		HasRequiredPPM:   true,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		input    TriggerInput
		expected TriggerType
	}{
		{
			name:     "golden zone under inside band",
			input:    liveInput(32.0, 3.8, 5.0), // gameMinute 8, gap 1.2
			expected: TriggerUnder,
		},
		{
			name:     "under at lower band boundary inclusive",
			input:    liveInput(30.0, 4.0, 5.0), // gap exactly 1.0
			expected: TriggerUnder,
		},
		{
			name:     "under at upper band boundary inclusive",
			input:    liveInput(34.0, 3.5, 5.0), // gameMinute 6, gap exactly 1.5
			expected: TriggerUnder,
		},
		{
			name:     "gap just inside upper boundary",
			input:    liveInput(34.0, 3.51, 5.0), // gap 1.49
			expected: TriggerUnder,
		},
		{
			name:     "gap just outside upper boundary",
			input:    liveInput(34.0, 3.49, 5.0), // gap 1.51
			expected: TriggerNone,
		},
		{
			name:     "required pace below floor never unders",
			input:    liveInput(30.0, 3.0, 4.2), // gap 1.2 but required < 4.5
			expected: TriggerNone,
		},
		{
			name:     "triple dipper decisive deficit",
			input:    liveInput(20.0, 3.5, 5.0), // gameMinute 20, diff -1.5
			expected: TriggerTripleDipper,
		},
		{
			name:     "triple dipper before its window",
			input:    liveInput(26.0, 3.0, 4.6), // gameMinute 14
			expected: TriggerNone,
		},
		{
			name:     "over running hot mid game",
			input:    liveInput(15.0, 4.8, 4.2), // gameMinute 25, diff +0.6
			expected: TriggerOver,
		},
		{
			name:     "over too early",
			input:    liveInput(28.0, 4.83, 2.93), // gameMinute 12, diff hot but outside window
			expected: TriggerNone,
		},
		{
			name:     "late game no trigger despite high required pace",
			input:    liveInput(1.5, 118.0/38.5, 8.0), // gameMinute 38.5
			expected: TriggerNone,
		},
		{
			name: "scheduled game never triggers",
			input: TriggerInput{
				Live: false, MinutesRemaining: 25.0,
				CurrentPPM: 3.8, HasCurrentPPM: true,
				RequiredPPM: 5.0, HasRequiredPPM: true,
			},
			expected: TriggerNone,
		},
		{
			name: "overtime never triggers",
			input: TriggerInput{
				Live: true, Overtime: true, MinutesRemaining: 0,
				CurrentPPM: 3.0, HasCurrentPPM: true,
				RequiredPPM: 8.0, HasRequiredPPM: true,
			},
			expected: TriggerNone,
		},
		{
			name: "missing required pace never triggers",
			input: TriggerInput{
				Live: true, MinutesRemaining: 25.0,
				CurrentPPM: 3.8, HasCurrentPPM: true,
			},
			expected: TriggerNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.input))
		})
	}
}

// A game satisfying both the triple dipper and the golden zone bands must
// report triple dipper; the more specific signal wins.
func TestClassifyPriorityOrdering(t *testing.T) {
	in := liveInput(20.0, 3.5, 5.0) // gameMinute 20: dipper diff -1.5, under gap 1.5

	assert.Equal(t, TriggerTripleDipper, Classify(in))
}

// Pure function: repeated evaluation of identical input is identical.
func TestClassifyIdempotent(t *testing.T) {
	in := liveInput(25.0, 3.8, 5.0)
	first := Classify(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(in))
	}
}

func TestStrengthFor(t *testing.T) {
	tests := []struct {
		name     string
		required float64
		expected Strength
	}{
		{name: "below floor", required: 4.4, expected: StrengthNone},
		{name: "at floor", required: 4.5, expected: StrengthModerate},
		{name: "moderate mid band", required: 5.0, expected: StrengthModerate},
		{name: "good", required: 5.4, expected: StrengthGood},
		{name: "strong above 80 percent", required: 5.8, expected: StrengthStrong},
		{name: "strong above ceiling", required: 7.0, expected: StrengthStrong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StrengthFor(tt.required))
		})
	}
}
