package pace

// TriggerType classifies a live game into one of the alert categories.
type TriggerType string

const (
	TriggerNone         TriggerType = ""
	TriggerUnder        TriggerType = "golden_zone_under"
	TriggerOver         TriggerType = "over"
	TriggerTripleDipper TriggerType = "triple_dipper"
)

// Strength labels for the under trigger, derived from how demanding the
// required pace is.
type Strength string

const (
	StrengthNone     Strength = "NONE"
	StrengthModerate Strength = "MODERATE"
	StrengthGood     Strength = "GOOD"
	StrengthStrong   Strength = "STRONG"
)

// Classifier thresholds. These bands were validated against historical
// results; they are deliberately narrow so the triggers do not fire on noise.
const (
	minRequiredPPM = 4.5 // floor for any under-side trigger

	tripleDipperMinuteLow  = 15.0
	tripleDipperMinuteHigh = 32.0
	tripleDipperGap        = 1.0 // current pace at least this far below required

	overMinuteLow  = 20.0
	overMinuteHigh = 30.0
	overGap        = 0.3 // current pace at least this far above required

	underMinElapsed   = 4.0
	underMinRemaining = 5.0
	underBandLow      = 1.0 // golden zone: required minus current within [low, high]
	underBandHigh     = 1.5

	strengthCeilingPPM = 6.0
)

// TriggerInput carries everything the classifier needs. The classifier is a
// pure function of this struct; identical inputs always yield identical
// output.
type TriggerInput struct {
	Live             bool
	Overtime         bool
	MinutesRemaining float64
	CurrentPPM       float64
	HasCurrentPPM    bool
	RequiredPPM      float64
	HasRequiredPPM   bool
}

// Classify maps game state to a trigger category. Checks run in strict
// priority order and the first match wins: a game qualifying for both
// tripleDipper and under reports tripleDipper, the more specific signal.
func Classify(in TriggerInput) TriggerType {
	if !in.Live || in.Overtime {
		return TriggerNone
	}
	if !in.HasCurrentPPM || !in.HasRequiredPPM {
		return TriggerNone
	}

	gameMinute := RegulationMinutes - in.MinutesRemaining
	paceDiff := in.CurrentPPM - in.RequiredPPM

	// 1. Triple dipper: decisive pace deficit in the mid-game window.
	if gameMinute >= tripleDipperMinuteLow && gameMinute <= tripleDipperMinuteHigh &&
		in.RequiredPPM >= minRequiredPPM &&
		paceDiff <= -tripleDipperGap {
		return TriggerTripleDipper
	}

	// 2. Over: scoring running hot through the middle of the game.
	if gameMinute >= overMinuteLow && gameMinute <= overMinuteHigh &&
		paceDiff >= overGap {
		return TriggerOver
	}

	// 3. Golden zone under: the gap must land inside the band, not merely
	//    exceed it. A bigger deficit than the band does NOT qualify here.
	gap := in.RequiredPPM - in.CurrentPPM
	if gameMinute >= underMinElapsed && in.MinutesRemaining > underMinRemaining &&
		in.RequiredPPM >= minRequiredPPM &&
		gap >= underBandLow && gap <= underBandHigh {
		return TriggerUnder
	}

	return TriggerNone
}

// StrengthFor grades an under trigger by interpolating the required pace
// between the trigger floor and a hard ceiling.
func StrengthFor(requiredPPM float64) Strength {
	if requiredPPM < minRequiredPPM {
		return StrengthNone
	}
	pct := (requiredPPM - minRequiredPPM) / (strengthCeilingPPM - minRequiredPPM)
	switch {
	case pct < 0.5:
		return StrengthModerate
	case pct < 0.8:
		return StrengthGood
	default:
		return StrengthStrong
	}
}
