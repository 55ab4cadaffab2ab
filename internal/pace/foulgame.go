package pace

// Foul-game window bounds. The strict window is where intentional fouling is
// actually happening; the relaxed window flags games about to enter it.
const (
	foulGameMaxSeconds      = 120
	foulGameMaxDeficit      = 10
	foulGameWarnMaxSeconds  = 300
	foulGameWarnMaxDeficit  = 12
	DefaultFoulGameAdjustment = 5.8
)

// foulGameAdjustments maps the trailing team's deficit to the average extra
// points scored through the intentional-foul free-throw sequence, derived
// from historical end-game data.
var foulGameAdjustments = map[int]float64{
	1:  4.2,
	2:  5.0,
	3:  5.5,
	4:  5.6,
	5:  5.5,
	6:  5.9,
	7:  7.3,
	8:  7.2,
	9:  6.7,
	10: 5.7,
}

// IsInFoulGame reports whether the game is in an active foul-game situation:
// second half, two minutes or less on the clock, and a one-possession-to-
// ten-point margin worth chasing.
func IsInFoulGame(period int, clock Clock, pointDiff int) bool {
	if period != 2 {
		return false
	}
	if clock.TotalSeconds() > foulGameMaxSeconds {
		return false
	}
	return pointDiff >= 1 && pointDiff <= foulGameMaxDeficit
}

// CouldEnterFoulGame is the relaxed precondition used for an anticipatory
// warning before the strict window opens.
func CouldEnterFoulGame(period int, clock Clock, pointDiff int) bool {
	if period != 2 {
		return false
	}
	if clock.TotalSeconds() > foulGameWarnMaxSeconds {
		return false
	}
	return pointDiff <= foulGameWarnMaxDeficit
}

// FoulGameAdjustment returns the expected bonus scoring for a deficit inside
// the foul-game table. ok is false outside [1,10]; callers showing the
// anticipatory warning should fall back to DefaultFoulGameAdjustment.
func FoulGameAdjustment(pointDiff int) (float64, bool) {
	adj, ok := foulGameAdjustments[pointDiff]
	return adj, ok
}

// AdjustedProjection adds foul-game bonus scoring on top of the linear
// projection when the game is in, or about to enter, a foul-game situation.
// teamPairModifier is the per-matchup tendency adjustment from reference
// data (zero when unknown).
func AdjustedProjection(projected float64, period int, clock Clock, pointDiff int, teamPairModifier float64) float64 {
	switch {
	case IsInFoulGame(period, clock, pointDiff):
		if adj, ok := FoulGameAdjustment(pointDiff); ok {
			return projected + adj + teamPairModifier
		}
		return projected
	case CouldEnterFoulGame(period, clock, pointDiff):
		return projected + DefaultFoulGameAdjustment + teamPairModifier
	default:
		return projected
	}
}
