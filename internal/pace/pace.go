package pace

// DefaultSecondHalfFactor scales first-half pace when projecting into the
// second half. Second-half scoring historically runs ~9% hotter than the
// first (fouling, shorter possessions, bonus free throws).
const DefaultSecondHalfFactor = 1.09

// CurrentPPM returns the combined scoring rate in points per minute of
// regulation elapsed. ok is false when no game time has elapsed (pregame or a
// clock inconsistency), in which case the rate is undefined.
func CurrentPPM(totalPoints int, minutesRemaining float64) (float64, bool) {
	elapsed := RegulationMinutes - minutesRemaining
	if elapsed <= 0 {
		return 0, false
	}
	return float64(totalPoints) / elapsed, true
}

// RequiredPPM returns the scoring rate needed from now until the end of
// regulation for the game to land exactly on the totals line. ok is false
// when there is no line or no regulation time remains. A line that has
// already been passed yields 0, never a negative rate.
func RequiredPPM(totalPoints int, ouLine float64, hasLine bool, minutesRemaining float64) (float64, bool) {
	if !hasLine || minutesRemaining <= 0 {
		return 0, false
	}
	needed := ouLine - float64(totalPoints)
	if needed < 0 {
		needed = 0
	}
	return needed / minutesRemaining, true
}

// ProjectedTotal linearly extrapolates the current pace to the final score.
// When projecting from the first half, the remaining second-half minutes are
// scaled by secondHalfFactor. ok is false when current pace is undefined.
func ProjectedTotal(totalPoints int, minutesRemaining float64, period int, secondHalfFactor float64) (float64, bool) {
	ppm, ok := CurrentPPM(totalPoints, minutesRemaining)
	if !ok {
		return 0, false
	}
	if secondHalfFactor <= 0 {
		secondHalfFactor = DefaultSecondHalfFactor
	}

	if period == 1 && minutesRemaining > HalfMinutes {
		// Split the projection: rest of this half at current pace, the
		// entire second half at the scaled rate.
		firstHalfLeft := minutesRemaining - HalfMinutes
		return float64(totalPoints) + ppm*firstHalfLeft + ppm*secondHalfFactor*HalfMinutes, true
	}

	return float64(totalPoints) + ppm*minutesRemaining, true
}
