package pace

import (
	"strconv"
	"strings"
)

// Regulation timing for NCAA men's basketball: two 20-minute halves.
const (
	RegulationMinutes = 40.0
	HalfMinutes       = 20.0
)

// Clock is a normalized game clock: time remaining in the current period.
type Clock struct {
	Minutes int
	Seconds int
}

// ParseClock normalizes a display clock string.
// Accepts "MM:SS" and bare fractional seconds like "0.9" (treated as whole
// seconds, zero minutes). Malformed or empty input yields 0:00 rather than an
// error so a bad clock degrades one field, not the whole poll.
func ParseClock(raw string) Clock {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Clock{}
	}

	if strings.Contains(raw, ":") {
		parts := strings.SplitN(raw, ":", 2)
		mins, err := strconv.Atoi(parts[0])
		if err != nil || mins < 0 {
			return Clock{}
		}
		secs := 0
		if len(parts) > 1 {
			// Some feeds render tenths in the final minute ("0:59.1")
			secStr := strings.SplitN(parts[1], ".", 2)[0]
			if s, err := strconv.Atoi(secStr); err == nil && s >= 0 && s < 60 {
				secs = s
			}
		}
		return Clock{Minutes: mins, Seconds: secs}
	}

	// Bare decimal: under-a-minute clocks like "24.7"
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f >= 0 {
		return Clock{Minutes: 0, Seconds: int(f)}
	}

	return Clock{}
}

// TotalSeconds returns the clock as seconds remaining in the period.
func (c Clock) TotalSeconds() int {
	return c.Minutes*60 + c.Seconds
}

// MinutesRemaining computes the minutes left in regulation for a given period
// and clock. Overtime (period >= 3) returns 0: overtime games are excluded
// from pace projections. A pregame period (0 or negative) returns the full
// regulation length.
func MinutesRemaining(period int, clock Clock) float64 {
	frac := float64(clock.Minutes) + float64(clock.Seconds)/60.0

	switch {
	case period >= 3:
		return 0
	case period == 2:
		return frac
	case period == 1:
		return HalfMinutes + frac
	default:
		return RegulationMinutes
	}
}
