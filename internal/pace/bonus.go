package pace

import "strings"

// Bonus thresholds per NCAA rule: free throws once the opponent commits 7
// team fouls in a half, double bonus at 10.
const (
	bonusThreshold       = 7
	doubleBonusThreshold = 10
)

// FoulEvent is a play-by-play record relevant to team-foul counting.
type FoulEvent struct {
	Period   int
	TeamID   string
	PlayType string
}

// BonusStatus describes one team's free-throw situation. The fouls counted
// are the OPPONENT's: team A is in the bonus because team B has been fouling.
type BonusStatus struct {
	TeamID        string `json:"team_id"`
	OpponentFouls int    `json:"opponent_fouls"`
	InBonus       bool   `json:"in_bonus"`
	InDoubleBonus bool   `json:"in_double_bonus"`
	Estimated     bool   `json:"estimated"`
}

// foulPlayTypes are the play descriptions counted as team fouls, matched
// case-insensitively after whitespace normalization.
var foulPlayTypes = map[string]bool{
	"foul":           true,
	"personal foul":  true,
	"shooting foul":  true,
	"offensive foul": true,
	"technical foul": true,
	"flagrant foul":  true,
}

// IsFoulPlay reports whether a play-by-play description counts as a team
// foul for bonus purposes.
func IsFoulPlay(playType string) bool {
	normalized := strings.ToLower(strings.Join(strings.Fields(playType), " "))
	return foulPlayTypes[normalized]
}

// CountHalfFouls counts a team's fouls committed in the given period from
// play-by-play events.
func CountHalfFouls(events []FoulEvent, teamID string, period int) int {
	count := 0
	for _, ev := range events {
		if ev.TeamID != teamID || ev.Period != period {
			continue
		}
		if IsFoulPlay(ev.PlayType) {
			count++
		}
	}
	return count
}

// BonusStatuses derives both teams' bonus state for the current period.
//
// For period 1 the box-score running foul total equals first-half fouls, so
// it is used directly. For later periods the per-half count comes from
// play-by-play events filtered to the current period; when no events are
// available the count falls back to an even split of the game total and the
// result is flagged Estimated so consumers can soften their claims.
func BonusStatuses(homeID, awayID string, period int, homeGameFouls, awayGameFouls int, events []FoulEvent) (home, away BonusStatus) {
	homeHalf, awayHalf, estimated := halfFouls(homeID, awayID, period, homeGameFouls, awayGameFouls, events)

	// Attribution flips: the home team's bonus comes from away-team fouls.
	home = statusFromOpponentFouls(homeID, awayHalf, estimated)
	away = statusFromOpponentFouls(awayID, homeHalf, estimated)
	return home, away
}

func halfFouls(homeID, awayID string, period, homeGameFouls, awayGameFouls int, events []FoulEvent) (home, away int, estimated bool) {
	if period <= 1 {
		return homeGameFouls, awayGameFouls, false
	}

	if len(events) > 0 {
		return CountHalfFouls(events, homeID, period), CountHalfFouls(events, awayID, period), false
	}

	// No play-by-play: assume fouls split evenly across halves.
	return homeGameFouls / 2, awayGameFouls / 2, true
}

func statusFromOpponentFouls(teamID string, opponentFouls int, estimated bool) BonusStatus {
	return BonusStatus{
		TeamID:        teamID,
		OpponentFouls: opponentFouls,
		InBonus:       opponentFouls >= bonusThreshold,
		InDoubleBonus: opponentFouls >= doubleBonusThreshold,
		Estimated:     estimated,
	}
}
