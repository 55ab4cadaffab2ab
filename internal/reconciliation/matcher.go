package reconciliation

import (
	"strings"

	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/ingest/espn"
	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/ingest/odds"
)

// Matcher pairs scoreboard games with totals lines from the odds feed.
// The two sources spell school names differently, so matching is done on
// normalized names with containment as a fallback.
type Matcher struct {
	linesByKey map[string]odds.TotalLine
	lines      []odds.TotalLine
}

// NewMatcher indexes a set of totals lines for lookup
func NewMatcher(lines []odds.TotalLine) *Matcher {
	byKey := make(map[string]odds.TotalLine, len(lines))
	for _, line := range lines {
		byKey[matchupKey(line.HomeTeam, line.AwayTeam)] = line
	}
	return &Matcher{
		linesByKey: byKey,
		lines:      lines,
	}
}

// LineFor returns the totals line for a scoreboard game. The second return
// is false when no book carries this game, which is common for small
// conference matchups.
func (m *Matcher) LineFor(game *espn.ScoreboardGame) (odds.TotalLine, bool) {
	// Exact normalized matchup first
	if line, ok := m.linesByKey[matchupKey(game.Home.DisplayName, game.Away.DisplayName)]; ok {
		return line, true
	}

	// Containment fallback, both orientations in case a source flips
	// home and away for neutral site games
	for _, line := range m.lines {
		if teamsMatch(game.Home.DisplayName, line.HomeTeam) && teamsMatch(game.Away.DisplayName, line.AwayTeam) {
			return line, true
		}
		if teamsMatch(game.Home.DisplayName, line.AwayTeam) && teamsMatch(game.Away.DisplayName, line.HomeTeam) {
			return line, true
		}
	}

	return odds.TotalLine{}, false
}

func matchupKey(home, away string) string {
	return normalizeTeamName(home) + "|" + normalizeTeamName(away)
}

// teamsMatch compares two team names after normalization, accepting
// containment either way ("Kentucky" vs "Kentucky Wildcats")
func teamsMatch(a, b string) bool {
	na, nb := normalizeTeamName(a), normalizeTeamName(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

// aliasReplacements expands the abbreviations the odds feed and the
// scoreboard disagree on most often
var aliasReplacements = []struct {
	from string
	to   string
}{
	{"st.", "state"},
	{"uconn", "connecticut"},
	{"ole miss", "mississippi"},
	{"smu", "southern methodist"},
	{"tcu", "texas christian"},
	{"lsu", "louisiana state"},
	{"byu", "brigham young"},
	{"vcu", "virginia commonwealth"},
	{"ucf", "central florida"},
}

func normalizeTeamName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "(", "")
	n = strings.ReplaceAll(n, ")", "")
	n = strings.ReplaceAll(n, "'", "")
	n = strings.ReplaceAll(n, "&", "and")
	n = strings.ReplaceAll(n, "-", " ")

	for _, alias := range aliasReplacements {
		n = strings.ReplaceAll(n, alias.from, alias.to)
	}

	return strings.Join(strings.Fields(n), " ")
}
