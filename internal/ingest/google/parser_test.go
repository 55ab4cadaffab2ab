package google

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGameClock(t *testing.T) {
	tests := []struct {
		name       string
		status     string
		wantPeriod int
		wantTime   string
	}{
		{"second half with clock", "2nd Half 12:34", 2, "12:34"},
		{"first half with clock", "1st Half 8:05", 1, "8:05"},
		{"compact half", "H2 3:21", 2, "3:21"},
		{"overtime", "OT 2:00", 3, "2:00"},
		{"halftime", "Halftime", 2, "0:00"},
		{"pregame", "7:00 PM", 0, ""},
		{"empty", "", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period, timeRemaining := parseGameClock(tt.status)
			assert.Equal(t, tt.wantPeriod, period)
			assert.Equal(t, tt.wantTime, timeRemaining)
		})
	}
}

func TestToScoreboardGame(t *testing.T) {
	live := LiveGame{
		HomeTeam:      "Kentucky Wildcats",
		AwayTeam:      "Tennessee Volunteers",
		HomeScore:     41,
		AwayScore:     38,
		GameStatus:    "2nd Half 12:34",
		Period:        2,
		TimeRemaining: "12:34",
		IsLive:        true,
	}

	game := ToScoreboardGame(live)
	assert.Equal(t, "in_progress", game.Status)
	assert.Equal(t, 2, game.Period)
	assert.Equal(t, "12:34", game.Clock)
	assert.Equal(t, "Kentucky Wildcats", game.Home.DisplayName)
	assert.Equal(t, 41, game.Home.Score)
	assert.Equal(t, 38, game.Away.Score)
	assert.Contains(t, game.GameID, "google_")
	assert.Contains(t, game.GameID, "tennesseevolunteers_kentuckywildcats")
}

func TestToScoreboardGameFinal(t *testing.T) {
	game := ToScoreboardGame(LiveGame{
		HomeTeam:   "Duke Blue Devils",
		AwayTeam:   "North Carolina Tar Heels",
		GameStatus: "Final",
	})
	assert.Equal(t, "final", game.Status)
}

func TestParseSportsDivPattern(t *testing.T) {
	html := `<html><body><div class="sports-result">NCAA Basketball: Wildcats 65 - 58 Volunteers</div></body></html>`
	doc, err := ParseHTML(html)
	assert.NoError(t, err)

	games, err := ParseLiveGames(doc)
	assert.NoError(t, err)
	if assert.Len(t, games, 1) {
		assert.Equal(t, "Wildcats", games[0].AwayTeam)
		assert.Equal(t, "Volunteers", games[0].HomeTeam)
		assert.Equal(t, 65, games[0].AwayScore)
		assert.Equal(t, 58, games[0].HomeScore)
	}
}
