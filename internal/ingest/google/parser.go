package google

import (
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/ingest/espn"
)

// LiveGame represents a live game scraped from Google
type LiveGame struct {
	HomeTeam      string
	AwayTeam      string
	HomeScore     int
	AwayScore     int
	GameStatus    string
	Period        int
	TimeRemaining string
	IsLive        bool
}

// ParseLiveGames extracts live college basketball games from Google search results
func ParseLiveGames(doc *goquery.Document) ([]LiveGame, error) {
	var games []LiveGame

	// Google Sports uses various selectors depending on the page structure,
	// so try the card widget first and fall back to text scraping
	doc.Find("div.imso_mh__lv-m-stl-cont").Each(func(i int, s *goquery.Selection) {
		game := parseSportsCard(s)
		if game != nil {
			games = append(games, *game)
		}
	})

	if len(games) == 0 {
		doc.Find("div[class*='sports']").Each(func(i int, s *goquery.Selection) {
			game := parseSportsDiv(s)
			if game != nil {
				games = append(games, *game)
			}
		})
	}

	log.Printf("Parsed %d live games from Google", len(games))
	return games, nil
}

// parseSportsCard extracts game info from a Google sports card widget
func parseSportsCard(s *goquery.Selection) *LiveGame {
	game := &LiveGame{}

	s.Find("div.imso_mh__first-tn-ed").Each(func(i int, team *goquery.Selection) {
		teamName := strings.TrimSpace(team.Text())
		if i == 0 {
			game.HomeTeam = teamName
		} else if i == 1 {
			game.AwayTeam = teamName
		}
	})

	s.Find("div.imso_mh__l-tm-sc").Each(func(i int, score *goquery.Selection) {
		scoreText := strings.TrimSpace(score.Text())
		scoreVal, err := strconv.Atoi(scoreText)
		if err == nil {
			if i == 0 {
				game.HomeScore = scoreVal
			} else if i == 1 {
				game.AwayScore = scoreVal
			}
		}
	})

	statusText := s.Find("span.imso_mh__ft-mtch").Text()
	game.GameStatus = strings.TrimSpace(statusText)

	game.Period, game.TimeRemaining = parseGameClock(game.GameStatus)
	statusLower := strings.ToLower(game.GameStatus)
	game.IsLive = strings.Contains(statusLower, "live") || game.Period > 0

	if game.HomeTeam != "" && game.AwayTeam != "" {
		return game
	}

	return nil
}

// parseSportsDiv is a fallback parser for alternate Google structures
func parseSportsDiv(s *goquery.Selection) *LiveGame {
	text := s.Text()
	if !strings.Contains(strings.ToLower(text), "ncaa") {
		return nil
	}

	// Look for score patterns like "Wildcats 65 - 58 Volunteers"
	scorePattern := regexp.MustCompile(`(\w+)\s+(\d+)\s*-\s*(\d+)\s+(\w+)`)
	matches := scorePattern.FindStringSubmatch(text)

	if len(matches) == 5 {
		awayScore, _ := strconv.Atoi(matches[2])
		homeScore, _ := strconv.Atoi(matches[3])

		return &LiveGame{
			AwayTeam:   matches[1],
			HomeTeam:   matches[4],
			AwayScore:  awayScore,
			HomeScore:  homeScore,
			GameStatus: "Unknown",
			IsLive:     false,
		}
	}

	return nil
}

// parseGameClock extracts the half and time remaining from status text.
// College games play two halves, with OT reported as the third period.
func parseGameClock(statusText string) (int, string) {
	statusLower := strings.ToLower(statusText)

	periodMap := map[string]int{
		"h1": 1, "1st half": 1, "1st": 1, "first half": 1,
		"h2": 2, "2nd half": 2, "2nd": 2, "second half": 2,
		"ot": 3, "overtime": 3,
	}

	// Longest keys first so "1st half" wins over "1st"
	for _, key := range []string{"first half", "second half", "1st half", "2nd half", "overtime", "h1", "h2", "1st", "2nd", "ot"} {
		if strings.Contains(statusLower, key) {
			period := periodMap[key]
			timePattern := regexp.MustCompile(`(\d{1,2}:\d{2})`)
			if matches := timePattern.FindStringSubmatch(statusText); len(matches) > 0 {
				return period, matches[1]
			}
			return period, ""
		}
	}

	if strings.Contains(statusLower, "half") {
		return 2, "0:00"
	}

	return 0, ""
}

// ToScoreboardGame converts a scraped game into the scoreboard shape so the
// fallback slots into the same pipeline as the primary feed.
func ToScoreboardGame(liveGame LiveGame) *espn.ScoreboardGame {
	return &espn.ScoreboardGame{
		GameID: generateGameID(liveGame),
		Status: gameStatus(liveGame),
		Period: liveGame.Period,
		Clock:  liveGame.TimeRemaining,
		Home: espn.TeamSide{
			DisplayName: liveGame.HomeTeam,
			Score:       liveGame.HomeScore,
		},
		Away: espn.TeamSide{
			DisplayName: liveGame.AwayTeam,
			Score:       liveGame.AwayScore,
		},
	}
}

// generateGameID creates a stable synthetic ID from team names and date
func generateGameID(game LiveGame) string {
	dateStr := time.Now().Format("20060102")
	homeTeam := strings.ReplaceAll(strings.ToLower(game.HomeTeam), " ", "")
	awayTeam := strings.ReplaceAll(strings.ToLower(game.AwayTeam), " ", "")
	return fmt.Sprintf("google_%s_%s_%s", dateStr, awayTeam, homeTeam)
}

// gameStatus converts Google game status to our standard format
func gameStatus(game LiveGame) string {
	if game.IsLive {
		return "in_progress"
	}

	statusLower := strings.ToLower(game.GameStatus)
	if strings.Contains(statusLower, "final") {
		return "final"
	}
	if strings.Contains(statusLower, "postponed") {
		return "postponed"
	}
	if strings.Contains(statusLower, "cancelled") {
		return "cancelled"
	}

	return "scheduled"
}
