package espn

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseScoreboard extracts games from a raw scoreboard payload. Individual
// games that fail to parse are skipped with a warning; one bad event must
// not sink the poll.
func ParseScoreboard(scoreboardData map[string]interface{}) ([]*ScoreboardGame, error) {
	events := extractArray(scoreboardData, "events")
	if len(events) == 0 {
		// No games on this date - this is normal, not an error
		return []*ScoreboardGame{}, nil
	}

	var games []*ScoreboardGame
	for _, eventInterface := range events {
		event, ok := eventInterface.(map[string]interface{})
		if !ok {
			continue
		}
		game, err := parseGameFromEvent(event)
		if err != nil {
			fmt.Printf("[parser] Warning: Skipping game %s: %v\n", extractString(event, "id"), err)
			continue
		}
		games = append(games, game)
	}

	return games, nil
}

func parseGameFromEvent(event map[string]interface{}) (*ScoreboardGame, error) {
	game := &ScoreboardGame{
		GameID:  extractString(event, "id"),
		DateUTC: extractString(event, "date"),
	}

	status := extractMap(event, "status")
	game.Status = parseGameStatus(status)
	game.Period = extractInt(status, "period")
	game.Clock = extractString(status, "displayClock")

	competitions := extractArray(event, "competitions")
	if len(competitions) == 0 {
		return nil, fmt.Errorf("no competitions found for game %s", game.GameID)
	}

	comp, ok := competitions[0].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("malformed competition for game %s", game.GameID)
	}

	competitors := extractArray(comp, "competitors")
	if len(competitors) < 2 {
		return nil, fmt.Errorf("insufficient competitors for game %s", game.GameID)
	}

	for _, compInterface := range competitors {
		competitor, ok := compInterface.(map[string]interface{})
		if !ok {
			continue
		}
		homeAway := extractString(competitor, "homeAway")
		team := extractMap(competitor, "team")
		side := TeamSide{
			ESPNID:       extractString(team, "id"),
			Abbreviation: strings.ToUpper(extractString(team, "abbreviation")),
			DisplayName:  extractString(team, "displayName"),
			Score:        extractInt(competitor, "score"),
		}

		switch homeAway {
		case "home":
			game.Home = side
		case "away":
			game.Away = side
		}
	}

	if game.Home.DisplayName == "" || game.Away.DisplayName == "" {
		return nil, fmt.Errorf("missing home/away side for game %s", game.GameID)
	}

	venue := extractMap(comp, "venue")
	game.Venue = extractString(venue, "fullName")

	return game, nil
}

// ParseGameDetail extracts foul enrichment from a game summary payload:
// box-score team foul totals and play-by-play foul events.
func ParseGameDetail(summaryData map[string]interface{}, gameID, homeESPNID, awayESPNID string) (*GameDetail, error) {
	detail := &GameDetail{GameID: gameID}

	boxscore := extractMap(summaryData, "boxscore")
	if len(boxscore) == 0 {
		return nil, fmt.Errorf("no boxscore data found")
	}

	teamsData := extractArray(boxscore, "teams")
	for _, teamDataInterface := range teamsData {
		teamData, ok := teamDataInterface.(map[string]interface{})
		if !ok {
			continue
		}
		team := extractMap(teamData, "team")
		teamID := extractString(team, "id")

		fouls := teamFoulsFromStatArray(extractArray(teamData, "statistics"))
		switch teamID {
		case homeESPNID:
			detail.HomeFouls = fouls
		case awayESPNID:
			detail.AwayFouls = fouls
		}
	}

	detail.Plays = parsePlays(summaryData)
	detail.HasPlays = len(detail.Plays) > 0
	detail.Officials = parseOfficials(summaryData)

	return detail, nil
}

// teamFoulsFromStatArray finds the team foul total in ESPN's flat stat array
// (each entry: {name, label, displayValue}).
func teamFoulsFromStatArray(statistics []interface{}) int {
	for _, statInterface := range statistics {
		statObj, ok := statInterface.(map[string]interface{})
		if !ok {
			continue
		}

		name := extractString(statObj, "name")
		label := extractString(statObj, "label")
		if name == "fouls" || name == "totalFouls" || label == "PF" || label == "Fouls" {
			if v, err := strconv.Atoi(strings.TrimSpace(extractString(statObj, "displayValue"))); err == nil {
				return v
			}
		}
	}
	return 0
}

// parsePlays flattens the summary's play-by-play into PlayEvents. The feed
// nests plays either at the top level or under each period; both are tried.
func parsePlays(summaryData map[string]interface{}) []PlayEvent {
	var events []PlayEvent

	for _, playInterface := range extractArray(summaryData, "plays") {
		play, ok := playInterface.(map[string]interface{})
		if !ok {
			continue
		}

		period := extractInt(extractMap(play, "period"), "number")
		team := extractMap(play, "team")
		playType := extractMap(play, "type")

		events = append(events, PlayEvent{
			Period:   period,
			TeamID:   extractString(team, "id"),
			PlayType: extractString(playType, "text"),
		})
	}

	return events
}

// parseOfficials pulls the referee crew names from the game info block.
func parseOfficials(summaryData map[string]interface{}) []string {
	gameInfo := extractMap(summaryData, "gameInfo")

	var names []string
	for _, officialInterface := range extractArray(gameInfo, "officials") {
		official, ok := officialInterface.(map[string]interface{})
		if !ok {
			continue
		}
		if name := extractString(official, "displayName"); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Helper functions

func extractString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

func extractInt(m map[string]interface{}, key string) int {
	if v, ok := m[key]; ok {
		return parseInt(v)
	}
	return 0
}

func extractMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key]; ok {
		if mapVal, ok := v.(map[string]interface{}); ok {
			return mapVal
		}
	}
	return map[string]interface{}{}
}

func extractArray(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key]; ok {
		if arrVal, ok := v.([]interface{}); ok {
			return arrVal
		}
	}
	return []interface{}{}
}

func parseInt(v interface{}) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case string:
		i, _ := strconv.Atoi(val)
		return i
	case int:
		return val
	default:
		return 0
	}
}

func parseGameStatus(status map[string]interface{}) string {
	statusType := extractMap(status, "type")

	if completed, ok := statusType["completed"].(bool); ok && completed {
		return "final"
	}

	if state, ok := statusType["state"].(string); ok {
		switch state {
		case "in":
			return "in_progress"
		case "pre":
			return "scheduled"
		case "post":
			return "final"
		}
	}

	return "scheduled"
}
