package odds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.the-odds-api.com/v4"
	// SportNCAAB is The Odds API sport key for men's college basketball
	SportNCAAB = "basketball_ncaab"
	// DefaultBookmaker is preferred when extracting totals lines
	DefaultBookmaker = "draftkings"
)

// Client fetches totals lines from The Odds API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchTotals fetches current totals odds for all NCAA men's basketball events
func (c *Client) FetchTotals(ctx context.Context) ([]Event, error) {
	url := fmt.Sprintf("%s/sports/%s/odds/?apiKey=%s&regions=us&markets=totals&oddsFormat=american",
		c.baseURL, SportNCAAB, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch totals: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("odds API returned %d", resp.StatusCode)
	}

	var events []Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode totals response: %w", err)
	}

	return events, nil
}

// ExtractTotalLine pulls the over/under number out of an event, preferring
// the given bookmaker and falling back to the first book that posts a
// totals market. Returns false when no book has a line.
func ExtractTotalLine(event Event, preferredBook string) (TotalLine, bool) {
	if line, ok := totalFromBook(event, preferredBook); ok {
		return line, true
	}

	for _, book := range event.Bookmakers {
		if line, ok := totalFromBook(event, book.Key); ok {
			return line, true
		}
	}

	return TotalLine{}, false
}

func totalFromBook(event Event, bookKey string) (TotalLine, bool) {
	for _, book := range event.Bookmakers {
		if book.Key != bookKey {
			continue
		}
		for _, market := range book.Markets {
			if market.Key != "totals" {
				continue
			}
			for _, outcome := range market.Outcomes {
				if outcome.Name == "Over" && outcome.Point > 0 {
					return TotalLine{
						EventID:   event.ID,
						HomeTeam:  event.HomeTeam,
						AwayTeam:  event.AwayTeam,
						Bookmaker: bookKey,
						Line:      outcome.Point,
					}, true
				}
			}
		}
	}
	return TotalLine{}, false
}

// ExtractAllTotals maps every event that carries a totals line
func ExtractAllTotals(events []Event, preferredBook string) []TotalLine {
	var lines []TotalLine
	for _, event := range events {
		if line, ok := ExtractTotalLine(event, preferredBook); ok {
			lines = append(lines, line)
		}
	}
	return lines
}
