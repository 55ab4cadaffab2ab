package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
)

const (
	BaseURL        = "https://site.api.espn.com/apis/site/v2/sports"
	BasketballNCAA = "basketball/mens-college-basketball"

	// Scoreboard groups=50 returns all Division I games, not just top-25.
	scoreboardLimit = 300
)

// Client handles ESPN API requests
// Note: Uses curl internally because ESPN blocks Go's HTTP client fingerprint
type Client struct {
	baseURL string
}

// New creates a new ESPN API client with a custom base URL
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		baseURL: baseURL,
	}
}

// NewClient creates a new ESPN API client with default settings
func NewClient() *Client {
	return New(BaseURL)
}

// FetchScoreboard fetches today's college basketball scoreboard.
func (c *Client) FetchScoreboard(ctx context.Context) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/%s/scoreboard?groups=50&limit=%d", c.baseURL, BasketballNCAA, scoreboardLimit)
	return c.fetch(ctx, url)
}

// FetchGameSummary fetches the detailed game summary with box score and
// play-by-play, used for foul counting and bonus status.
func (c *Client) FetchGameSummary(ctx context.Context, gameID string) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/%s/summary?event=%s", c.baseURL, BasketballNCAA, gameID)
	return c.fetch(ctx, url)
}

// fetch makes an HTTP GET request using curl with a 15 second ceiling.
// ESPN blocks Go's HTTP client but curl works reliably.
func (c *Client) fetch(ctx context.Context, url string) (map[string]interface{}, error) {
	cmd := exec.CommandContext(ctx, "curl", "-s", "-L", "-m", "15", url)

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("curl failed: %s (stderr: %s)", err, string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("curl execution failed: %w", err)
	}

	// HTML means an error page (403, 404), not a feed payload.
	if len(output) > 0 && output[0] == '<' {
		return nil, fmt.Errorf("ESPN returned HTML error page: %s", string(output[:min(len(output), 200)]))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("decoding response: %w (body: %s)", err, string(output[:min(len(output), 200)]))
	}

	return result, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
