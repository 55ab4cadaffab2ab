package emitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/pace"
	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/store"
)

// SlackNotifier sends trigger alerts to Slack via webhook
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
}

// NewSlackNotifier creates a new Slack notifier
func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NotifyTrigger sends a trigger alert to Slack
func (s *SlackNotifier) NotifyTrigger(ctx context.Context, event *store.TriggerEvent) error {
	if s.webhookURL == "" {
		return nil
	}

	payload := map[string]interface{}{
		"text": s.formatMessage(event),
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal Slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.webhookURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send Slack alert: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Slack webhook returned status %d", resp.StatusCode)
	}

	return nil
}

// formatMessage formats a trigger event as a Slack message
func (s *SlackNotifier) formatMessage(event *store.TriggerEvent) string {
	var sb strings.Builder

	emoji := s.emojiForTrigger(event.TriggerType)
	title := strings.ToUpper(strings.ReplaceAll(event.TriggerType, "_", " "))
	sb.WriteString(fmt.Sprintf("%s *%s*", emoji, title))
	if event.TriggerStrength.Valid && event.TriggerStrength.String != string(pace.StrengthNone) {
		sb.WriteString(fmt.Sprintf(" | Strength: %s", event.TriggerStrength.String))
	}
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("*Game:* %s vs %s\n", event.AwayTeam, event.HomeTeam))
	sb.WriteString(fmt.Sprintf("*Score:* %d-%d (%d total) | P%d %s\n",
		event.AwayScore, event.HomeScore, event.TotalPoints, event.Period, event.Clock))

	if event.OULine.Valid {
		sb.WriteString(fmt.Sprintf("*Line:* %.1f\n", event.OULine.Float64))
	}
	if event.CurrentPPM.Valid && event.RequiredPPM.Valid {
		sb.WriteString(fmt.Sprintf("*Pace:* %.2f PPM current vs %.2f needed\n",
			event.CurrentPPM.Float64, event.RequiredPPM.Float64))
	}
	if event.ProjectedTotal.Valid {
		sb.WriteString(fmt.Sprintf("*Projected Total:* %.1f\n", event.ProjectedTotal.Float64))
	}

	sb.WriteString(fmt.Sprintf("\n_Triggered: %s | %s_",
		event.TriggeredAt.Format("15:04:05"), event.EventUID[:8]))

	return sb.String()
}

// emojiForTrigger returns an emoji for the trigger type
func (s *SlackNotifier) emojiForTrigger(triggerType string) string {
	switch triggerType {
	case string(pace.TriggerUnder):
		return "🏆"
	case string(pace.TriggerOver):
		return "📈"
	case string(pace.TriggerTripleDipper):
		return "🎯"
	default:
		return "📊"
	}
}
