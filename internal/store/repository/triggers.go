package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/store"
)

// TriggerRepository handles trigger event data access
type TriggerRepository struct {
	db *store.Database
}

// NewTriggerRepository creates a new trigger repository
func NewTriggerRepository(db *store.Database) *TriggerRepository {
	return &TriggerRepository{db: db}
}

const triggerColumns = `id, event_uid, game_id, home_team, away_team, trigger_type,
	trigger_strength, period, clock, minutes_remaining, home_score, away_score,
	total_points, ou_line, current_ppm, required_ppm, projected_total,
	triggered_at, created_at`

// Insert appends a trigger event.
func (r *TriggerRepository) Insert(ctx context.Context, event *store.TriggerEvent) error {
	query := `
		INSERT INTO trigger_events (event_uid, game_id, home_team, away_team,
			trigger_type, trigger_strength, period, clock, minutes_remaining,
			home_score, away_score, total_points, ou_line, current_ppm,
			required_ppm, projected_total, triggered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		event.EventUID, event.GameID, event.HomeTeam, event.AwayTeam,
		event.TriggerType, event.TriggerStrength, event.Period, event.Clock,
		event.MinutesRemaining, event.HomeScore, event.AwayScore,
		event.TotalPoints, event.OULine, event.CurrentPPM,
		event.RequiredPPM, event.ProjectedTotal, event.TriggeredAt,
	).Scan(&event.ID)

	if err != nil {
		return fmt.Errorf("inserting trigger event: %w", err)
	}

	return nil
}

// LatestForGame returns the most recent trigger event for a game and trigger
// type, used by the emitter's dedup window. A miss is not an error.
func (r *TriggerRepository) LatestForGame(ctx context.Context, gameID, triggerType string) (*store.TriggerEvent, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM trigger_events
		WHERE game_id = $1 AND trigger_type = $2
		ORDER BY triggered_at DESC
		LIMIT 1
	`, triggerColumns)

	event := &store.TriggerEvent{}
	err := r.scanEvent(r.db.DB().QueryRowContext(ctx, query, gameID, triggerType), event)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest trigger for game %s: %w", gameID, err)
	}

	return event, nil
}

// GetRecent returns trigger events within the lookback window, newest first.
func (r *TriggerRepository) GetRecent(ctx context.Context, since time.Time, limit int) ([]*store.TriggerEvent, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM trigger_events
		WHERE triggered_at >= $1
		ORDER BY triggered_at DESC
		LIMIT $2
	`, triggerColumns)

	rows, err := r.db.DB().QueryContext(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent triggers: %w", err)
	}
	defer rows.Close()

	return r.scanEvents(rows)
}

// GetByGame returns all trigger events recorded for a game, oldest first.
func (r *TriggerRepository) GetByGame(ctx context.Context, gameID string) ([]*store.TriggerEvent, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM trigger_events
		WHERE game_id = $1
		ORDER BY triggered_at
	`, triggerColumns)

	rows, err := r.db.DB().QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying triggers for game %s: %w", gameID, err)
	}
	defer rows.Close()

	return r.scanEvents(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *TriggerRepository) scanEvent(row rowScanner, event *store.TriggerEvent) error {
	return row.Scan(
		&event.ID, &event.EventUID, &event.GameID, &event.HomeTeam, &event.AwayTeam,
		&event.TriggerType, &event.TriggerStrength, &event.Period, &event.Clock,
		&event.MinutesRemaining, &event.HomeScore, &event.AwayScore,
		&event.TotalPoints, &event.OULine, &event.CurrentPPM,
		&event.RequiredPPM, &event.ProjectedTotal,
		&event.TriggeredAt, &event.CreatedAt,
	)
}

func (r *TriggerRepository) scanEvents(rows *sql.Rows) ([]*store.TriggerEvent, error) {
	var events []*store.TriggerEvent
	for rows.Next() {
		event := &store.TriggerEvent{}
		if err := r.scanEvent(rows, event); err != nil {
			return nil, fmt.Errorf("scanning trigger event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}
