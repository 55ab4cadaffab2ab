package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/store"
)

// SnapshotRepository handles game snapshot data access
type SnapshotRepository struct {
	db *store.Database
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *store.Database) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

const snapshotColumns = `id, game_id, home_team, away_team, status, period, clock,
	minutes_remaining, home_score, away_score, total_points, ou_line,
	current_ppm, required_ppm, projected_total, trigger_type, foul_game,
	home_in_bonus, away_in_bonus, polled_at, created_at`

// Insert appends one snapshot row. Snapshots are unconditional: every poll
// writes a new row for every live game.
func (r *SnapshotRepository) Insert(ctx context.Context, snap *store.GameSnapshot) error {
	query := `
		INSERT INTO game_snapshots (game_id, home_team, away_team, status,
			period, clock, minutes_remaining, home_score, away_score,
			total_points, ou_line, current_ppm, required_ppm, projected_total,
			trigger_type, foul_game, home_in_bonus, away_in_bonus, polled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		snap.GameID, snap.HomeTeam, snap.AwayTeam, snap.Status,
		snap.Period, snap.Clock, snap.MinutesRemaining, snap.HomeScore,
		snap.AwayScore, snap.TotalPoints, snap.OULine, snap.CurrentPPM,
		snap.RequiredPPM, snap.ProjectedTotal, snap.TriggerType,
		snap.FoulGame, snap.HomeInBonus, snap.AwayInBonus, snap.PolledAt,
	).Scan(&snap.ID)

	if err != nil {
		return fmt.Errorf("inserting game snapshot: %w", err)
	}

	return nil
}

// GetByGame returns a game's snapshot history, oldest first.
func (r *SnapshotRepository) GetByGame(ctx context.Context, gameID string, limit int) ([]*store.GameSnapshot, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM game_snapshots
		WHERE game_id = $1
		ORDER BY polled_at
		LIMIT $2
	`, snapshotColumns)

	rows, err := r.db.DB().QueryContext(ctx, query, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots for game %s: %w", gameID, err)
	}
	defer rows.Close()

	return r.scanSnapshots(rows)
}

// GetRecent returns snapshots polled within the lookback window, newest first.
func (r *SnapshotRepository) GetRecent(ctx context.Context, since time.Time, limit int) ([]*store.GameSnapshot, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM game_snapshots
		WHERE polled_at >= $1
		ORDER BY polled_at DESC
		LIMIT $2
	`, snapshotColumns)

	rows, err := r.db.DB().QueryContext(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent snapshots: %w", err)
	}
	defer rows.Close()

	return r.scanSnapshots(rows)
}

func (r *SnapshotRepository) scanSnapshots(rows *sql.Rows) ([]*store.GameSnapshot, error) {
	var snaps []*store.GameSnapshot
	for rows.Next() {
		snap := &store.GameSnapshot{}
		err := rows.Scan(
			&snap.ID, &snap.GameID, &snap.HomeTeam, &snap.AwayTeam, &snap.Status,
			&snap.Period, &snap.Clock, &snap.MinutesRemaining, &snap.HomeScore,
			&snap.AwayScore, &snap.TotalPoints, &snap.OULine, &snap.CurrentPPM,
			&snap.RequiredPPM, &snap.ProjectedTotal, &snap.TriggerType,
			&snap.FoulGame, &snap.HomeInBonus, &snap.AwayInBonus,
			&snap.PolledAt, &snap.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning game snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}

	return snaps, rows.Err()
}
