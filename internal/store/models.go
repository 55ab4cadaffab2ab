package store

import (
	"database/sql"
	"time"
)

// TriggerEvent is an append-only record of a game qualifying for an alert
// category. One row per (game, trigger type, qualifying window) - the
// emitter's dedup logic decides when a new row is warranted.
type TriggerEvent struct {
	ID               int64           `json:"id" db:"id"`
	EventUID         string          `json:"event_uid" db:"event_uid"`
	GameID           string          `json:"game_id" db:"game_id"`
	HomeTeam         string          `json:"home_team" db:"home_team"`
	AwayTeam         string          `json:"away_team" db:"away_team"`
	TriggerType      string          `json:"trigger_type" db:"trigger_type"`
	TriggerStrength  sql.NullString  `json:"trigger_strength,omitempty" db:"trigger_strength"`
	Period           int             `json:"period" db:"period"`
	Clock            string          `json:"clock" db:"clock"`
	MinutesRemaining float64         `json:"minutes_remaining" db:"minutes_remaining"`
	HomeScore        int             `json:"home_score" db:"home_score"`
	AwayScore        int             `json:"away_score" db:"away_score"`
	TotalPoints      int             `json:"total_points" db:"total_points"`
	OULine           sql.NullFloat64 `json:"ou_line,omitempty" db:"ou_line"`
	CurrentPPM       sql.NullFloat64 `json:"current_ppm,omitempty" db:"current_ppm"`
	RequiredPPM      sql.NullFloat64 `json:"required_ppm,omitempty" db:"required_ppm"`
	ProjectedTotal   sql.NullFloat64 `json:"projected_total,omitempty" db:"projected_total"`
	TriggeredAt      time.Time       `json:"triggered_at" db:"triggered_at"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
}

// GameSnapshot is one row per live game per poll cycle, written
// unconditionally. It is the training and reporting dataset; no dedup.
type GameSnapshot struct {
	ID               int64           `json:"id" db:"id"`
	GameID           string          `json:"game_id" db:"game_id"`
	HomeTeam         string          `json:"home_team" db:"home_team"`
	AwayTeam         string          `json:"away_team" db:"away_team"`
	Status           string          `json:"status" db:"status"`
	Period           int             `json:"period" db:"period"`
	Clock            string          `json:"clock" db:"clock"`
	MinutesRemaining float64         `json:"minutes_remaining" db:"minutes_remaining"`
	HomeScore        int             `json:"home_score" db:"home_score"`
	AwayScore        int             `json:"away_score" db:"away_score"`
	TotalPoints      int             `json:"total_points" db:"total_points"`
	OULine           sql.NullFloat64 `json:"ou_line,omitempty" db:"ou_line"`
	CurrentPPM       sql.NullFloat64 `json:"current_ppm,omitempty" db:"current_ppm"`
	RequiredPPM      sql.NullFloat64 `json:"required_ppm,omitempty" db:"required_ppm"`
	ProjectedTotal   sql.NullFloat64 `json:"projected_total,omitempty" db:"projected_total"`
	TriggerType      sql.NullString  `json:"trigger_type,omitempty" db:"trigger_type"`
	FoulGame         bool            `json:"foul_game" db:"foul_game"`
	HomeInBonus      bool            `json:"home_in_bonus" db:"home_in_bonus"`
	AwayInBonus      bool            `json:"away_in_bonus" db:"away_in_bonus"`
	PolledAt         time.Time       `json:"polled_at" db:"polled_at"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
}

// NullFloat wraps an optional float for persistence.
func NullFloat(v float64, ok bool) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: ok}
}

// NullString wraps an optional string for persistence.
func NullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
