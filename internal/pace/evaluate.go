package pace

// GameStatus as normalized from the live feed.
type GameStatus string

const (
	StatusScheduled  GameStatus = "scheduled"
	StatusInProgress GameStatus = "in_progress"
	StatusFinal      GameStatus = "final"
)

// GameInput is one game's worth of raw feed data, assembled by the ingester.
// All fields are explicit; the engine holds no state between calls.
type GameInput struct {
	GameID    string
	Status    GameStatus
	Period    int
	RawClock  string
	HomeScore int
	AwayScore int

	OULine  float64
	HasLine bool

	// Optional enrichment
	HomeTeamID       string
	AwayTeamID       string
	HomeFouls        int
	AwayFouls        int
	FoulEvents       []FoulEvent
	TeamPairModifier float64

	// Projection tuning; zero means DefaultSecondHalfFactor.
	SecondHalfFactor float64
}

// Evaluation is the derived per-game state for one poll cycle.
type Evaluation struct {
	GameID           string      `json:"game_id"`
	Status           GameStatus  `json:"status"`
	Period           int         `json:"period"`
	Clock            Clock       `json:"clock"`
	HomeScore        int         `json:"home_score"`
	AwayScore        int         `json:"away_score"`
	TotalPoints      int         `json:"total_points"`
	OULine           float64     `json:"ou_line,omitempty"`
	HasLine          bool        `json:"has_line"`
	Overtime         bool        `json:"overtime"`
	MinutesRemaining float64     `json:"minutes_remaining"`
	CurrentPPM       float64     `json:"current_ppm,omitempty"`
	HasCurrentPPM    bool        `json:"has_current_ppm"`
	RequiredPPM      float64     `json:"required_ppm,omitempty"`
	HasRequiredPPM   bool        `json:"has_required_ppm"`
	ProjectedTotal   float64     `json:"projected_total,omitempty"`
	HasProjection    bool        `json:"has_projection"`
	FoulGame         bool        `json:"foul_game"`
	FoulGameWarning  bool        `json:"foul_game_warning"`
	Trigger          TriggerType `json:"trigger,omitempty"`
	Strength         Strength    `json:"strength,omitempty"`
	HomeBonus        BonusStatus `json:"home_bonus"`
	AwayBonus        BonusStatus `json:"away_bonus"`
}

// Evaluate runs the full pipeline for one game: clock normalization, pace,
// projection with foul-game adjustment, trigger classification, and bonus
// status. Pure function; calling it twice with the same input yields the
// same output.
func Evaluate(in GameInput) Evaluation {
	clock := ParseClock(in.RawClock)
	remaining := MinutesRemaining(in.Period, clock)
	total := in.HomeScore + in.AwayScore
	overtime := in.Period >= 3

	ev := Evaluation{
		GameID:           in.GameID,
		Status:           in.Status,
		Period:           in.Period,
		Clock:            clock,
		HomeScore:        in.HomeScore,
		AwayScore:        in.AwayScore,
		TotalPoints:      total,
		OULine:           in.OULine,
		HasLine:          in.HasLine,
		Overtime:         overtime,
		MinutesRemaining: remaining,
	}

	ev.CurrentPPM, ev.HasCurrentPPM = CurrentPPM(total, remaining)
	ev.RequiredPPM, ev.HasRequiredPPM = RequiredPPM(total, in.OULine, in.HasLine, remaining)

	pointDiff := in.HomeScore - in.AwayScore
	if pointDiff < 0 {
		pointDiff = -pointDiff
	}
	ev.FoulGame = IsInFoulGame(in.Period, clock, pointDiff)
	ev.FoulGameWarning = !ev.FoulGame && CouldEnterFoulGame(in.Period, clock, pointDiff)

	if projected, ok := ProjectedTotal(total, remaining, in.Period, in.SecondHalfFactor); ok {
		ev.ProjectedTotal = AdjustedProjection(projected, in.Period, clock, pointDiff, in.TeamPairModifier)
		ev.HasProjection = true
	}

	ev.Trigger = Classify(TriggerInput{
		Live:             in.Status == StatusInProgress,
		Overtime:         overtime,
		MinutesRemaining: remaining,
		CurrentPPM:       ev.CurrentPPM,
		HasCurrentPPM:    ev.HasCurrentPPM,
		RequiredPPM:      ev.RequiredPPM,
		HasRequiredPPM:   ev.HasRequiredPPM,
	})
	if ev.Trigger == TriggerUnder {
		ev.Strength = StrengthFor(ev.RequiredPPM)
	}

	ev.HomeBonus, ev.AwayBonus = BonusStatuses(
		in.HomeTeamID, in.AwayTeamID, in.Period,
		in.HomeFouls, in.AwayFouls, in.FoulEvents,
	)

	return ev
}
