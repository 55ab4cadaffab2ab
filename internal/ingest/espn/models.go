package espn

// TeamSide identifies one side of a scoreboard game.
type TeamSide struct {
	ESPNID       string
	Abbreviation string
	DisplayName  string
	Score        int
	Fouls        int
}

// ScoreboardGame is one game parsed from the scoreboard feed.
type ScoreboardGame struct {
	GameID  string
	Status  string // scheduled | in_progress | final
	Period  int
	Clock   string // display clock, raw
	Home    TeamSide
	Away    TeamSide
	Venue   string
	DateUTC string
}

// PlayEvent is one play-by-play record from the game summary, kept only in
// the fields the foul counter needs.
type PlayEvent struct {
	Period   int
	TeamID   string
	PlayType string
}

// GameDetail carries the enrichment parsed from a game summary: box-score
// team foul totals plus the play-by-play foul events.
type GameDetail struct {
	GameID    string
	HomeFouls int
	AwayFouls int
	Plays     []PlayEvent
	HasPlays  bool
	Officials []string
}
