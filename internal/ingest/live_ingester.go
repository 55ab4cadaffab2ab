package ingest

import (
	"context"
	"log"
	"sync"

	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/cache"
	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/ingest/espn"
	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/ingest/google"
	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/ingest/odds"
	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/pace"
	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/reconciliation"
	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/refdata"
)

// summaryWorkers bounds concurrent game summary fetches per poll
const summaryWorkers = 4

// ScoreboardSource is the primary live score feed
type ScoreboardSource interface {
	FetchScoreboard(ctx context.Context) (map[string]interface{}, error)
	FetchGameSummary(ctx context.Context, gameID string) (map[string]interface{}, error)
}

// OddsSource supplies totals lines
type OddsSource interface {
	FetchTotals(ctx context.Context) ([]odds.Event, error)
}

// FallbackSource is the scraped backup score feed
type FallbackSource interface {
	FetchLiveGames(ctx context.Context) (string, error)
}

// GameUpdate is one game's state after a poll cycle: the raw scoreboard
// view plus the computed evaluation
type GameUpdate struct {
	Game       *espn.ScoreboardGame
	Detail     *espn.GameDetail
	Evaluation pace.Evaluation
	OULine     float64
	HasLine    bool
}

// LiveIngester drives one poll cycle: scoreboard fetch with fallback,
// odds line matching, foul enrichment, pace evaluation.
// Primary: ESPN (authoritative, includes fouls)
// Fallback: Google scrape (scores only)
type LiveIngester struct {
	espnClient    ScoreboardSource
	oddsClient    OddsSource
	fallback      FallbackSource
	cache         *cache.RedisCache
	refdata       *refdata.Store
	preferredBook string

	secondHalfFactor float64
}

// NewLiveIngester creates a live game ingester. fallback, cache and
// refdata may be nil; the pipeline degrades rather than failing.
func NewLiveIngester(espnClient ScoreboardSource, oddsClient OddsSource, fallback FallbackSource, redisCache *cache.RedisCache, ref *refdata.Store, preferredBook string, secondHalfFactor float64) *LiveIngester {
	if preferredBook == "" {
		preferredBook = odds.DefaultBookmaker
	}
	if secondHalfFactor <= 0 {
		secondHalfFactor = pace.DefaultSecondHalfFactor
	}
	return &LiveIngester{
		espnClient:       espnClient,
		oddsClient:       oddsClient,
		fallback:         fallback,
		cache:            redisCache,
		refdata:          ref,
		preferredBook:    preferredBook,
		secondHalfFactor: secondHalfFactor,
	}
}

// Poll runs one full cycle and returns an update per game on today's
// scoreboard. Live games carry evaluations; pregame and final games pass
// through so the serving layer can show the full slate.
func (li *LiveIngester) Poll(ctx context.Context) ([]*GameUpdate, error) {
	games, err := li.fetchScoreboard(ctx)
	if err != nil {
		return nil, err
	}

	matcher := li.fetchLines(ctx)

	updates := make([]*GameUpdate, 0, len(games))
	for _, game := range games {
		update := &GameUpdate{Game: game}
		update.OULine, update.HasLine = li.resolveLine(ctx, matcher, game)
		updates = append(updates, update)
	}

	li.enrichLiveGames(ctx, updates)

	for _, update := range updates {
		update.Evaluation = pace.Evaluate(li.buildInput(update))
	}

	return updates, nil
}

// fetchScoreboard tries ESPN first and falls back to the Google scrape
func (li *LiveIngester) fetchScoreboard(ctx context.Context) ([]*espn.ScoreboardGame, error) {
	raw, err := li.espnClient.FetchScoreboard(ctx)
	if err == nil {
		games, parseErr := espn.ParseScoreboard(raw)
		if parseErr == nil {
			log.Printf("✓ ESPN: Retrieved %d games", len(games))
			return games, nil
		}
		err = parseErr
	}
	log.Printf("⚠️  ESPN scoreboard failed: %v (falling back to Google)", err)

	if li.fallback == nil {
		return nil, err
	}

	html, fbErr := li.fallback.FetchLiveGames(ctx)
	if fbErr != nil {
		log.Printf("⚠️  Google fallback failed: %v", fbErr)
		return nil, err
	}

	doc, fbErr := google.ParseHTML(html)
	if fbErr != nil {
		return nil, err
	}

	liveGames, fbErr := google.ParseLiveGames(doc)
	if fbErr != nil {
		return nil, err
	}

	games := make([]*espn.ScoreboardGame, 0, len(liveGames))
	for _, liveGame := range liveGames {
		games = append(games, google.ToScoreboardGame(liveGame))
	}
	log.Printf("→ Using Google fallback data (%d games, no foul detail)", len(games))
	return games, nil
}

// fetchLines pulls current totals. On failure an empty matcher is
// returned and cached lines carry the cycle.
func (li *LiveIngester) fetchLines(ctx context.Context) *reconciliation.Matcher {
	if li.oddsClient == nil {
		return reconciliation.NewMatcher(nil)
	}

	events, err := li.oddsClient.FetchTotals(ctx)
	if err != nil {
		log.Printf("⚠️  Odds fetch failed: %v (using cached lines)", err)
		return reconciliation.NewMatcher(nil)
	}

	lines := odds.ExtractAllTotals(events, li.preferredBook)
	log.Printf("✓ Odds: %d totals lines", len(lines))
	return reconciliation.NewMatcher(lines)
}

// resolveLine matches a fresh line, falling back to the cached line from
// an earlier cycle. Fresh matches refresh the cache so a game keeps its
// line across odds API outages.
func (li *LiveIngester) resolveLine(ctx context.Context, matcher *reconciliation.Matcher, game *espn.ScoreboardGame) (float64, bool) {
	if line, ok := matcher.LineFor(game); ok {
		if li.cache != nil {
			if err := li.cache.SetTotalLine(ctx, game.GameID, line.Line); err != nil {
				log.Printf("Error caching line for game %s: %v", game.GameID, err)
			}
		}
		return line.Line, true
	}

	if li.cache != nil {
		if line, ok, err := li.cache.GetTotalLine(ctx, game.GameID); err == nil && ok {
			return line, true
		}
	}

	return 0, false
}

// enrichLiveGames fetches game summaries for in-progress games with a
// bounded worker pool. Enrichment is best effort; a failed summary just
// means bonus status falls back to the even-split estimate.
func (li *LiveIngester) enrichLiveGames(ctx context.Context, updates []*GameUpdate) {
	sem := make(chan struct{}, summaryWorkers)
	var wg sync.WaitGroup

	for _, update := range updates {
		if update.Game.Status != string(pace.StatusInProgress) {
			continue
		}
		// Synthetic fallback IDs have no summary endpoint
		if update.Game.Home.ESPNID == "" {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(u *GameUpdate) {
			defer wg.Done()
			defer func() { <-sem }()

			raw, err := li.espnClient.FetchGameSummary(ctx, u.Game.GameID)
			if err != nil {
				log.Printf("⚠️  Summary fetch failed for game %s: %v", u.Game.GameID, err)
				return
			}

			detail, err := espn.ParseGameDetail(raw, u.Game.GameID, u.Game.Home.ESPNID, u.Game.Away.ESPNID)
			if err != nil {
				log.Printf("⚠️  Summary parse failed for game %s: %v", u.Game.GameID, err)
				return
			}
			u.Detail = detail
		}(update)
	}

	wg.Wait()
}

// buildInput assembles the evaluation input from scoreboard, odds and
// enrichment data
func (li *LiveIngester) buildInput(update *GameUpdate) pace.GameInput {
	game := update.Game

	input := pace.GameInput{
		GameID:           game.GameID,
		Status:           pace.GameStatus(game.Status),
		Period:           game.Period,
		RawClock:         game.Clock,
		HomeScore:        game.Home.Score,
		AwayScore:        game.Away.Score,
		HomeTeamID:       game.Home.ESPNID,
		AwayTeamID:       game.Away.ESPNID,
		OULine:           update.OULine,
		HasLine:          update.HasLine,
		SecondHalfFactor: li.secondHalfFactor,
	}

	if update.Detail != nil {
		input.HomeFouls = update.Detail.HomeFouls
		input.AwayFouls = update.Detail.AwayFouls
		input.FoulEvents = make([]pace.FoulEvent, 0, len(update.Detail.Plays))
		for _, play := range update.Detail.Plays {
			input.FoulEvents = append(input.FoulEvents, pace.FoulEvent{
				Period:   play.Period,
				TeamID:   play.TeamID,
				PlayType: play.PlayType,
			})
		}
	}

	if li.refdata != nil {
		input.TeamPairModifier = li.refdata.PairModifier(game.Home.DisplayName, game.Away.DisplayName)
	}

	return input
}
