package emitter

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/ingest"
	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/pace"
	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/store"
)

const (
	// DedupWindow suppresses a repeat trigger for the same game and type
	DedupWindow = 5 * time.Minute
	// minutesDeltaThreshold re-arms a trigger when the game state moved
	// enough even inside the dedup window
	minutesDeltaThreshold = 2.0
)

// TriggerStore persists trigger events
type TriggerStore interface {
	Insert(ctx context.Context, event *store.TriggerEvent) error
	LatestForGame(ctx context.Context, gameID, triggerType string) (*store.TriggerEvent, error)
}

// SnapshotStore persists per-poll game snapshots
type SnapshotStore interface {
	Insert(ctx context.Context, snap *store.GameSnapshot) error
}

// Notifier delivers fired triggers to an external channel
type Notifier interface {
	NotifyTrigger(ctx context.Context, event *store.TriggerEvent) error
}

// StreamPublisher pushes events onto Redis streams
type StreamPublisher interface {
	PublishTrigger(ctx context.Context, triggerData interface{}) error
	PublishEvaluation(ctx context.Context, evalData interface{}) error
}

// Broadcaster fans events out to connected websocket clients
type Broadcaster interface {
	Broadcast(messageType string, payload interface{})
}

// AlertMarker is the Redis dedup backstop, consulted when the database
// lookup fails
type AlertMarker interface {
	MarkAlerted(ctx context.Context, gameID, triggerType string, ttl time.Duration) (bool, error)
}

// Emitter turns poll cycle results into durable rows, stream messages and
// alerts. Persistence failures are logged and swallowed so one bad write
// never stops the polling loop.
type Emitter struct {
	triggers  TriggerStore
	snapshots SnapshotStore
	notifier  Notifier
	publisher StreamPublisher
	broadcast Broadcaster
	marker    AlertMarker
	now       func() time.Time
}

// NewEmitter creates an emitter. notifier, publisher, broadcast and
// marker may be nil.
func NewEmitter(triggers TriggerStore, snapshots SnapshotStore, notifier Notifier, publisher StreamPublisher, broadcast Broadcaster, marker AlertMarker) *Emitter {
	return &Emitter{
		triggers:  triggers,
		snapshots: snapshots,
		notifier:  notifier,
		publisher: publisher,
		broadcast: broadcast,
		marker:    marker,
		now:       time.Now,
	}
}

// Emit processes one poll cycle's updates
func (e *Emitter) Emit(ctx context.Context, updates []*ingest.GameUpdate) {
	fired := 0
	for _, update := range updates {
		if update.Evaluation.Status != pace.StatusInProgress {
			continue
		}

		e.writeSnapshot(ctx, update)

		if e.publisher != nil {
			if err := e.publisher.PublishEvaluation(ctx, update.Evaluation); err != nil {
				log.Printf("Error publishing evaluation for game %s: %v", update.Game.GameID, err)
			}
		}
		if e.broadcast != nil {
			e.broadcast.Broadcast("evaluation", update.Evaluation)
		}

		if update.Evaluation.Trigger != pace.TriggerNone {
			if e.emitTrigger(ctx, update) {
				fired++
			}
		}
	}

	if fired > 0 {
		log.Printf("✓ Emitted %d trigger alerts", fired)
	}
}

// writeSnapshot records the poll unconditionally. Every live game gets a
// row whether or not anything fired.
func (e *Emitter) writeSnapshot(ctx context.Context, update *ingest.GameUpdate) {
	ev := update.Evaluation

	snap := &store.GameSnapshot{
		GameID:           ev.GameID,
		HomeTeam:         update.Game.Home.DisplayName,
		AwayTeam:         update.Game.Away.DisplayName,
		Status:           string(ev.Status),
		Period:           ev.Period,
		Clock:            update.Game.Clock,
		MinutesRemaining: ev.MinutesRemaining,
		HomeScore:        ev.HomeScore,
		AwayScore:        ev.AwayScore,
		TotalPoints:      ev.TotalPoints,
		OULine:           store.NullFloat(ev.OULine, ev.HasLine),
		CurrentPPM:       store.NullFloat(ev.CurrentPPM, ev.HasCurrentPPM),
		RequiredPPM:      store.NullFloat(ev.RequiredPPM, ev.HasRequiredPPM),
		ProjectedTotal:   store.NullFloat(ev.ProjectedTotal, ev.HasProjection),
		TriggerType:      store.NullString(string(ev.Trigger)),
		FoulGame:         ev.FoulGame,
		HomeInBonus:      ev.HomeBonus.InBonus,
		AwayInBonus:      ev.AwayBonus.InBonus,
		PolledAt:         e.now().UTC(),
	}

	if err := e.snapshots.Insert(ctx, snap); err != nil {
		log.Printf("Error writing snapshot for game %s: %v", ev.GameID, err)
	}
}

// emitTrigger runs dedup and, when the trigger is fresh, persists and
// fans it out. Returns true when an alert fired.
func (e *Emitter) emitTrigger(ctx context.Context, update *ingest.GameUpdate) bool {
	ev := update.Evaluation

	if !e.shouldFire(ctx, ev) {
		return false
	}

	event := &store.TriggerEvent{
		EventUID:         uuid.New().String(),
		GameID:           ev.GameID,
		HomeTeam:         update.Game.Home.DisplayName,
		AwayTeam:         update.Game.Away.DisplayName,
		TriggerType:      string(ev.Trigger),
		TriggerStrength:  store.NullString(string(ev.Strength)),
		Period:           ev.Period,
		Clock:            update.Game.Clock,
		MinutesRemaining: ev.MinutesRemaining,
		HomeScore:        ev.HomeScore,
		AwayScore:        ev.AwayScore,
		TotalPoints:      ev.TotalPoints,
		OULine:           store.NullFloat(ev.OULine, ev.HasLine),
		CurrentPPM:       store.NullFloat(ev.CurrentPPM, ev.HasCurrentPPM),
		RequiredPPM:      store.NullFloat(ev.RequiredPPM, ev.HasRequiredPPM),
		ProjectedTotal:   store.NullFloat(ev.ProjectedTotal, ev.HasProjection),
		TriggeredAt:      e.now().UTC(),
	}

	if err := e.triggers.Insert(ctx, event); err != nil {
		log.Printf("Error persisting trigger for game %s: %v", ev.GameID, err)
		// Alert anyway; losing the row is better than losing the alert
	}

	if e.publisher != nil {
		if err := e.publisher.PublishTrigger(ctx, event); err != nil {
			log.Printf("Error publishing trigger for game %s: %v", ev.GameID, err)
		}
	}
	if e.broadcast != nil {
		e.broadcast.Broadcast("trigger", event)
	}
	if e.notifier != nil {
		if err := e.notifier.NotifyTrigger(ctx, event); err != nil {
			log.Printf("Error notifying trigger for game %s: %v", ev.GameID, err)
		}
	}

	log.Printf("🚨 %s: %s vs %s (P%d %s, %d pts)", ev.Trigger,
		update.Game.Home.DisplayName, update.Game.Away.DisplayName,
		ev.Period, update.Game.Clock, ev.TotalPoints)

	return true
}

// shouldFire applies the dedup rule: a repeat of the same trigger type is
// suppressed while the previous one is inside the window and the clock
// has not moved much. Either enough wall time or enough game time re-arms.
func (e *Emitter) shouldFire(ctx context.Context, ev pace.Evaluation) bool {
	prev, err := e.triggers.LatestForGame(ctx, ev.GameID, string(ev.Trigger))
	if err != nil {
		log.Printf("Error checking trigger history for game %s: %v", ev.GameID, err)
		return e.markerAllows(ctx, ev)
	}
	if prev == nil {
		return true
	}

	withinWindow := e.now().UTC().Sub(prev.TriggeredAt) < DedupWindow
	clockMoved := math.Abs(prev.MinutesRemaining-ev.MinutesRemaining) >= minutesDeltaThreshold

	return !withinWindow || clockMoved
}

// markerAllows consults the Redis backstop when the database is
// unavailable, so a flapping DB does not spam alerts
func (e *Emitter) markerAllows(ctx context.Context, ev pace.Evaluation) bool {
	if e.marker == nil {
		return false
	}
	ok, err := e.marker.MarkAlerted(ctx, ev.GameID, string(ev.Trigger), DedupWindow)
	if err != nil {
		log.Printf("Error checking dedup backstop for game %s: %v", ev.GameID, err)
		return false
	}
	return ok
}
