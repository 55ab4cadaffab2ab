package emitter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/ingest"
	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/ingest/espn"
	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/pace"
	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/store"
)

type fakeTriggerStore struct {
	inserted  []*store.TriggerEvent
	latest    *store.TriggerEvent
	latestErr error
	insertErr error
}

func (f *fakeTriggerStore) Insert(ctx context.Context, event *store.TriggerEvent) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, event)
	return nil
}

func (f *fakeTriggerStore) LatestForGame(ctx context.Context, gameID, triggerType string) (*store.TriggerEvent, error) {
	return f.latest, f.latestErr
}

type fakeSnapshotStore struct {
	inserted  []*store.GameSnapshot
	insertErr error
}

func (f *fakeSnapshotStore) Insert(ctx context.Context, snap *store.GameSnapshot) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, snap)
	return nil
}

type fakeNotifier struct {
	notified []*store.TriggerEvent
}

func (f *fakeNotifier) NotifyTrigger(ctx context.Context, event *store.TriggerEvent) error {
	f.notified = append(f.notified, event)
	return nil
}

type fakeMarker struct {
	allow bool
}

func (f *fakeMarker) MarkAlerted(ctx context.Context, gameID, triggerType string, ttl time.Duration) (bool, error) {
	return f.allow, nil
}

func liveUpdate(trigger pace.TriggerType, minutesRemaining float64) *ingest.GameUpdate {
	return &ingest.GameUpdate{
		Game: &espn.ScoreboardGame{
			GameID: "401712345",
			Status: "in_progress",
			Clock:  "12:00",
			Home:   espn.TeamSide{DisplayName: "Kentucky Wildcats", Score: 18},
			Away:   espn.TeamSide{DisplayName: "Tennessee Volunteers", Score: 14},
		},
		HasLine: true,
		OULine:  150.0,
		Evaluation: pace.Evaluation{
			GameID:           "401712345",
			Status:           pace.StatusInProgress,
			Period:           1,
			HomeScore:        18,
			AwayScore:        14,
			TotalPoints:      32,
			OULine:           150.0,
			HasLine:          true,
			MinutesRemaining: minutesRemaining,
			Trigger:          trigger,
			Strength:         pace.StrengthModerate,
		},
	}
}

func TestEmitWritesSnapshotUnconditionally(t *testing.T) {
	triggers := &fakeTriggerStore{}
	snapshots := &fakeSnapshotStore{}
	em := NewEmitter(triggers, snapshots, nil, nil, nil, nil)

	em.Emit(context.Background(), []*ingest.GameUpdate{liveUpdate(pace.TriggerNone, 32.0)})

	require.Len(t, snapshots.inserted, 1)
	assert.Empty(t, triggers.inserted)

	snap := snapshots.inserted[0]
	assert.Equal(t, "401712345", snap.GameID)
	assert.Equal(t, 32, snap.TotalPoints)
	assert.True(t, snap.OULine.Valid)
	assert.False(t, snap.TriggerType.Valid)
}

func TestEmitSkipsNonLiveGames(t *testing.T) {
	snapshots := &fakeSnapshotStore{}
	em := NewEmitter(&fakeTriggerStore{}, snapshots, nil, nil, nil, nil)

	update := liveUpdate(pace.TriggerNone, 32.0)
	update.Evaluation.Status = pace.StatusScheduled

	em.Emit(context.Background(), []*ingest.GameUpdate{update})
	assert.Empty(t, snapshots.inserted)
}

func TestEmitFiresFreshTrigger(t *testing.T) {
	triggers := &fakeTriggerStore{}
	notifier := &fakeNotifier{}
	em := NewEmitter(triggers, &fakeSnapshotStore{}, notifier, nil, nil, nil)

	em.Emit(context.Background(), []*ingest.GameUpdate{liveUpdate(pace.TriggerUnder, 32.0)})

	require.Len(t, triggers.inserted, 1)
	event := triggers.inserted[0]
	assert.Equal(t, string(pace.TriggerUnder), event.TriggerType)
	assert.Equal(t, "MODERATE", event.TriggerStrength.String)
	assert.NotEmpty(t, event.EventUID)

	require.Len(t, notifier.notified, 1)
}

func TestEmitSuppressesRepeatInsideWindow(t *testing.T) {
	triggers := &fakeTriggerStore{
		latest: &store.TriggerEvent{
			GameID:           "401712345",
			TriggerType:      string(pace.TriggerUnder),
			MinutesRemaining: 32.5,
			TriggeredAt:      time.Now().UTC().Add(-2 * time.Minute),
		},
	}
	notifier := &fakeNotifier{}
	em := NewEmitter(triggers, &fakeSnapshotStore{}, notifier, nil, nil, nil)

	em.Emit(context.Background(), []*ingest.GameUpdate{liveUpdate(pace.TriggerUnder, 32.0)})

	assert.Empty(t, triggers.inserted)
	assert.Empty(t, notifier.notified)
}

func TestEmitReFiresAfterWindow(t *testing.T) {
	triggers := &fakeTriggerStore{
		latest: &store.TriggerEvent{
			GameID:           "401712345",
			TriggerType:      string(pace.TriggerUnder),
			MinutesRemaining: 32.5,
			TriggeredAt:      time.Now().UTC().Add(-6 * time.Minute),
		},
	}
	em := NewEmitter(triggers, &fakeSnapshotStore{}, nil, nil, nil, nil)

	em.Emit(context.Background(), []*ingest.GameUpdate{liveUpdate(pace.TriggerUnder, 32.0)})
	assert.Len(t, triggers.inserted, 1)
}

func TestEmitReFiresWhenClockMoved(t *testing.T) {
	triggers := &fakeTriggerStore{
		latest: &store.TriggerEvent{
			GameID:           "401712345",
			TriggerType:      string(pace.TriggerUnder),
			MinutesRemaining: 35.0,
			TriggeredAt:      time.Now().UTC().Add(-1 * time.Minute),
		},
	}
	em := NewEmitter(triggers, &fakeSnapshotStore{}, nil, nil, nil, nil)

	// Inside the wall clock window but the game moved 3 minutes
	em.Emit(context.Background(), []*ingest.GameUpdate{liveUpdate(pace.TriggerUnder, 32.0)})
	assert.Len(t, triggers.inserted, 1)
}

func TestEmitFallsBackToMarkerOnDBError(t *testing.T) {
	triggers := &fakeTriggerStore{latestErr: errors.New("db down")}
	marker := &fakeMarker{allow: true}
	em := NewEmitter(triggers, &fakeSnapshotStore{}, nil, nil, nil, marker)

	em.Emit(context.Background(), []*ingest.GameUpdate{liveUpdate(pace.TriggerUnder, 32.0)})
	assert.Len(t, triggers.inserted, 1)

	// Marker says already alerted
	triggers2 := &fakeTriggerStore{latestErr: errors.New("db down")}
	em2 := NewEmitter(triggers2, &fakeSnapshotStore{}, nil, nil, nil, &fakeMarker{allow: false})
	em2.Emit(context.Background(), []*ingest.GameUpdate{liveUpdate(pace.TriggerUnder, 32.0)})
	assert.Empty(t, triggers2.inserted)
}

func TestEmitSurvivesSnapshotFailure(t *testing.T) {
	triggers := &fakeTriggerStore{}
	snapshots := &fakeSnapshotStore{insertErr: errors.New("disk full")}
	em := NewEmitter(triggers, snapshots, nil, nil, nil, nil)

	// Must not panic and the trigger still fires
	em.Emit(context.Background(), []*ingest.GameUpdate{liveUpdate(pace.TriggerUnder, 32.0)})
	assert.Len(t, triggers.inserted, 1)
}
