package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/store"
	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/store/repository"
)

const (
	defaultRecentHours = 24
	maxLimit           = 500
	defaultLimit       = 100
)

// ReportService handles historical read paths: fired triggers and the
// per-poll snapshot record
type ReportService struct {
	triggerRepo  *repository.TriggerRepository
	snapshotRepo *repository.SnapshotRepository
}

// NewReportService creates a new report service
func NewReportService(db *store.Database) *ReportService {
	return &ReportService{
		triggerRepo:  repository.NewTriggerRepository(db),
		snapshotRepo: repository.NewSnapshotRepository(db),
	}
}

// RecentTriggers returns triggers fired within the lookback window
func (s *ReportService) RecentTriggers(ctx context.Context, hours, limit int) ([]*store.TriggerEvent, error) {
	if hours <= 0 {
		hours = defaultRecentHours
	}
	limit = clampLimit(limit)

	since := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)
	events, err := s.triggerRepo.GetRecent(ctx, since, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching recent triggers: %w", err)
	}
	return events, nil
}

// TriggersForGame returns every trigger fired for one game
func (s *ReportService) TriggersForGame(ctx context.Context, gameID string) ([]*store.TriggerEvent, error) {
	events, err := s.triggerRepo.GetByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching triggers for game %s: %w", gameID, err)
	}
	return events, nil
}

// SnapshotsForGame returns a game's poll history, newest first
func (s *ReportService) SnapshotsForGame(ctx context.Context, gameID string, limit int) ([]*store.GameSnapshot, error) {
	limit = clampLimit(limit)

	snaps, err := s.snapshotRepo.GetByGame(ctx, gameID, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching snapshots for game %s: %w", gameID, err)
	}
	return snaps, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
