package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Villegascvrr/tricketv0-sub002/internal/stats"
)

// StatsService serves statistics snapshots
type StatsService struct {
	engine  stats.Snapshotter
	tracker *stats.Tracker
	log     *zap.Logger
}

// NewStatsService creates a new statistics service
func NewStatsService(engine stats.Snapshotter, log *zap.Logger) *StatsService {
	return &StatsService{
		engine:  engine,
		tracker: stats.NewTracker(engine),
		log:     log,
	}
}

// GetStatistics computes the snapshot of an event. Requests carrying a session id are
// tracked so that a newer request from the same dashboard supersedes older ones.
func (s *StatsService) GetStatistics(ctx context.Context, eventID, sessionID string) (*stats.Snapshot, error) {
	if eventID == "" {
		return nil, fmt.Errorf("%w: %w", ErrValidation, stats.ErrEmptyEventID)
	}

	var (
		snap *stats.Snapshot
		err  error
	)
	if sessionID != "" {
		snap, err = s.tracker.Load(ctx, sessionID, eventID)
	} else {
		snap, err = s.engine.Snapshot(ctx, eventID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}

	if !snap.HasRealData {
		s.log.Info("Serving statistics without real data",
			zap.String("event_id", eventID),
			zap.String("source", string(snap.Source)),
			zap.String("fallback_reason", snap.FallbackReason))
	}

	return snap, nil
}
