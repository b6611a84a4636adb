package stats

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Villegascvrr/tricketv0-sub002/internal/domain"
	"github.com/Villegascvrr/tricketv0-sub002/internal/metrics"
)

// ErrEmptyEventID is returned when no event id is given
var ErrEmptyEventID = errors.New("event id is required")

const (
	reasonStoreUnavailable = "ticket store unavailable"
	reasonCancelled        = "request cancelled"
	reasonCapacities       = "capacity lookups unavailable"
)

// TicketSource is the read side of the ticket store used by the engine
type TicketSource interface {
	ListConfirmedTickets(ctx context.Context, eventID string) ([]domain.TicketRecord, error)
	ListProviderCapacities(ctx context.Context, eventID string) ([]domain.ProviderCapacity, error)
	ListZoneCapacities(ctx context.Context, eventID string) ([]domain.ZoneCapacity, error)
}

// Snapshotter computes snapshots for an event
type Snapshotter interface {
	Snapshot(ctx context.Context, eventID string) (*Snapshot, error)
}

// Engine turns the tickets of an event into a Snapshot
type Engine struct {
	source  TicketSource
	cfg     Config
	fixture Fixture
	now     func() time.Time
	log     *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithFixture replaces the demo dataset
func WithFixture(f Fixture) Option {
	return func(e *Engine) {
		e.fixture = f
	}
}

// NewEngine creates a new statistics engine
func NewEngine(source TicketSource, cfg Config, log *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		source:  source,
		cfg:     cfg,
		fixture: DemoFixture,
		now:     time.Now,
		log:     log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// IsDemoEvent reports whether an event id routes to the fixture dataset
func (e *Engine) IsDemoEvent(eventID string) bool {
	return e.cfg.DemoPrefix != "" && strings.HasPrefix(eventID, e.cfg.DemoPrefix)
}

// Snapshot computes the statistics of an event. Read failures never surface as errors:
// the snapshot degrades to fixture figures and its provenance flags say so.
func (e *Engine) Snapshot(ctx context.Context, eventID string) (*Snapshot, error) {
	if strings.TrimSpace(eventID) == "" {
		return nil, ErrEmptyEventID
	}

	start := time.Now()
	now := e.now()

	var snap *Snapshot
	if e.IsDemoEvent(eventID) {
		snap = FixtureSnapshot(eventID, e.fixture, now, e.cfg, nil)
	} else {
		snap = e.liveSnapshot(ctx, eventID, now)
	}

	if ctx.Err() != nil {
		e.log.Debug("Statistics snapshot cancelled",
			zap.String("event_id", eventID),
			zap.Error(ctx.Err()))
		return snap, nil
	}

	metrics.RecordSnapshot(string(snap.Source), time.Since(start))
	e.log.Debug("Statistics snapshot computed",
		zap.String("event_id", eventID),
		zap.String("source", string(snap.Source)),
		zap.Int("total_sold", snap.TotalSold),
		zap.Duration("duration", time.Since(start)))

	return snap, nil
}

type liveData struct {
	records    []domain.TicketRecord
	providers  []domain.ProviderCapacity
	zones      []domain.ZoneCapacity
	capsFailed bool
}

func (e *Engine) liveSnapshot(ctx context.Context, eventID string, now time.Time) *Snapshot {
	data, err := e.fetch(ctx, eventID)
	if err != nil {
		reason := reasonStoreUnavailable
		if ctx.Err() != nil {
			reason = reasonCancelled
			e.log.Debug("Ticket read cancelled",
				zap.String("event_id", eventID),
				zap.Error(err))
		} else {
			e.log.Error("Failed to read tickets, using fixture data",
				zap.String("event_id", eventID),
				zap.Error(err))
		}
		snap := FixtureSnapshot(eventID, e.fixture, now, e.cfg, nil)
		snap.Source = SourceFallback
		snap.FallbackReason = reason
		return snap
	}

	tickets := make([]*domain.Ticket, 0, len(data.records))
	rejected := 0
	for _, rec := range data.records {
		t, err := domain.ParseTicket(rec)
		if err != nil {
			rejected++
			e.log.Warn("Skipping invalid ticket record",
				zap.String("event_id", eventID),
				zap.Error(err))
			continue
		}
		tickets = append(tickets, t)
	}
	metrics.RecordRejected("stats", rejected)

	if len(tickets) == 0 {
		var snap *Snapshot
		if e.cfg.EmptyEventFixture {
			snap = FixtureSnapshot(eventID, e.fixture, now, e.cfg, nil)
			snap.Source = SourceEmpty
			snap.IsDemo = false
		} else {
			snap = emptySnapshot(eventID, now, e.cfg)
		}
		snap.RejectedRecords = rejected
		e.log.Info("Event has no confirmed tickets yet", zap.String("event_id", eventID))
		return snap
	}

	snap := Build(eventID, tickets, NewCapacities(data.providers, data.zones), now, e.cfg)
	snap.RejectedRecords = rejected
	if data.capsFailed {
		snap.FallbackReason = reasonCapacities
	}
	return snap
}

// fetch reads tickets and capacity lookups concurrently. Only the ticket read is fatal;
// a failed capacity lookup leaves occupancy unknown.
func (e *Engine) fetch(ctx context.Context, eventID string) (*liveData, error) {
	data := &liveData{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := e.source.ListConfirmedTickets(gctx, eventID)
		if err != nil {
			if ctx.Err() == nil {
				metrics.RecordLiveFetchFailure("tickets")
			}
			return fmt.Errorf("failed to list confirmed tickets: %w", err)
		}
		data.records = records
		return nil
	})

	var providerErr, zoneErr error
	g.Go(func() error {
		data.providers, providerErr = e.source.ListProviderCapacities(gctx, eventID)
		return nil
	})
	g.Go(func() error {
		data.zones, zoneErr = e.source.ListZoneCapacities(gctx, eventID)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if providerErr != nil {
		metrics.RecordLiveFetchFailure("provider_capacities")
		e.log.Warn("Failed to read provider capacities", zap.String("event_id", eventID), zap.Error(providerErr))
		data.providers = nil
		data.capsFailed = true
	}
	if zoneErr != nil {
		metrics.RecordLiveFetchFailure("zone_capacities")
		e.log.Warn("Failed to read zone capacities", zap.String("event_id", eventID), zap.Error(zoneErr))
		data.zones = nil
		data.capsFailed = true
	}

	return data, nil
}
