package stats

import (
	"context"
	"errors"
	"sync"

	"github.com/Villegascvrr/tricketv0-sub002/internal/metrics"
)

// ErrSuperseded is returned when a newer request of the same session replaced this one
var ErrSuperseded = errors.New("snapshot request superseded by a newer request")

type session struct {
	generation uint64
	cancel     context.CancelFunc
}

// Tracker serialises snapshot requests per dashboard session. A new request cancels the
// in-flight one of the same session, and results of older generations are discarded.
type Tracker struct {
	engine Snapshotter

	mu       sync.Mutex
	sessions map[string]*session
}

// NewTracker creates a tracker on top of a snapshotter
func NewTracker(engine Snapshotter) *Tracker {
	return &Tracker{
		engine:   engine,
		sessions: make(map[string]*session),
	}
}

// Load computes a snapshot for the session's latest event id, or returns ErrSuperseded
func (t *Tracker) Load(ctx context.Context, sessionID, eventID string) (*Snapshot, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	t.mu.Lock()
	s, ok := t.sessions[sessionID]
	if !ok {
		s = &session{}
		t.sessions[sessionID] = s
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	generation := s.generation
	s.cancel = cancel
	t.mu.Unlock()

	snap, err := t.engine.Snapshot(ctx, eventID)

	t.mu.Lock()
	current := s.generation == generation
	if current {
		delete(t.sessions, sessionID)
	}
	t.mu.Unlock()

	if !current {
		metrics.RecordSuperseded()
		return nil, ErrSuperseded
	}
	return snap, err
}

// Sessions returns the number of sessions with a request in flight
func (t *Tracker) Sessions() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}
