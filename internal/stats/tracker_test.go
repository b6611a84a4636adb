package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Villegascvrr/tricketv0-sub002/internal/metrics"
)

// blockingSnapshotter blocks on the "slow" event until its context is cancelled
type blockingSnapshotter struct {
	started chan string
}

func (b *blockingSnapshotter) Snapshot(ctx context.Context, eventID string) (*Snapshot, error) {
	b.started <- eventID
	if eventID == "slow" {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return &Snapshot{EventID: eventID}, nil
}

type loadResult struct {
	snap *Snapshot
	err  error
}

func TestTracker_NewerRequestSupersedesOlder(t *testing.T) {
	engine := &blockingSnapshotter{started: make(chan string, 2)}
	tracker := NewTracker(engine)

	results := make(chan loadResult, 1)
	go func() {
		snap, err := tracker.Load(context.Background(), "session-1", "slow")
		results <- loadResult{snap, err}
	}()
	require.Equal(t, "slow", <-engine.started)

	snap, err := tracker.Load(context.Background(), "session-1", "fast")
	require.NoError(t, err)
	assert.Equal(t, "fast", snap.EventID)

	select {
	case res := <-results:
		assert.Nil(t, res.snap)
		assert.True(t, errors.Is(res.err, ErrSuperseded))
	case <-time.After(2 * time.Second):
		t.Fatal("superseded request did not return")
	}
	assert.Zero(t, tracker.Sessions())
}

func TestTracker_SessionsAreIndependent(t *testing.T) {
	engine := &blockingSnapshotter{started: make(chan string, 2)}
	tracker := NewTracker(engine)

	ctx, cancel := context.WithCancel(context.Background())
	results := make(chan loadResult, 1)
	go func() {
		snap, err := tracker.Load(ctx, "session-1", "slow")
		results <- loadResult{snap, err}
	}()
	require.Equal(t, "slow", <-engine.started)

	snap, err := tracker.Load(context.Background(), "session-2", "fast")
	require.NoError(t, err)
	assert.Equal(t, "fast", snap.EventID)
	assert.Equal(t, 1, tracker.Sessions())

	cancel()
	res := <-results
	assert.ErrorIs(t, res.err, context.Canceled)
	assert.False(t, errors.Is(res.err, ErrSuperseded))
	assert.Zero(t, tracker.Sessions())
}

func TestTracker_SequentialRequests(t *testing.T) {
	engine := &blockingSnapshotter{started: make(chan string, 2)}
	tracker := NewTracker(engine)

	first, err := tracker.Load(context.Background(), "session-1", "fest-2027")
	require.NoError(t, err)
	second, err := tracker.Load(context.Background(), "session-1", "fest-2028")
	require.NoError(t, err)

	assert.Equal(t, "fest-2027", first.EventID)
	assert.Equal(t, "fest-2028", second.EventID)
	assert.Zero(t, tracker.Sessions())
}

func TestTracker_SupersededEngineReadIsNotAFailure(t *testing.T) {
	source := &blockingSource{started: make(chan string, 2)}
	tracker := NewTracker(newTestEngine(source, DefaultConfig()))

	failuresBefore := testutil.ToFloat64(metrics.LiveFetchFailuresTotal.WithLabelValues("tickets"))
	fallbacksBefore := testutil.ToFloat64(metrics.SnapshotsTotal.WithLabelValues(string(SourceFallback)))
	supersededBefore := testutil.ToFloat64(metrics.SupersededRequestsTotal)

	results := make(chan loadResult, 1)
	go func() {
		snap, err := tracker.Load(context.Background(), "session-1", "fest-2027")
		results <- loadResult{snap, err}
	}()
	require.Equal(t, "fest-2027", <-source.started)

	snap, err := tracker.Load(context.Background(), "session-1", "fest-2028")
	require.NoError(t, err)
	assert.Equal(t, "fest-2028", snap.EventID)
	assert.Equal(t, SourceLive, snap.Source)

	select {
	case res := <-results:
		assert.Nil(t, res.snap)
		assert.ErrorIs(t, res.err, ErrSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("superseded request did not return")
	}

	assert.Equal(t, failuresBefore, testutil.ToFloat64(metrics.LiveFetchFailuresTotal.WithLabelValues("tickets")))
	assert.Equal(t, fallbacksBefore, testutil.ToFloat64(metrics.SnapshotsTotal.WithLabelValues(string(SourceFallback))))
	assert.Equal(t, supersededBefore+1, testutil.ToFloat64(metrics.SupersededRequestsTotal))
	assert.Zero(t, tracker.Sessions())
}
