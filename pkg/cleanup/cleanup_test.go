package cleanup

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStaleLogStore struct {
	mu      sync.Mutex
	cutoffs []time.Time
}

func (f *fakeStaleLogStore) RejectStale(cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cutoffs = append(f.cutoffs, cutoff)
	return 1, nil
}

func (f *fakeStaleLogStore) calls() []time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Time(nil), f.cutoffs...)
}

func TestSweeperSweepsImmediatelyAndStops(t *testing.T) {
	store := &fakeStaleLogStore{}
	sweeper := NewSweeper(store, time.Hour, 30*time.Minute)

	done := make(chan struct{})
	go func() {
		sweeper.Start()
		close(done)
	}()

	// The first sweep happens before the first tick.
	assert.Eventually(t, func() bool {
		return len(store.calls()) == 1
	}, time.Second, 10*time.Millisecond)

	sweeper.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestSweeperCutoff(t *testing.T) {
	store := &fakeStaleLogStore{}
	sweeper := NewSweeper(store, time.Hour, 30*time.Minute)

	before := time.Now()
	sweeper.sweep()

	calls := store.calls()
	require.Len(t, calls, 1)
	// Cutoff is maxPendingAge in the past.
	expected := before.Add(-30 * time.Minute)
	assert.WithinDuration(t, expected, calls[0], time.Second)
}
