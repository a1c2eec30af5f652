package cleanup

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePruner struct {
	mu      sync.Mutex
	cutoffs []time.Time
	err     error
}

func (f *fakePruner) DeleteLoadsBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cutoffs = append(f.cutoffs, cutoff)
	return 3, f.err
}

func (f *fakePruner) calls() []time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Time(nil), f.cutoffs...)
}

func TestCleaner_RunsImmediatelyWithCutoff(t *testing.T) {
	pruner := &fakePruner{}
	c := NewCleaner(pruner, time.Hour, 48*time.Hour)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	ctx, cancel := context.WithCancel(context.Background())
	done := c.Start(ctx)

	require.Eventually(t, func() bool { return len(pruner.calls()) == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, fixed.Add(-48*time.Hour), pruner.calls()[0])
}

func TestCleaner_TicksAndSurvivesErrors(t *testing.T) {
	pruner := &fakePruner{err: errors.New("db down")}
	c := NewCleaner(pruner, 10*time.Millisecond, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := c.Start(ctx)

	require.Eventually(t, func() bool { return len(pruner.calls()) >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleaner did not stop")
	}
}

func TestNewCleaner_Defaults(t *testing.T) {
	c := NewCleaner(&fakePruner{}, 0, 0)
	assert.Equal(t, time.Hour, c.interval)
	assert.Equal(t, 7*24*time.Hour, c.retention)
}
