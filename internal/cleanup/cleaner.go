package cleanup

import (
	"context"
	"log/slog"
	"time"
)

// Pruner deletes history entries older than a cutoff
type Pruner interface {
	DeleteLoadsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Cleaner periodically removes load history past its retention
type Cleaner struct {
	pruner    Pruner
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
}

// NewCleaner creates a new cleanup worker
func NewCleaner(pruner Pruner, interval, retention time.Duration) *Cleaner {
	if interval <= 0 {
		interval = time.Hour
	}
	if retention <= 0 {
		retention = 7 * 24 * time.Hour
	}

	return &Cleaner{
		pruner:    pruner,
		interval:  interval,
		retention: retention,
		now:       time.Now,
	}
}

// Start begins the cleanup worker in a goroutine. The returned channel is
// closed once the worker has stopped.
func (c *Cleaner) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.run(ctx)
	}()
	return done
}

func (c *Cleaner) run(ctx context.Context) {
	slog.Info("cleanup worker started", "interval", c.interval, "retention", c.retention)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	// Run immediately on start
	c.cleanup(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("cleanup worker stopped")
			return
		case <-ticker.C:
			c.cleanup(ctx)
		}
	}
}

func (c *Cleaner) cleanup(ctx context.Context) {
	cutoff := c.now().Add(-c.retention)
	slog.Debug("running cleanup cycle", "cutoff", cutoff)

	deleted, err := c.pruner.DeleteLoadsBefore(ctx, cutoff)
	if err != nil {
		slog.Error("failed to prune load history", "error", err)
		return
	}

	if deleted == 0 {
		slog.Debug("no expired load records found")
		return
	}

	slog.Info("pruned load history", "deleted", deleted, "cutoff", cutoff)
}
