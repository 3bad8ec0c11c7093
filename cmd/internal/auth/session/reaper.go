package session

import (
	"context"
	"log/slog"
	"time"
)

// ReaperMetrics is the slice of the metrics collector the reaper records to.
type ReaperMetrics interface {
	RecordSessionsPurged(count int64)
	RecordPurgeLatency(d time.Duration)
}

type nopReaperMetrics struct{}

func (nopReaperMetrics) RecordSessionsPurged(int64)       {}
func (nopReaperMetrics) RecordPurgeLatency(time.Duration) {}

// Reaper periodically purges expired session rows.
//
// It is storage hygiene, not a correctness mechanism: the store's read-time
// expiry check is what rejects stale tokens. A failed purge is logged and
// retried on the next tick.
type Reaper struct {
	store    Store
	log      *slog.Logger
	interval time.Duration
	timeout  time.Duration
	metrics  ReaperMetrics
}

// NewReaper constructs a Reaper over the shared session store.
// A nil metrics collector is replaced with a no-op.
func NewReaper(cfg Config, log *slog.Logger, store Store, metrics ReaperMetrics) *Reaper {
	if log == nil {
		log = slog.Default()
	}
	if metrics == nil {
		metrics = nopReaperMetrics{}
	}
	interval := cfg.ReapInterval
	if interval <= 0 {
		interval = time.Hour
	}
	return &Reaper{
		store:    store,
		log:      log,
		interval: interval,
		timeout:  cfg.StoreTimeout,
		metrics:  metrics,
	}
}

// Run purges once immediately, then on every tick until ctx is cancelled.
// It blocks; callers start it in its own goroutine and cancel the context
// during graceful shutdown.
func (r *Reaper) Run(ctx context.Context) {
	r.log.Info("session.reaper.start", "interval", r.interval.String())

	r.purge(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.log.Info("session.reaper.stop")
			return
		case <-ticker.C:
			r.purge(ctx)
		}
	}
}

// RunOnce performs a single purge pass. Exposed for tests and ad-hoc use.
func (r *Reaper) RunOnce(ctx context.Context) (int64, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return r.store.PurgeExpired(ctx, time.Now().UTC())
}

func (r *Reaper) purge(ctx context.Context) {
	start := time.Now()
	n, err := r.RunOnce(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		r.log.Error("session.reaper.purge.fail", "err", err)
		return
	}

	r.metrics.RecordSessionsPurged(n)
	r.metrics.RecordPurgeLatency(time.Since(start))
	r.log.Info("session.reaper.purge", "removed", n)
}
