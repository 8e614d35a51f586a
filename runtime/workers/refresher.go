package workers

import (
	"context"
	"log/slog"
	"time"
)

// DefaultRefreshInterval is how long a subscription may run before it is torn
// down and reopened under a newly issued credential.
const DefaultRefreshInterval = 3 * time.Minute

// Refresher periodically forces a reconnection of the live subscription. The
// timer restarts whenever the session switches language by hand, so a manual
// reconnect pushes the forced one back by a full interval.
type Refresher struct {
	log      *slog.Logger
	interval time.Duration
	reset    chan struct{}
	reopen   func(ctx context.Context) error
}

func NewRefresher(log *slog.Logger, interval time.Duration, reopen func(ctx context.Context) error) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{
		log:      log,
		interval: interval,
		reset:    make(chan struct{}, 1),
		reopen:   reopen,
	}
}

// Reset restarts the countdown. Never blocks; a pending reset coalesces.
func (w *Refresher) Reset() {
	select {
	case w.reset <- struct{}{}:
	default:
	}
}

// Run ticks until the context ends. A failed reopen is logged and retried on
// the next tick rather than crashing the worker.
func (w *Refresher) Run(ctx context.Context) error {
	timer := time.NewTimer(w.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.reset:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.interval)
		case <-timer.C:
			if err := w.reopen(ctx); err != nil {
				w.log.Warn("Scheduled reconnection failed", "error", err)
			}
			timer.Reset(w.interval)
		}
	}
}
