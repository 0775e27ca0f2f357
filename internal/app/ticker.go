package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
)

// RefreshTicker periodically refetches every collection so the dashboard
// keeps tracking the append-mostly data source without user action. A stale
// in-flight fetch racing a newer one is not guarded against; whichever
// response lands last wins, which the wholesale-replace store makes safe.
type RefreshTicker struct {
	service  *Service
	clock    clockwork.Clock
	interval time.Duration
}

// NewRefreshTicker creates a ticker. An interval of zero disables it — Run
// returns immediately.
func NewRefreshTicker(service *Service, clock clockwork.Clock, interval time.Duration) *RefreshTicker {
	return &RefreshTicker{service: service, clock: clock, interval: interval}
}

// Run refreshes on every tick until ctx is cancelled. Refresh failures are
// logged and the loop keeps going; a down upstream must not kill the
// background loop.
func (t *RefreshTicker) Run(ctx context.Context) {
	if t.interval <= 0 {
		slog.Info("Background refresh disabled")
		return
	}

	ticker := t.clock.NewTicker(t.interval)
	defer ticker.Stop()

	slog.Info("Background refresh started", "interval", t.interval)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Background refresh stopped")
			return
		case <-ticker.Chan():
			if err := t.service.RefreshAll(ctx); err != nil {
				slog.Warn("Background refresh failed", "error", err)
			}
		}
	}
}
