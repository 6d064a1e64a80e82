// Package worker holds background loops that run for the lifetime of
// the process.
package worker

import (
	"context"
	"log/slog"
	"time"

	"kidcheck/internal/usecase/commands"
)

const sweepTimeout = 30 * time.Second

// ExpirySweeper periodically flips stale pending check-in requests to
// expired. A failed pass is logged and retried on the next tick; the
// loop itself never dies.
type ExpirySweeper struct {
	checkInCommands commands.CheckInCommands
	interval        time.Duration
	stop            chan struct{}
	done            chan struct{}
}

func NewExpirySweeper(checkInCommands commands.CheckInCommands, interval time.Duration) *ExpirySweeper {
	return &ExpirySweeper{
		checkInCommands: checkInCommands,
		interval:        interval,
		stop:            make(chan struct{}),
		done:            make(chan struct{}),
	}
}

func (s *ExpirySweeper) Start() {
	go s.run()
}

func (s *ExpirySweeper) Stop() {
	close(s.stop)
	<-s.done
}

func (s *ExpirySweeper) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *ExpirySweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	expired, err := s.checkInCommands.ExpireStale(ctx)
	if err != nil {
		slog.Error("expiry sweep failed", "error", err)
		return
	}
	if expired > 0 {
		slog.Info("expired stale check-in requests", "count", expired)
	}
}
