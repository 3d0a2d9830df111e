// internal/scheduler/sweeper.go
//
// Server-side replacement for the old browser-driven sweep timers. The
// sweeper runs both maintenance passes on fixed intervals; the same
// operations stay reachable through the admin sweep endpoints so an
// external scheduler can drive them instead.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/projektfabrik/pf-backend/internal/config"
	"github.com/projektfabrik/pf-backend/internal/services"
)

type Sweeper struct {
	projects   *services.ProjectService
	staleAfter time.Duration

	pendingInterval    time.Duration
	expirationInterval time.Duration
	wg                 sync.WaitGroup
}

func NewSweeper(projects *services.ProjectService, cfg config.SweepConfig) *Sweeper {
	return &Sweeper{
		projects:           projects,
		staleAfter:         time.Duration(cfg.PendingStaleAfterHours) * time.Hour,
		pendingInterval:    time.Duration(cfg.PendingIntervalMinutes) * time.Minute,
		expirationInterval: time.Duration(cfg.ExpirationIntervalMinutes) * time.Minute,
	}
}

// Start launches both sweep loops. They stop when the context is cancelled;
// Wait blocks until both have returned.
func (s *Sweeper) Start(ctx context.Context) {
	s.wg.Add(2)
	go s.loop(ctx, "pending", s.pendingInterval, s.RunPendingSweep)
	go s.loop(ctx, "expiration", s.expirationInterval, s.RunExpirationSweep)
}

// Wait blocks until the sweep loops started by Start have stopped. A sweep
// in flight may still publish events, so callers must not shut down the
// dispatcher before this returns.
func (s *Sweeper) Wait() {
	s.wg.Wait()
}

func (s *Sweeper) loop(ctx context.Context, name string, interval time.Duration, run func() (int, error)) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logrus.WithField("sweep", name).Info("Sweep loop stopped")
			return
		case <-ticker.C:
			if _, err := run(); err != nil {
				logrus.WithError(err).WithField("sweep", name).Error("Sweep failed")
			}
		}
	}
}

// RunPendingSweep promotes stale pending requests to in_progress.
func (s *Sweeper) RunPendingSweep() (int, error) {
	promoted, err := s.projects.SweepStalePending(s.staleAfter)
	if err != nil {
		return 0, err
	}
	if promoted > 0 {
		logrus.WithField("promoted", promoted).Info("Promoted stale pending requests")
	}
	return promoted, nil
}

// RunExpirationSweep re-evaluates approved projects past their expiration.
func (s *Sweeper) RunExpirationSweep() (int, error) {
	expired, err := s.projects.SweepExpirations()
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		logrus.WithField("expired", expired).Info("Re-evaluated expired projects")
	}
	return expired, nil
}
