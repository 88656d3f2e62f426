package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs a Monitor on a fixed interval. Scheduled rounds share a
// context that Stop cancels.
type Scheduler struct {
	cron     *cron.Cron
	monitor  *Monitor
	log      *slog.Logger
	onResult func([]Result)
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewScheduler creates a Scheduler that checks every interval. onResult,
// if not nil, receives the results of each round.
func NewScheduler(
	m *Monitor,
	interval time.Duration,
	onResult func([]Result),
	log *slog.Logger,
) (*Scheduler, error) {
	if interval < time.Second {
		return nil, fmt.Errorf("monitor interval must be at least 1s (got %s)", interval)
	}

	c := cron.New()
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron:     c,
		monitor:  m,
		log:      log,
		onResult: onResult,
		ctx:      ctx,
		cancel:   cancel,
	}

	if _, err := c.AddFunc("@every "+interval.String(), s.run); err != nil {
		cancel()
		return nil, fmt.Errorf("scheduling status checks: %w", err)
	}
	return s, nil
}

// Start begins running scheduled checks.
func (s *Scheduler) Start() {
	s.log.Info("status monitor started")
	s.cron.Start()
}

// Stop stops the scheduler and cancels any in-flight round. The returned
// context is done once a running check has returned.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("status monitor stopping")
	s.cancel()
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// RunOnce performs one check round immediately.
func (s *Scheduler) RunOnce(ctx context.Context) []Result {
	results := s.monitor.Check(ctx)
	degraded := 0
	for _, r := range results {
		if !r.OK() {
			degraded++
		}
	}
	s.log.Info("status check complete", "sections", len(results), "degraded", degraded)
	if s.onResult != nil {
		s.onResult(results)
	}
	return results
}

func (s *Scheduler) run() {
	s.RunOnce(s.ctx)
}
