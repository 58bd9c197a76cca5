// Package worker runs background synchronization on a fixed interval.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	syncpkg "github.com/ortiq01/financial-dashboard/internal/sync"
)

// Trigger starts a sync run; duplicate triggers while a run is in
// flight return the current status without starting another.
type Trigger interface {
	Trigger(ctx context.Context, creds syncpkg.Credentials, accountIDs []string) (syncpkg.Status, error)
}

// SchedulerConfig controls the periodic sync loop.
type SchedulerConfig struct {
	Interval   time.Duration
	RunOnStart bool
}

// DefaultSchedulerConfig returns sensible defaults
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Interval:   6 * time.Hour,
		RunOnStart: false,
	}
}

// Scheduler triggers a sync run on every tick.
type Scheduler struct {
	trigger  Trigger
	creds    syncpkg.Credentials
	accounts []string
	config   SchedulerConfig

	// Lifecycle management
	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewScheduler creates a new scheduler
func NewScheduler(trigger Trigger, creds syncpkg.Credentials, accounts []string, config SchedulerConfig) *Scheduler {
	if config.Interval <= 0 {
		config.Interval = DefaultSchedulerConfig().Interval
	}
	return &Scheduler{
		trigger:  trigger,
		creds:    creds,
		accounts: accounts,
		config:   config,
	}
}

// Start begins the periodic loop. Returns an error if already running.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("sync scheduler is already running")
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.mu.Unlock()

	go s.runLoop(ctx)

	slog.InfoContext(ctx, "Sync scheduler started",
		"interval", s.config.Interval,
		"run_on_start", s.config.RunOnStart)

	return nil
}

// Stop gracefully stops the scheduler and waits for completion.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	close(s.stopCh)

	select {
	case <-s.doneCh:
		slog.InfoContext(ctx, "Sync scheduler stopped gracefully")
	case <-ctx.Done():
		slog.WarnContext(ctx, "Sync scheduler stop timed out")
		return ctx.Err()
	}

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) runLoop(ctx context.Context) {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	if s.config.RunOnStart {
		s.runOnce(ctx)
	}

	for {
		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	status, err := s.trigger.Trigger(ctx, s.creds, s.accounts)
	if err != nil {
		slog.ErrorContext(ctx, "Scheduled sync failed to start", "error", err)
		return
	}
	if status.Running {
		slog.InfoContext(ctx, "Scheduled sync skipped, a run is already in flight")
		return
	}
	if res := status.LastResult; res != nil {
		if res.OK {
			slog.InfoContext(ctx, "Scheduled sync completed",
				"added", res.Added,
				"total", res.Total)
		} else {
			slog.ErrorContext(ctx, "Scheduled sync failed", "error", res.Error)
		}
	}
}
