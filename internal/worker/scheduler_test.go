package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	syncpkg "github.com/ortiq01/financial-dashboard/internal/sync"
)

type countingTrigger struct {
	calls atomic.Int32
}

func (c *countingTrigger) Trigger(_ context.Context, _ syncpkg.Credentials, _ []string) (syncpkg.Status, error) {
	c.calls.Add(1)
	return syncpkg.Status{LastResult: &syncpkg.Outcome{OK: true}}, nil
}

func testCreds() syncpkg.Credentials {
	return syncpkg.Credentials{SecretID: "id", SecretKey: "key"}
}

func TestDefaultSchedulerConfig(t *testing.T) {
	config := DefaultSchedulerConfig()

	if config.Interval != 6*time.Hour {
		t.Errorf("expected Interval 6h, got %v", config.Interval)
	}
	if config.RunOnStart {
		t.Error("expected RunOnStart false")
	}
}

func TestScheduler_IsRunning(t *testing.T) {
	s := NewScheduler(&countingTrigger{}, testCreds(), nil, DefaultSchedulerConfig())

	if s.IsRunning() {
		t.Error("scheduler should not be running initially")
	}
}

func TestScheduler_StartTwice(t *testing.T) {
	config := DefaultSchedulerConfig()
	s := NewScheduler(&countingTrigger{}, testCreds(), nil, config)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("first start: %v", err)
	}
	defer s.Stop(context.Background())

	if err := s.Start(ctx); err == nil {
		t.Error("expected error when starting already running scheduler")
	}
}

func TestScheduler_StopNotRunning(t *testing.T) {
	s := NewScheduler(&countingTrigger{}, testCreds(), nil, DefaultSchedulerConfig())

	if err := s.Stop(context.Background()); err != nil {
		t.Errorf("stopping a stopped scheduler should be a no-op, got %v", err)
	}
}

func TestScheduler_RunOnStart(t *testing.T) {
	trigger := &countingTrigger{}
	config := SchedulerConfig{Interval: time.Hour, RunOnStart: true}
	s := NewScheduler(trigger, testCreds(), []string{"acc-1"}, config)

	ctx := context.Background()
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for trigger.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := trigger.calls.Load(); got != 1 {
		t.Errorf("expected 1 trigger call after start, got %d", got)
	}

	if err := s.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if s.IsRunning() {
		t.Error("scheduler should not report running after Stop")
	}
}

func TestScheduler_Ticks(t *testing.T) {
	trigger := &countingTrigger{}
	config := SchedulerConfig{Interval: 20 * time.Millisecond}
	s := NewScheduler(trigger, testCreds(), nil, config)

	ctx := context.Background()
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for trigger.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}

	if got := trigger.calls.Load(); got < 2 {
		t.Errorf("expected at least 2 trigger calls, got %d", got)
	}
}
