package sync

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrMissingCredentials is returned by Trigger before any engine or network
// work when the secret pair is absent.
var ErrMissingCredentials = errors.New("sync: secretId and secretKey are required")

// Outcome is the recorded result of the last run: either a success with its
// counts or a failure with its message.
type Outcome struct {
	OK           bool     `json:"ok"`
	Added        int      `json:"added,omitempty"`
	Total        int      `json:"total,omitempty"`
	UsedAccounts []string `json:"usedAccounts,omitempty"`
	File         string   `json:"file,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// Status is the process-wide sync state. It lives in memory only and resets
// at process start.
type Status struct {
	LastRun    *time.Time `json:"lastRun"`
	LastResult *Outcome   `json:"lastResult"`
	Running    bool       `json:"running"`
}

// Runner executes one sync run; *Engine satisfies it.
type Runner interface {
	Run(ctx context.Context, creds Credentials, accountIDs []string) (Result, error)
}

// Tracker owns the shared status cell and enforces the at-most-one-
// concurrent-run policy. The running transition happens under the mutex, so
// there is no window between check and set.
type Tracker struct {
	mu     sync.Mutex
	runner Runner
	status Status
}

// NewTracker wraps a runner with run-status tracking.
func NewTracker(runner Runner) *Tracker {
	return &Tracker{runner: runner}
}

// Trigger starts a sync run unless one is already in flight, in which case
// the current status is returned immediately and no second run starts.
// Missing credentials fail before the runner — and therefore before any
// aggregator call — is touched.
func (t *Tracker) Trigger(ctx context.Context, creds Credentials, accountIDs []string) (Status, error) {
	if creds.Empty() {
		return t.Status(), ErrMissingCredentials
	}

	t.mu.Lock()
	if t.status.Running {
		status := t.snapshotLocked()
		t.mu.Unlock()
		return status, nil
	}
	now := time.Now().UTC()
	t.status.Running = true
	t.status.LastRun = &now
	t.mu.Unlock()

	res, err := t.runner.Run(ctx, creds, accountIDs)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.status.LastResult = &Outcome{OK: false, Error: err.Error()}
	} else {
		t.status.LastResult = &Outcome{
			OK:           true,
			Added:        res.Added,
			Total:        res.Total,
			UsedAccounts: res.UsedAccounts,
			File:         res.File,
		}
	}
	t.status.Running = false
	return t.snapshotLocked(), nil
}

// Status returns a copy of the current state. It never blocks on a run and
// never mutates.
func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// snapshotLocked deep-copies the status; the caller holds t.mu.
func (t *Tracker) snapshotLocked() Status {
	status := t.status
	if t.status.LastRun != nil {
		lastRun := *t.status.LastRun
		status.LastRun = &lastRun
	}
	if t.status.LastResult != nil {
		outcome := *t.status.LastResult
		outcome.UsedAccounts = append([]string(nil), t.status.LastResult.UsedAccounts...)
		status.LastResult = &outcome
	}
	return status
}
