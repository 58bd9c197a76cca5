package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ortiq01/financial-dashboard/internal/core"
)

// SnapshotFile persists the sync snapshot as one pretty-printed JSON file,
// replaced wholesale on every save.
type SnapshotFile struct {
	path string
}

func NewSnapshotFile(path string) *SnapshotFile {
	return &SnapshotFile{path: path}
}

// Path returns the snapshot file location.
func (s *SnapshotFile) Path() string { return s.path }

// Load reads the persisted snapshot. A missing, unreadable or corrupt file
// yields the empty snapshot: losing the prior state must never fail a sync
// run.
func (s *SnapshotFile) Load(ctx context.Context) core.Snapshot {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.WarnContext(ctx, "Snapshot unreadable, starting empty",
				"path", s.path, "error", err)
		}
		return core.EmptySnapshot()
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var snap core.Snapshot
	if err := dec.Decode(&snap); err != nil {
		slog.WarnContext(ctx, "Snapshot corrupt, starting empty",
			"path", s.path, "error", err)
		return core.EmptySnapshot()
	}
	if snap.Transactions == nil {
		snap.Transactions = []core.Transaction{}
	}
	return snap
}

// Save writes the snapshot atomically: to a temp file in the same directory,
// then renamed over the previous file. A failure here is the run's failure;
// silently losing persisted data must not pass as success.
func (s *SnapshotFile) Save(ctx context.Context, snap core.Snapshot) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close snapshot temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace snapshot: %w", err)
	}

	slog.DebugContext(ctx, "Snapshot persisted",
		"path", s.path, "transactions", len(snap.Transactions))
	return nil
}
