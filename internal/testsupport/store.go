package testsupport

import (
	"context"
	"path/filepath"
	"testing"

	"posreport/internal/config"
	"posreport/internal/runfs"
	"posreport/internal/store"
)

// MustOpenStore opens a snapshot store in a temp directory and registers
// cleanup.
func MustOpenStore(t testing.TB) *store.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "snapshot.db")
	snapshot, err := store.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		snapshot.Close()
	})
	return snapshot
}

// NewRun creates a run directory under the config's output root and
// registers cleanup of its lock.
func NewRun(t testing.TB, cfg *config.Config) *runfs.Run {
	t.Helper()

	run, err := runfs.New(cfg.Paths.OutputDir)
	if err != nil {
		t.Fatalf("runfs.New: %v", err)
	}
	t.Cleanup(func() {
		run.Close()
	})
	return run
}
