// Package runfs manages run-stamped artifact directories. Every ingest
// starts a fresh directory under the output root; later subcommands attach
// to the most recent run (or an explicit one). A file lock on the output
// root keeps two concurrent runs from interleaving writes.
package runfs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

const (
	runPrefix       = "run-"
	lockFileName    = ".posreport.lock"
	snapshotName    = "snapshot.db"
	intermediateDir = "intermediate"
	outputDir       = "output"
	chartsDir       = "charts"
)

// Run is one stamped artifact directory.
type Run struct {
	ID   string
	Dir  string
	lock *flock.Flock
}

// New creates a fresh run directory under root, stamped with the current
// time and a short run ID, and acquires the output lock.
func New(root string) (*Run, error) {
	lock, err := acquireLock(root)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()[:8]
	name := fmt.Sprintf("%s%s-%s", runPrefix, time.Now().Format("20060102-150405"), id)
	dir := filepath.Join(root, name)
	for _, sub := range []string{intermediateDir, outputDir, chartsDir} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			_ = lock.Unlock()
			return nil, fmt.Errorf("create run directory %q: %w", filepath.Join(dir, sub), err)
		}
	}
	return &Run{ID: id, Dir: dir, lock: lock}, nil
}

// Latest attaches to the most recent run directory under root and acquires
// the output lock.
func Latest(root string) (*Run, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read output root %q: %w", root, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), runPrefix) {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return nil, errors.New("no runs found; run ingest first")
	}
	// Stamps sort chronologically as strings.
	sort.Strings(names)
	return Attach(root, names[len(names)-1])
}

// Attach opens an existing run directory by name.
func Attach(root, name string) (*Run, error) {
	dir := filepath.Join(root, name)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("run %q: %w", name, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("run %q is not a directory", name)
	}
	lock, err := acquireLock(root)
	if err != nil {
		return nil, err
	}
	id := name
	if i := strings.LastIndex(name, "-"); i >= 0 {
		id = name[i+1:]
	}
	return &Run{ID: id, Dir: dir, lock: lock}, nil
}

// Close releases the output lock.
func (r *Run) Close() error {
	if r == nil || r.lock == nil {
		return nil
	}
	return r.lock.Unlock()
}

// SnapshotPath returns the run's snapshot database location.
func (r *Run) SnapshotPath() string {
	return filepath.Join(r.Dir, snapshotName)
}

// IntermediatePath returns the path of an intermediate artifact.
func (r *Run) IntermediatePath(name string) string {
	return filepath.Join(r.Dir, intermediateDir, name)
}

// OutputPath returns the path of an output artifact.
func (r *Run) OutputPath(name string) string {
	return filepath.Join(r.Dir, outputDir, name)
}

// ChartPath returns the path of a chart artifact.
func (r *Run) ChartPath(name string) string {
	return filepath.Join(r.Dir, chartsDir, name)
}

func acquireLock(root string) (*flock.Flock, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create output root %q: %w", root, err)
	}
	lock := flock.New(filepath.Join(root, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another posreport run is writing to this output directory")
	}
	return lock, nil
}
