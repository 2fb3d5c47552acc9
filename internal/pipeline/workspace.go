package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"vodub/internal/config"
)

// Workspace is the per-run scratch directory holding every intermediate
// artifact: the acquired video, extracted audio, transcript files, and
// synthesized segments. Creating one also takes the process lock so only a
// single pipeline touches the work directory at a time.
type Workspace struct {
	Dir  string
	keep bool
	lock *flock.Flock
}

// NewWorkspace creates a run-scoped directory under the configured work dir
// and acquires the pipeline lock.
func NewWorkspace(cfg *config.Config, runID string, keep bool) (*Workspace, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(filepath.Join(cfg.Paths.WorkDir, "vodub.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire pipeline lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another vodub run is already in progress")
	}

	dir := filepath.Join(cfg.Paths.WorkDir, runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("create workspace: %w", err)
	}

	return &Workspace{Dir: dir, keep: keep, lock: lock}, nil
}

// Path returns a location inside the workspace for the named artifact.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

// Keep reports whether intermediate artifacts survive after the run.
func (w *Workspace) Keep() bool {
	return w != nil && w.keep
}

// Close releases the pipeline lock and removes the scratch directory unless
// the run asked to keep it.
func (w *Workspace) Close() error {
	if w == nil {
		return nil
	}
	var errs []error
	if !w.keep && w.Dir != "" {
		if err := os.RemoveAll(w.Dir); err != nil {
			errs = append(errs, fmt.Errorf("remove workspace: %w", err))
		}
	}
	if w.lock != nil {
		if err := w.lock.Unlock(); err != nil {
			errs = append(errs, fmt.Errorf("release pipeline lock: %w", err))
		}
		w.lock = nil
	}
	return errors.Join(errs...)
}
