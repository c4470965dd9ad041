package state

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	"radar/internal/config"
)

// ErrAlreadyRunning indicates another radar process holds the run lock.
var ErrAlreadyRunning = errors.New("another radar instance is already running")

// RunLock enforces single-instance execution for commands that mutate
// state.
type RunLock struct {
	lock *flock.Flock
}

// AcquireRunLock takes the lock file in the state directory without
// blocking.
func AcquireRunLock(cfg *config.Config) (*RunLock, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	lock := flock.New(filepath.Join(cfg.Paths.StateDir, "radar.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, ErrAlreadyRunning
	}
	return &RunLock{lock: lock}, nil
}

// Release drops the lock. Safe to call on a nil receiver.
func (r *RunLock) Release() error {
	if r == nil || r.lock == nil {
		return nil
	}
	return r.lock.Unlock()
}
