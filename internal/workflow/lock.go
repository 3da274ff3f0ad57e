package workflow

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrProjectLocked is returned when another process is rendering the project.
var ErrProjectLocked = errors.New("project is already being rendered")

type projectLock struct {
	path string
	lock *flock.Flock
}

func acquireProjectLock(path string) (*projectLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure lock directory: %w", err)
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrProjectLocked, path)
	}
	return &projectLock{path: path, lock: lock}, nil
}

func (l *projectLock) release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
