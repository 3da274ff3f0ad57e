package workflow_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
)

func flockFor(t *testing.T, path string) func() {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil || !ok {
		t.Fatalf("hold lock: ok=%v err=%v", ok, err)
	}
	return func() { _ = lock.Unlock() }
}
