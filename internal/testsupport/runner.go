package testsupport

import (
	"context"
	"os"
	"sync"

	"shortreel/internal/media/encode"
)

// SpyRunner records ffmpeg invocations and writes a placeholder output file so
// the encode runner can promote it.
type SpyRunner struct {
	mu    sync.Mutex
	calls [][]string
	Err   error
}

// Run implements encode.CommandRunner.
func (s *SpyRunner) Run(_ context.Context, name string, args ...string) error {
	s.mu.Lock()
	s.calls = append(s.calls, append([]string{name}, args...))
	s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if out := encode.OutputPath(args); out != "" {
		return os.WriteFile(out, []byte("rendered"), 0o644)
	}
	return nil
}

// Calls returns the number of recorded invocations.
func (s *SpyRunner) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

// Last returns the arguments of the most recent invocation, without the binary.
func (s *SpyRunner) Last() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.calls) == 0 {
		return nil
	}
	last := s.calls[len(s.calls)-1]
	return append([]string(nil), last[1:]...)
}

// Runner returns an encode.Runner that executes through the spy.
func (s *SpyRunner) Runner() *encode.Runner {
	return encode.NewRunner("ffmpeg", nil).WithCommandRunner(s.Run)
}
