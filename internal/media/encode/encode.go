package encode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"shortreel/internal/fileutil"
	"shortreel/internal/logging"
)

// CommandRunner executes an external command.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// GraphBuilder returns an output stream that writes to out.
type GraphBuilder func(out string) *ffmpeg.Stream

// Runner renders ffmpeg-go graphs to files atomically.
type Runner struct {
	binary string
	logger *slog.Logger
	run    CommandRunner
}

// NewRunner constructs a Runner for the given ffmpeg binary.
func NewRunner(binary string, logger *slog.Logger) *Runner {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	return &Runner{
		binary: binary,
		logger: logging.NewComponentLogger(logger, "ffmpeg"),
		run:    defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (r *Runner) WithCommandRunner(run CommandRunner) *Runner {
	if r != nil && run != nil {
		r.run = run
	}
	return r
}

// Args compiles the graph for out without running it.
func Args(build GraphBuilder, out string) []string {
	return build(out).OverWriteOutput().GetArgs()
}

// Render writes the graph's output to a hidden sibling of dst and renames it
// over dst once ffmpeg exits cleanly. dst is never left half-written.
func (r *Runner) Render(ctx context.Context, dst string, build GraphBuilder) error {
	if r == nil {
		return errors.New("encode runner not initialized")
	}
	if build == nil {
		return errors.New("encode: nil graph builder")
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp := fileutil.TempSibling(dst)
	_ = os.Remove(tmp)
	args := Args(build, tmp)

	r.logger.Debug("ffmpeg command",
		logging.String("command", r.binary),
		logging.String("args", strings.Join(args, " ")),
	)
	start := time.Now()
	if err := r.run(ctx, r.binary, args...); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("ffmpeg %s: %w", filepath.Base(dst), err)
	}
	ok, err := fileutil.Exists(tmp)
	if err != nil || !ok {
		_ = os.Remove(tmp)
		return fmt.Errorf("ffmpeg %s: no output produced", filepath.Base(dst))
	}
	if err := fileutil.Promote(tmp, dst); err != nil {
		return err
	}
	r.logger.Debug("ffmpeg finished",
		logging.String("output", dst),
		logging.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// OutputPath returns the output filename from a compiled argument list.
// ffmpeg-go places global flags such as -y after the filename, so this is the
// last argument that is not a flag.
func OutputPath(args []string) string {
	for i := len(args) - 1; i >= 0; i-- {
		if !strings.HasPrefix(args[i], "-") {
			return args[i]
		}
	}
	return ""
}

// Seconds formats a duration in seconds for ffmpeg arguments.
func Seconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

const stderrTail = 2048

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(output))
		if len(msg) > stderrTail {
			msg = msg[len(msg)-stderrTail:]
		}
		return fmt.Errorf("%w: %s", err, msg)
	}
	return nil
}
