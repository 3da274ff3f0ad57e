package preflight

import (
	"context"
	"fmt"
	"strings"

	"shortreel/internal/config"
	"shortreel/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}
	if cfg.Music.Enabled {
		results = append(results, CheckDirectoryAccess("Music directory", cfg.Paths.MusicDir))
	}
	if cfg.Subtitles.Enabled && strings.TrimSpace(cfg.Paths.FontFile) != "" {
		results = append(results, CheckFile("Caption font", cfg.Paths.FontFile))
	}
	for _, status := range CheckSystemDeps(ctx, cfg) {
		result := Result{Name: status.Name, Passed: status.Available, Detail: status.Path}
		if !status.Available {
			result.Detail = status.Detail
		}
		results = append(results, result)
	}
	return results
}

// CheckSystemDeps evaluates the external binaries for the given config. Both
// the orchestrator and the CLI status command use it.
func CheckSystemDeps(_ context.Context, cfg *config.Config) []deps.Status {
	return deps.CheckBinaries([]deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpegBinary(),
			Description: "Required for composing, captions, and music",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.FFprobeBinary(),
			Description: "Required for media inspection",
		},
	})
}

// Failures summarizes the failed checks, or returns nil when all passed.
func Failures(results []Result) error {
	var failures []string
	for _, r := range results {
		if !r.Passed {
			failures = append(failures, fmt.Sprintf("%s: %s", r.Name, r.Detail))
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return fmt.Errorf("preflight checks failed: %s", strings.Join(failures, "; "))
}
