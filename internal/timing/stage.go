package timing

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"shortreel/internal/logging"
	"shortreel/internal/media/ffprobe"
	"shortreel/internal/project"
	"shortreel/internal/services"
	"shortreel/internal/stage"
)

// Stage probes the narration length, allocates scene timing, and persists the
// timed script. Timing is recomputed on every run; the script file is only
// rewritten when its content changes.
type Stage struct {
	prober ffprobe.Prober
	logger *slog.Logger
}

// NewStage constructs the timing stage.
func NewStage(prober ffprobe.Prober, logger *slog.Logger) *Stage {
	return &Stage{prober: prober, logger: logging.NewComponentLogger(logger, "timing")}
}

// SetLogger updates the stage logger.
func (s *Stage) SetLogger(logger *slog.Logger) {
	s.logger = logging.NewComponentLogger(logger, "timing")
}

// Name implements stage.Handler.
func (s *Stage) Name() string { return project.StageTiming }

// Prepare verifies the script and narration exist.
func (s *Stage) Prepare(_ context.Context, state *project.State) error {
	if err := state.Script.Validate(); err != nil {
		return services.Wrap(services.ErrValidation, project.StageTiming, "validate script", err.Error(), nil)
	}
	narration := state.Layout.NarrationPath()
	if _, err := os.Stat(narration); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrNotFound, project.StageTiming, "locate narration", "no narration found at "+narration, nil)
		}
		return services.Wrap(services.ErrTransient, project.StageTiming, "locate narration", narration, err)
	}
	return nil
}

// Execute implements stage.Handler.
func (s *Stage) Execute(ctx context.Context, state *project.State) (stage.Result, error) {
	narration := state.Layout.NarrationPath()
	probe, err := s.prober.Inspect(ctx, narration)
	if err != nil {
		return stage.Result{}, services.Wrap(services.ErrExternalTool, project.StageTiming, "probe narration", narration, err)
	}
	total := probe.DurationSeconds()

	alloc, err := Allocate(total, state.Script.Scenes)
	if err != nil {
		return stage.Result{}, err
	}
	if err := state.SetTiming(alloc.Apply(state.Script.Scenes)); err != nil {
		return stage.Result{}, services.Wrap(services.ErrValidation, project.StageTiming, "update state", "", err)
	}

	path := state.Layout.ScriptPath()
	changed, err := project.SaveScript(path, state.Script)
	if err != nil {
		return stage.Result{}, services.Wrap(services.ErrTransient, project.StageTiming, "save script", path, err)
	}
	s.logger.Info("scene timing allocated",
		logging.String(logging.FieldEventType, "timing_allocated"),
		logging.Float64("narration_seconds", total),
		logging.Int("total_words", alloc.TotalWords),
		logging.Float64("seconds_per_word", alloc.PerWord),
		logging.Int("scenes", len(alloc.Spans)),
		logging.Bool("script_rewritten", changed),
	)
	if !changed {
		return stage.Result{Output: path, Detail: "timing unchanged"}, nil
	}
	return stage.Produced(path), nil
}

// HealthCheck implements stage.Handler.
func (s *Stage) HealthCheck(context.Context) stage.Health {
	if s.prober == nil {
		return stage.Unhealthy(project.StageTiming, "ffprobe unavailable")
	}
	return stage.Healthy(project.StageTiming)
}
