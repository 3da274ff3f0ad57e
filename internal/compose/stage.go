package compose

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"shortreel/internal/fileutil"
	"shortreel/internal/logging"
	"shortreel/internal/project"
	"shortreel/internal/services"
	"shortreel/internal/stage"
)

// Stage produces <t>.mp4 from the timed script, images, and narration.
type Stage struct {
	composer *Composer
	logger   *slog.Logger
}

// NewStage wraps a Composer as a render stage.
func NewStage(composer *Composer, logger *slog.Logger) *Stage {
	return &Stage{composer: composer, logger: logging.NewComponentLogger(logger, "compose")}
}

// SetLogger updates the stage logger.
func (s *Stage) SetLogger(logger *slog.Logger) {
	s.logger = logging.NewComponentLogger(logger, "compose")
	if s.composer != nil {
		s.composer.SetLogger(logger)
	}
}

// Name implements stage.Handler.
func (s *Stage) Name() string { return project.StageCompose }

// Prepare checks that the script is timed and the inputs exist.
func (s *Stage) Prepare(_ context.Context, state *project.State) error {
	if !state.Script.Timed() {
		return services.Wrap(services.ErrValidation, project.StageCompose, "check timing", "script has untimed scenes; run timing first", nil)
	}
	for _, path := range []string{state.Layout.ImageDir(), state.Layout.NarrationPath()} {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return services.Wrap(services.ErrNotFound, project.StageCompose, "locate inputs", "missing "+path, nil)
			}
			return services.Wrap(services.ErrTransient, project.StageCompose, "locate inputs", path, err)
		}
	}
	return nil
}

// Execute implements stage.Handler.
func (s *Stage) Execute(ctx context.Context, state *project.State) (stage.Result, error) {
	output := state.Layout.BaseVideo()
	exists, err := fileutil.Exists(output)
	if err != nil {
		return stage.Result{}, services.Wrap(services.ErrTransient, project.StageCompose, "check output", output, err)
	}
	if exists {
		state.SetBaseVideo(output)
		return stage.Existing(output), nil
	}

	images, err := DiscoverImages(state.Layout.ImageDir())
	if err != nil {
		return stage.Result{}, err
	}
	durations, err := state.Script.Durations()
	if err != nil {
		return stage.Result{}, services.Wrap(services.ErrValidation, project.StageCompose, "read timing", "", err)
	}
	plan, err := s.composer.Compose(ctx, Request{
		Images:    images,
		Durations: durations,
		Narration: state.Layout.NarrationPath(),
		Output:    output,
	})
	if err != nil {
		return stage.Result{}, err
	}
	state.SetBaseVideo(output)
	return stage.Result{
		Output: output,
		Detail: fmt.Sprintf("%d scenes, %.2fs", len(plan.Clips), plan.Total),
	}, nil
}

// HealthCheck implements stage.Handler.
func (s *Stage) HealthCheck(context.Context) stage.Health {
	if s.composer == nil || s.composer.prober == nil || s.composer.runner == nil {
		return stage.Unhealthy(project.StageCompose, "composer not configured")
	}
	return stage.Healthy(project.StageCompose)
}
