package captions

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

// Stage burns the transcript into <t>_sub.mp4.
type Stage struct {
	renderer *Renderer
	logger   *slog.Logger
}

// NewStage wraps a Renderer as a render stage.
func NewStage(renderer *Renderer, logger *slog.Logger) *Stage {
	return &Stage{renderer: renderer, logger: logging.NewComponentLogger(logger, "captions")}
}

// SetLogger updates the stage logger.
func (s *Stage) SetLogger(logger *slog.Logger) {
	s.logger = logging.NewComponentLogger(logger, "captions")
	if s.renderer != nil {
		s.renderer.SetLogger(logger)
	}
}

// Name implements stage.Handler.
func (s *Stage) Name() string { return project.StageCaptions }

// Prepare requires the base video and transcript.
func (s *Stage) Prepare(_ context.Context, state *project.State) error {
	inputs := []struct{ label, path string }{
		{"video", state.Layout.BaseVideo()},
		{"transcription", state.Layout.TranscriptPath()},
	}
	for _, in := range inputs {
		if _, err := os.Stat(in.path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return services.Wrap(services.ErrNotFound, project.StageCaptions, "locate inputs",
					fmt.Sprintf("%s file not found: %s", in.label, in.path), nil)
			}
			return services.Wrap(services.ErrTransient, project.StageCaptions, "locate inputs", in.path, err)
		}
	}
	return nil
}

// Execute implements stage.Handler.
func (s *Stage) Execute(ctx context.Context, state *project.State) (stage.Result, error) {
	output := state.Layout.SubtitledVideo()
	exists, err := fileutil.Exists(output)
	if err != nil {
		return stage.Result{}, services.Wrap(services.ErrTransient, project.StageCaptions, "check output", output, err)
	}
	if exists {
		state.SetSubtitledVideo(output)
		return stage.Existing(output), nil
	}

	transcript, err := project.LoadTranscript(state.Layout.TranscriptPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return stage.Result{}, services.Wrap(services.ErrNotFound, project.StageCaptions, "load transcript", state.Layout.TranscriptPath(), err)
		}
		return stage.Result{}, services.Wrap(services.ErrValidation, project.StageCaptions, "load transcript", "", err)
	}
	plan, err := s.renderer.Render(ctx, Request{
		Video:    state.Layout.BaseVideo(),
		Segments: transcript.Segments,
		Output:   output,
	})
	if err != nil {
		return stage.Result{}, err
	}
	state.SetSubtitledVideo(output)
	return stage.Result{
		Output: output,
		Detail: fmt.Sprintf("%d captioned words", len(plan.Overlays)/2),
	}, nil
}

// HealthCheck implements stage.Handler.
func (s *Stage) HealthCheck(context.Context) stage.Health {
	if s.renderer == nil || s.renderer.prober == nil || s.renderer.runner == nil {
		return stage.Unhealthy(project.StageCaptions, "renderer not configured")
	}
	if font := s.renderer.style.FontFile; font != "" {
		if _, err := os.Stat(font); err != nil {
			return stage.Unhealthy(project.StageCaptions, "caption font unavailable: "+font)
		}
	}
	return stage.Healthy(project.StageCaptions)
}
