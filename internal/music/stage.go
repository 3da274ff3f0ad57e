package music

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"shortreel/internal/fileutil"
	"shortreel/internal/logging"
	"shortreel/internal/project"
	"shortreel/internal/services"
	"shortreel/internal/stage"
)

// Stage mixes background music into the latest video, writing
// <input>_music.mp4. The captioned video is used when captions are enabled and
// present, otherwise the base video.
type Stage struct {
	mixer         *Mixer
	withSubtitles bool
	logger        *slog.Logger
}

// NewStage wraps a Mixer as a render stage.
func NewStage(mixer *Mixer, withSubtitles bool, logger *slog.Logger) *Stage {
	return &Stage{mixer: mixer, withSubtitles: withSubtitles, logger: logging.NewComponentLogger(logger, "music")}
}

// SetLogger updates the stage logger.
func (s *Stage) SetLogger(logger *slog.Logger) {
	s.logger = logging.NewComponentLogger(logger, "music")
	if s.mixer != nil {
		s.mixer.SetLogger(logger)
	}
}

// Name implements stage.Handler.
func (s *Stage) Name() string { return project.StageMusic }

// Input returns the video the music is mixed under.
func (s *Stage) Input(state *project.State) (string, error) {
	candidates := []string{state.Layout.BaseVideo()}
	if s.withSubtitles {
		candidates = append([]string{state.Layout.SubtitledVideo()}, candidates...)
	}
	for _, path := range candidates {
		ok, err := fileutil.Exists(path)
		if err != nil {
			return "", services.Wrap(services.ErrTransient, project.StageMusic, "locate video", path, err)
		}
		if ok {
			return path, nil
		}
	}
	return "", services.Wrap(services.ErrNotFound, project.StageMusic, "locate video",
		"video file not found: "+candidates[0], nil)
}

// Prepare requires an input video.
func (s *Stage) Prepare(_ context.Context, state *project.State) error {
	_, err := s.Input(state)
	return err
}

// Execute implements stage.Handler.
func (s *Stage) Execute(ctx context.Context, state *project.State) (stage.Result, error) {
	input, err := s.Input(state)
	if err != nil {
		return stage.Result{}, err
	}
	output := state.Layout.MusicVideo(input)
	exists, err := fileutil.Exists(output)
	if err != nil {
		return stage.Result{}, services.Wrap(services.ErrTransient, project.StageMusic, "check output", output, err)
	}
	if exists {
		state.SetFinalVideo(output)
		return stage.Existing(output), nil
	}

	plan, err := s.mixer.Mix(ctx, Request{Video: input, Output: output})
	if err != nil {
		return stage.Result{}, err
	}
	state.SetFinalVideo(output)
	return stage.Result{
		Output: output,
		Detail: fmt.Sprintf("%s from %.2fs", filepath.Base(plan.Track), plan.ClipStart),
	}, nil
}

// HealthCheck reports whether the music pool has any tracks.
func (s *Stage) HealthCheck(context.Context) stage.Health {
	if s.mixer == nil || s.mixer.prober == nil || s.mixer.runner == nil {
		return stage.Unhealthy(project.StageMusic, "mixer not configured")
	}
	tracks, err := s.mixer.Tracks()
	if err != nil {
		return stage.Unhealthy(project.StageMusic, err.Error())
	}
	if len(tracks) == 0 {
		return stage.Unhealthy(project.StageMusic, describePool(s.mixer.dir, s.mixer.extensions))
	}
	return stage.Healthy(project.StageMusic)
}
