package compose

import (
	"context"
	"fmt"
	"log/slog"

	"shortreel/internal/config"
	"shortreel/internal/logging"
	"shortreel/internal/media/encode"
	"shortreel/internal/media/ffprobe"
	"shortreel/internal/project"
	"shortreel/internal/services"
)

// Request describes one composition.
type Request struct {
	Images    []string
	Durations []float64
	Narration string
	Output    string
}

// Composer renders scene images and narration into a single crossfaded video.
type Composer struct {
	prober   ffprobe.Prober
	runner   *encode.Runner
	frame    Frame
	settings Settings
	logger   *slog.Logger
}

// NewComposer constructs a Composer from render configuration.
func NewComposer(cfg config.Render, prober ffprobe.Prober, runner *encode.Runner, logger *slog.Logger) *Composer {
	return &Composer{
		prober: prober,
		runner: runner,
		frame:  Frame{Width: cfg.Width, Height: cfg.Height},
		settings: Settings{
			FPS:         cfg.FPS,
			Crossfade:   cfg.CrossfadeSeconds,
			VideoCodec:  cfg.VideoCodec,
			AudioCodec:  cfg.AudioCodec,
			PixelFormat: cfg.PixelFormat,
			Preset:      cfg.Preset,
			Aspect:      Aspect{W: cfg.AspectWidth, H: cfg.AspectHeight},
		},
		logger: logging.NewComponentLogger(logger, "composer"),
	}
}

// SetLogger updates the composer logger.
func (c *Composer) SetLogger(logger *slog.Logger) {
	c.logger = logging.NewComponentLogger(logger, "composer")
}

// Compose probes the images, plans the composition, and renders it to
// req.Output atomically.
func (c *Composer) Compose(ctx context.Context, req Request) (Plan, error) {
	if len(req.Images) != len(req.Durations) {
		return Plan{}, services.Wrap(services.ErrValidation, project.StageCompose, "plan",
			fmt.Sprintf("found %d images for %d scenes", len(req.Images), len(req.Durations)), nil)
	}
	sources, err := ProbeImages(ctx, c.prober, req.Images)
	if err != nil {
		return Plan{}, err
	}
	plan, err := NewPlan(sources, req.Durations, req.Narration, c.frame, c.settings)
	if err != nil {
		return Plan{}, err
	}

	c.logger.Info("composing scene video",
		logging.String(logging.FieldEventType, "compose_start"),
		logging.Int("scenes", len(plan.Clips)),
		logging.Int("width", plan.Frame.Width),
		logging.Int("height", plan.Frame.Height),
		logging.Float64("crossfade_seconds", plan.Settings.Crossfade),
		logging.Float64("video_seconds", plan.Total),
	)
	if err := c.runner.Render(ctx, req.Output, plan.Graph()); err != nil {
		return Plan{}, services.Wrap(services.ErrExternalTool, project.StageCompose, "encode", req.Output, err)
	}
	return plan, nil
}
