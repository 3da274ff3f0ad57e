package captions

import (
	"context"
	"log/slog"

	"shortreel/internal/config"
	"shortreel/internal/logging"
	"shortreel/internal/media/encode"
	"shortreel/internal/media/ffprobe"
	"shortreel/internal/project"
	"shortreel/internal/services"
)

// Request describes one caption burn-in.
type Request struct {
	Video    string
	Segments []project.Segment
	Output   string
}

// Renderer burns word captions into a video.
type Renderer struct {
	prober ffprobe.Prober
	runner *encode.Runner
	style  Style
	render config.Render
	logger *slog.Logger
}

// NewRenderer constructs a Renderer from configuration.
func NewRenderer(cfg *config.Config, prober ffprobe.Prober, runner *encode.Runner, logger *slog.Logger) *Renderer {
	return &Renderer{
		prober: prober,
		runner: runner,
		style:  StyleFromConfig(cfg),
		render: cfg.Render,
		logger: logging.NewComponentLogger(logger, "captions"),
	}
}

// SetLogger updates the renderer logger.
func (r *Renderer) SetLogger(logger *slog.Logger) {
	r.logger = logging.NewComponentLogger(logger, "captions")
}

// Render probes the video, lays out the overlays, and encodes req.Output.
func (r *Renderer) Render(ctx context.Context, req Request) (Plan, error) {
	probe, err := r.prober.Inspect(ctx, req.Video)
	if err != nil {
		return Plan{}, services.Wrap(services.ErrExternalTool, project.StageCaptions, "probe video", req.Video, err)
	}
	width, height, ok := probe.Dimensions()
	if !ok {
		return Plan{}, services.Wrap(services.ErrValidation, project.StageCaptions, "probe video", req.Video+" has no video stream", nil)
	}

	plan := Plan{
		Video:       req.Video,
		Overlays:    BuildOverlays(req.Segments, width, height, r.style),
		Style:       r.style,
		WithAudio:   probe.HasAudio(),
		VideoCodec:  r.render.VideoCodec,
		PixelFormat: r.render.PixelFormat,
		Preset:      r.render.Preset,
	}
	if len(plan.Overlays) == 0 {
		logging.WarnWithContext(r.logger, "transcript has no captionable words", "captions_empty",
			logging.String(logging.FieldErrorHint, "check the transcription output"),
			logging.String(logging.FieldImpact, "video is re-encoded without captions"),
			logging.Int("segments", len(req.Segments)),
		)
	}
	r.logger.Info("burning captions",
		logging.String(logging.FieldEventType, "captions_start"),
		logging.Int("words", len(plan.Overlays)/2),
		logging.Int("width", width),
		logging.Int("height", height),
	)
	if err := r.runner.Render(ctx, req.Output, plan.Graph()); err != nil {
		return Plan{}, services.Wrap(services.ErrExternalTool, project.StageCaptions, "encode", req.Output, err)
	}
	return plan, nil
}
