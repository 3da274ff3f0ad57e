package music

import (
	"context"
	"log/slog"
	"math"
	"math/rand/v2"
	"path/filepath"
	"sync"

	"shortreel/internal/config"
	"shortreel/internal/logging"
	"shortreel/internal/media/encode"
	"shortreel/internal/media/ffprobe"
	"shortreel/internal/project"
	"shortreel/internal/services"
)

// Request describes one music mix.
type Request struct {
	Video  string
	Output string
}

// Mixer picks a track from the pool and mixes it under a video.
type Mixer struct {
	dir        string
	extensions []string
	volume     float64
	audioCodec string
	prober     ffprobe.Prober
	runner     *encode.Runner
	logger     *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMixer constructs a Mixer. A nil rng is replaced with a randomly seeded
// source.
func NewMixer(cfg *config.Config, prober ffprobe.Prober, runner *encode.Runner, rng *rand.Rand, logger *slog.Logger) *Mixer {
	if rng == nil {
		rng = NewRand(nil)
	}
	return &Mixer{
		dir:        cfg.Paths.MusicDir,
		extensions: cfg.Music.Extensions,
		volume:     cfg.Music.Volume,
		audioCodec: cfg.Render.AudioCodec,
		prober:     prober,
		runner:     runner,
		rng:        rng,
		logger:     logging.NewComponentLogger(logger, "music"),
	}
}

// SetLogger updates the mixer logger.
func (m *Mixer) SetLogger(logger *slog.Logger) {
	m.logger = logging.NewComponentLogger(logger, "music")
}

// Tracks lists the current pool.
func (m *Mixer) Tracks() ([]string, error) {
	return Pool(m.dir, m.extensions)
}

func (m *Mixer) pick(tracks []string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Pick(m.rng, tracks)
}

// Mix renders req.Output with a random track from the pool under req.Video.
func (m *Mixer) Mix(ctx context.Context, req Request) (Plan, error) {
	tracks, err := m.Tracks()
	if err != nil {
		return Plan{}, err
	}
	if len(tracks) == 0 {
		return Plan{}, services.Wrap(services.ErrValidation, project.StageMusic, "pick track", describePool(m.dir, m.extensions), nil)
	}

	video, err := m.prober.Inspect(ctx, req.Video)
	if err != nil {
		return Plan{}, services.Wrap(services.ErrExternalTool, project.StageMusic, "probe video", req.Video, err)
	}
	if !video.HasAudio() {
		return Plan{}, services.Wrap(services.ErrValidation, project.StageMusic, "probe video", req.Video+" has no audio to mix with", nil)
	}
	videoSeconds := video.DurationSeconds()
	if !validDuration(videoSeconds) {
		return Plan{}, services.Wrap(services.ErrValidation, project.StageMusic, "probe video", req.Video+" has no usable duration", nil)
	}

	track, err := m.pick(tracks)
	if err != nil {
		return Plan{}, err
	}
	probe, err := m.prober.Inspect(ctx, track)
	if err != nil {
		return Plan{}, services.Wrap(services.ErrExternalTool, project.StageMusic, "probe track", track, err)
	}
	trackSeconds := probe.DurationSeconds()
	if !validDuration(trackSeconds) {
		return Plan{}, services.Wrap(services.ErrValidation, project.StageMusic, "probe track", track+" has no usable duration", nil)
	}

	plan := NewPlan(req.Video, track, videoSeconds, trackSeconds, m.volume, m.audioCodec)
	m.logger.Info("mixing background music",
		logging.String(logging.FieldEventType, "music_start"),
		logging.String("track", filepath.Base(track)),
		logging.Int("pool_size", len(tracks)),
		logging.Float64("clip_start", plan.ClipStart),
		logging.Float64("volume", plan.Volume),
		logging.Float64("video_seconds", videoSeconds),
	)
	if trackSeconds < videoSeconds {
		logging.WarnWithContext(m.logger, "track shorter than video", "music_short_track",
			logging.String(logging.FieldImpact, "music ends before the video"),
			logging.String(logging.FieldErrorHint, "add longer tracks to the music directory"),
			logging.Float64("track_seconds", trackSeconds),
		)
	}
	if err := m.runner.Render(ctx, req.Output, plan.Graph()); err != nil {
		return Plan{}, services.Wrap(services.ErrExternalTool, project.StageMusic, "encode", req.Output, err)
	}
	return plan, nil
}

func validDuration(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
