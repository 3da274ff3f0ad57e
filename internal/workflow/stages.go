package workflow

import (
	"log/slog"
	"math/rand/v2"

	"shortreel/internal/captions"
	"shortreel/internal/compose"
	"shortreel/internal/config"
	"shortreel/internal/media/encode"
	"shortreel/internal/media/ffprobe"
	"shortreel/internal/music"
	"shortreel/internal/stage"
	"shortreel/internal/timing"
)

// StageSet bundles the concrete handlers the orchestrator runs. A nil handler
// is skipped.
type StageSet struct {
	Timing   stage.Handler
	Compose  stage.Handler
	Captions stage.Handler
	Music    stage.Handler
}

// Ordered returns the configured handlers in pipeline order.
func (s StageSet) Ordered() []stage.Handler {
	var handlers []stage.Handler
	for _, h := range []stage.Handler{s.Timing, s.Compose, s.Captions, s.Music} {
		if h != nil {
			handlers = append(handlers, h)
		}
	}
	return handlers
}

// Toggles selects the optional stages for one render.
type Toggles struct {
	Subtitles bool
	Music     bool
}

// DefaultToggles follows the config.
func DefaultToggles(cfg *config.Config) Toggles {
	return Toggles{Subtitles: cfg.Subtitles.Enabled, Music: cfg.Music.Enabled}
}

// BuildStages wires the stage handlers to shared collaborators.
func BuildStages(cfg *config.Config, prober ffprobe.Prober, runner *encode.Runner, rng *rand.Rand, toggles Toggles, logger *slog.Logger) StageSet {
	set := StageSet{
		Timing:  timing.NewStage(prober, logger),
		Compose: compose.NewStage(compose.NewComposer(cfg.Render, prober, runner, logger), logger),
	}
	if toggles.Subtitles {
		set.Captions = captions.NewStage(captions.NewRenderer(cfg, prober, runner, logger), logger)
	}
	if toggles.Music {
		set.Music = music.NewStage(music.NewMixer(cfg, prober, runner, rng, logger), toggles.Subtitles, logger)
	}
	return set
}
