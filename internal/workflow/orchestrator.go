package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"shortreel/internal/config"
	"shortreel/internal/logging"
	"shortreel/internal/preflight"
	"shortreel/internal/project"
	"shortreel/internal/services"
	"shortreel/internal/stage"
	"shortreel/internal/stageexec"
)

// Outcome is the result of one stage within a render.
type Outcome struct {
	Stage  string
	Result stage.Result
	Err    error
}

// Report summarizes one render.
type Report struct {
	RunID    string
	Project  string
	Outcomes []Outcome
	Final    string
	Elapsed  time.Duration
}

// Failed returns the stages that returned an error.
func (r Report) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// Orchestrator renders projects through a StageSet.
type Orchestrator struct {
	cfg       *config.Config
	stages    StageSet
	recorder  stageexec.Recorder
	logger    *slog.Logger
	preflight bool
	newRunID  func() string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRecorder records stage outcomes, typically in the history store.
func WithRecorder(recorder stageexec.Recorder) Option {
	return func(o *Orchestrator) { o.recorder = recorder }
}

// WithPreflight runs directory and binary checks before the first stage.
func WithPreflight(enabled bool) Option {
	return func(o *Orchestrator) { o.preflight = enabled }
}

// WithRunIDFunc overrides run id generation.
func WithRunIDFunc(fn func() string) Option {
	return func(o *Orchestrator) {
		if fn != nil {
			o.newRunID = fn
		}
	}
}

// New constructs an Orchestrator.
func New(cfg *config.Config, stages StageSet, logger *slog.Logger, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	o := &Orchestrator{
		cfg:      cfg,
		stages:   stages,
		logger:   logger,
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Render runs every configured stage for script in order. A failing stage
// does not stop the render; the returned error joins every stage failure.
// Setup failures (lock, preflight, project directories) abort before any
// stage runs.
func (o *Orchestrator) Render(ctx context.Context, script project.Script) (Report, error) {
	if err := script.Validate(); err != nil {
		return Report{}, services.Wrap(services.ErrValidation, "", "validate script", err.Error(), nil)
	}
	state := project.NewState(o.cfg.Paths.DataDir, script)
	report := Report{RunID: o.newRunID(), Project: state.Layout.Name}

	if err := state.Layout.Ensure(); err != nil {
		return report, services.Wrap(services.ErrConfiguration, "", "create project directories", state.Layout.Name, err)
	}
	lock, err := acquireProjectLock(state.Layout.LockPath())
	if err != nil {
		return report, err
	}
	defer func() {
		if err := lock.release(); err != nil {
			o.logger.Warn("failed to release project lock",
				logging.String(logging.FieldEventType, "lock_release_failed"),
				logging.String("lock", lock.path),
				logging.Error(err),
			)
		}
	}()

	ctx = services.WithProject(ctx, state.Layout.Name)
	ctx = services.WithRequestID(ctx, report.RunID)
	logger, closer, err := projectLogger(o.cfg, o.logger, state.Layout.LogPath())
	if err != nil {
		logging.WarnWithContext(o.logger, "project log unavailable", "project_log_failed",
			logging.String(logging.FieldImpact, "render output only in the main log"),
			logging.Error(err),
		)
	}
	defer closer.Close()
	logger = logging.WithContext(ctx, logger)

	if o.preflight {
		if err := o.runPreflight(ctx, logger); err != nil {
			return report, err
		}
	}

	started := time.Now()
	handlers := o.stages.Ordered()
	logger.Info("render started",
		logging.String(logging.FieldEventType, "render_start"),
		logging.Int("stages", len(handlers)),
		logging.Int("scenes", len(state.Script.Scenes)),
	)

	var errs []error
	for _, handler := range handlers {
		if err := ctx.Err(); err != nil {
			errs = append(errs, services.Wrap(services.ErrTimeout, handler.Name(), "start", "render cancelled", err))
			break
		}
		result, err := stageexec.Run(ctx, stageexec.Options{
			Logger:   logger,
			Recorder: o.recorder,
			Handler:  handler,
			State:    state,
			RunID:    report.RunID,
		})
		report.Outcomes = append(report.Outcomes, Outcome{Stage: handler.Name(), Result: result, Err: err})
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", handler.Name(), err))
		}
	}
	report.Final = state.LatestVideo()
	report.Elapsed = time.Since(started)

	joined := errors.Join(errs...)
	if joined != nil {
		logging.ErrorWithContext(logger, "render finished with failures", "render_failed",
			logging.Int("failed_stages", len(errs)),
			logging.String("final_video", report.Final),
			logging.Duration("duration", report.Elapsed),
		)
		return report, joined
	}
	logger.Info("render completed",
		logging.String(logging.FieldEventType, "render_complete"),
		logging.String("final_video", report.Final),
		logging.Duration("duration", report.Elapsed),
	)
	return report, nil
}

// HealthChecks reports the readiness of every configured stage.
func (o *Orchestrator) HealthChecks(ctx context.Context) []stage.Health {
	handlers := o.stages.Ordered()
	out := make([]stage.Health, 0, len(handlers))
	for _, h := range handlers {
		out = append(out, h.HealthCheck(ctx))
	}
	return out
}

func (o *Orchestrator) runPreflight(ctx context.Context, logger *slog.Logger) error {
	results := preflight.RunAll(ctx, o.cfg)
	for _, r := range results {
		if r.Passed {
			logger.Debug("preflight check passed",
				logging.String("check", r.Name),
				logging.String("detail", r.Detail),
				logging.String(logging.FieldEventType, "preflight_passed"),
			)
			continue
		}
		logging.ErrorWithContext(logger, "preflight check failed", "preflight_failed",
			logging.String("check", r.Name),
			logging.String("detail", r.Detail),
			logging.String(logging.FieldErrorHint, "fix the reported issue and rerun"),
		)
	}
	if err := preflight.Failures(results); err != nil {
		return services.Wrap(services.ErrConfiguration, "", "preflight", "", err)
	}
	return nil
}
