package stageexec

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"shortreel/internal/history"
	"shortreel/internal/logging"
	"shortreel/internal/project"
	"shortreel/internal/services"
	"shortreel/internal/stage"
)

// Recorder persists stage outcomes.
type Recorder interface {
	Record(ctx context.Context, run history.Run) (history.Run, error)
}

// Options controls one stage execution.
type Options struct {
	Logger   *slog.Logger
	Recorder Recorder
	Handler  stage.Handler
	State    *project.State
	RunID    string
}

// Run executes one stage: Prepare then Execute, with structured start and
// outcome logs and a history record. Recording failures are logged and never
// mask the stage result.
func Run(ctx context.Context, opts Options) (stage.Result, error) {
	if opts.Handler == nil {
		return stage.Result{}, errors.New("stage handler unavailable")
	}
	if opts.State == nil {
		return stage.Result{}, errors.New("project state is required")
	}
	name := opts.Handler.Name()

	stageCtx := services.WithStage(ctx, name)
	stageCtx = services.WithProject(stageCtx, opts.State.Layout.Name)
	if opts.RunID != "" {
		stageCtx = services.WithRequestID(stageCtx, opts.RunID)
	}
	stageLogger := logging.WithContext(stageCtx, opts.Logger)
	if aware, ok := opts.Handler.(stage.LoggerAware); ok {
		aware.SetLogger(stageLogger)
	}

	started := time.Now()
	stageLogger.Info(
		"stage started",
		logging.String(logging.FieldEventType, "stage_start"),
		logging.Int("state_version", opts.State.Version),
	)

	result, err := execute(stageCtx, opts.Handler, opts.State)
	elapsed := time.Since(started)
	if err != nil {
		return result, handleFailure(stageCtx, stageLogger, opts, started, elapsed, err)
	}

	status := history.StatusCompleted
	eventType := "stage_complete"
	message := "stage completed"
	if result.Skipped {
		status = history.StatusSkipped
		eventType = "stage_skip"
		message = "stage skipped"
	}
	stageLogger.Info(
		message,
		logging.String(logging.FieldEventType, eventType),
		logging.String("output", result.Output),
		logging.String("detail", strings.TrimSpace(result.Detail)),
		logging.Duration("duration", elapsed),
		logging.Int("state_version", opts.State.Version),
	)
	record(stageCtx, stageLogger, opts, history.Run{
		Stage:     name,
		Status:    status,
		Output:    result.Output,
		StartedAt: started,
		Duration:  elapsed,
	})
	return result, nil
}

func execute(ctx context.Context, handler stage.Handler, state *project.State) (stage.Result, error) {
	if err := ctx.Err(); err != nil {
		return stage.Result{}, services.Wrap(services.ErrTimeout, handler.Name(), "start", "render cancelled", err)
	}
	if err := handler.Prepare(ctx, state); err != nil {
		return stage.Result{}, err
	}
	return handler.Execute(ctx, state)
}

func handleFailure(ctx context.Context, logger *slog.Logger, opts Options, started time.Time, elapsed time.Duration, stageErr error) error {
	status := services.FailureStatus(stageErr)
	logger.Error(
		"stage failed",
		logging.String(logging.FieldEventType, "stage_failure"),
		logging.String(logging.FieldErrorKind, services.Kind(stageErr)),
		logging.String("resolved_status", string(status)),
		logging.String(logging.FieldErrorHint, failureHint(stageErr)),
		logging.Duration("duration", elapsed),
		logging.Error(stageErr),
	)
	record(ctx, logger, opts, history.Run{
		Stage:     opts.Handler.Name(),
		Status:    status,
		Error:     stageErr.Error(),
		StartedAt: started,
		Duration:  elapsed,
	})
	return stageErr
}

func record(ctx context.Context, logger *slog.Logger, opts Options, run history.Run) {
	if opts.Recorder == nil {
		return
	}
	run.RunID = opts.RunID
	run.Project = opts.State.Layout.Name
	if _, err := opts.Recorder.Record(context.WithoutCancel(ctx), run); err != nil {
		logger.Warn("failed to record stage run",
			logging.String(logging.FieldEventType, "history_record_failed"),
			logging.String(logging.FieldImpact, "stage outcome missing from history"),
			logging.Error(err),
		)
	}
}

func failureHint(err error) string {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return "produce the missing artifact and rerun"
	case errors.Is(err, services.ErrValidation):
		return "fix the project inputs and rerun"
	case errors.Is(err, services.ErrExternalTool):
		return "inspect ffmpeg output with --log-level debug"
	default:
		return "check logs for details"
	}
}
