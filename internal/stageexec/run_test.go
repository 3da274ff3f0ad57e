package stageexec

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"shortreel/internal/history"
	"shortreel/internal/project"
	"shortreel/internal/services"
	"shortreel/internal/stage"
)

type fakeHandler struct {
	name       string
	prepareErr error
	result     stage.Result
	execErr    error
	executed   int
	logger     *slog.Logger
}

func (f *fakeHandler) Name() string { return f.name }

func (f *fakeHandler) Prepare(context.Context, *project.State) error { return f.prepareErr }

func (f *fakeHandler) Execute(context.Context, *project.State) (stage.Result, error) {
	f.executed++
	return f.result, f.execErr
}

func (f *fakeHandler) HealthCheck(context.Context) stage.Health { return stage.Healthy(f.name) }

func (f *fakeHandler) SetLogger(l *slog.Logger) { f.logger = l }

type memoryRecorder struct {
	runs []history.Run
	err  error
}

func (m *memoryRecorder) Record(_ context.Context, run history.Run) (history.Run, error) {
	m.runs = append(m.runs, run)
	return run, m.err
}

func newState() *project.State {
	return project.NewState("/data", project.Script{Title: "Deep Sea", Scenes: []project.Scene{{Script: "a b"}}})
}

func TestRunRecordsCompletion(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := &fakeHandler{name: "compose", result: stage.Produced("/v/Deep_Sea.mp4")}
	rec := &memoryRecorder{}

	result, err := Run(context.Background(), Options{Logger: logger, Recorder: rec, Handler: handler, State: newState(), RunID: "run-7"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Output != "/v/Deep_Sea.mp4" || handler.logger == nil {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(rec.runs) != 1 {
		t.Fatalf("expected one record, got %d", len(rec.runs))
	}
	got := rec.runs[0]
	if got.Status != history.StatusCompleted || got.Project != "Deep_Sea" || got.RunID != "run-7" || got.Stage != "compose" {
		t.Fatalf("unexpected record %+v", got)
	}
	logs := buf.String()
	for _, want := range []string{`"event_type":"stage_start"`, `"event_type":"stage_complete"`, `"correlation_id":"run-7"`, `"stage":"compose"`} {
		if !strings.Contains(logs, want) {
			t.Fatalf("expected %s in logs %s", want, logs)
		}
	}
}

func TestRunRecordsSkip(t *testing.T) {
	rec := &memoryRecorder{}
	handler := &fakeHandler{name: "captions", result: stage.Existing("/v/x_sub.mp4")}
	if _, err := Run(context.Background(), Options{Recorder: rec, Handler: handler, State: newState()}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rec.runs[0].Status != history.StatusSkipped {
		t.Fatalf("expected skipped, got %s", rec.runs[0].Status)
	}
}

func TestRunPrepareFailureSkipsExecute(t *testing.T) {
	rec := &memoryRecorder{}
	prepErr := services.Wrap(services.ErrNotFound, "timing", "narration", "no narration found", nil)
	handler := &fakeHandler{name: "timing", prepareErr: prepErr}

	_, err := Run(context.Background(), Options{Recorder: rec, Handler: handler, State: newState()})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if handler.executed != 0 {
		t.Fatal("Execute must not run after Prepare fails")
	}
	if rec.runs[0].Status != history.StatusReview || rec.runs[0].Error == "" {
		t.Fatalf("unexpected record %+v", rec.runs[0])
	}
}

func TestRunRecorderErrorDoesNotMaskResult(t *testing.T) {
	rec := &memoryRecorder{err: errors.New("disk full")}
	handler := &fakeHandler{name: "music", result: stage.Produced("/v/x_music.mp4")}
	if _, err := Run(context.Background(), Options{Recorder: rec, Handler: handler, State: newState()}); err != nil {
		t.Fatalf("expected success despite recorder error, got %v", err)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	handler := &fakeHandler{name: "compose"}
	_, err := Run(ctx, Options{Handler: handler, State: newState()})
	if !errors.Is(err, services.ErrTimeout) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation error, got %v", err)
	}
	if handler.executed != 0 {
		t.Fatal("cancelled stage must not execute")
	}
}

func TestRunRequiresHandlerAndState(t *testing.T) {
	if _, err := Run(context.Background(), Options{State: newState()}); err == nil {
		t.Fatal("expected error without handler")
	}
	if _, err := Run(context.Background(), Options{Handler: &fakeHandler{name: "x"}}); err == nil {
		t.Fatal("expected error without state")
	}
}
