package timing

import (
	"context"
	"errors"
	"testing"

	"shortreel/internal/project"
	"shortreel/internal/services"
	"shortreel/internal/testsupport"
)

func TestStageAllocatesAndPersists(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	state := project.NewState(cfg.Paths.DataDir, testsupport.Script("Deep Sea", 4, 6))
	narration := testsupport.WriteNarration(t, state.Layout)
	prober := testsupport.NewFakeProber().Set(narration, testsupport.AudioResult(20))

	st := NewStage(prober, nil)
	ctx := context.Background()
	if err := st.Prepare(ctx, state); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	result, err := st.Execute(ctx, state)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Output != state.Layout.ScriptPath() {
		t.Fatalf("unexpected output %q", result.Output)
	}
	if *state.Script.Scenes[0].End != 8 || *state.Script.Scenes[1].End != 20 {
		t.Fatalf("unexpected timing %+v", state.Script.Scenes)
	}
	if state.Version != 2 {
		t.Fatalf("expected state version 2, got %d", state.Version)
	}

	saved, err := project.LoadScript(state.Layout.ScriptPath())
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if !saved.Timed() || *saved.Scenes[1].Start != 8 {
		t.Fatalf("persisted script missing timing: %+v", saved.Scenes)
	}

	again, err := st.Execute(ctx, state)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if again.Detail != "timing unchanged" {
		t.Fatalf("expected unchanged rerun, got %+v", again)
	}
}

func TestStageMissingNarration(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	state := project.NewState(cfg.Paths.DataDir, testsupport.Script("Deep Sea", 2))
	err := NewStage(testsupport.NewFakeProber(), nil).Prepare(context.Background(), state)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStageProbeFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	state := project.NewState(cfg.Paths.DataDir, testsupport.Script("Deep Sea", 2))
	testsupport.WriteNarration(t, state.Layout)
	prober := testsupport.NewFakeProber()
	prober.Err = errors.New("corrupt mp3")

	_, err := NewStage(prober, nil).Execute(context.Background(), state)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}
