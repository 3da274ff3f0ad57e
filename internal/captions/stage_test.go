package captions

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"shortreel/internal/project"
	"shortreel/internal/services"
	"shortreel/internal/testsupport"
)

func newCaptionStage(t *testing.T) (*Stage, *testsupport.SpyRunner, *testsupport.FakeProber, *project.State) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	state := project.NewState(cfg.Paths.DataDir, testsupport.TimedScript("Deep Sea", 2))
	prober := testsupport.NewFakeProber().Set(state.Layout.BaseVideo(), testsupport.VideoResult(720, 1280, 2, true))
	spy := &testsupport.SpyRunner{}
	return NewStage(NewRenderer(cfg, prober, spy.Runner(), nil), nil), spy, prober, state
}

func TestStageBurnsCaptionsOnce(t *testing.T) {
	st, spy, prober, state := newCaptionStage(t)
	testsupport.WriteFile(t, state.Layout.BaseVideo(), 32)
	testsupport.WriteTranscript(t, state.Layout,
		project.Segment{Word: "the", Start: 0, End: 0.3},
		project.Segment{Word: "abyss", Start: 0.3, End: 1.0},
	)
	ctx := context.Background()

	if err := st.Prepare(ctx, state); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	result, err := st.Execute(ctx, state)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Output != state.Layout.SubtitledVideo() || !strings.HasSuffix(result.Output, "_sub.mp4") {
		t.Fatalf("unexpected output %q", result.Output)
	}
	if result.Detail != "2 captioned words" {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
	if state.SubtitledVideo != result.Output {
		t.Fatalf("state not updated: %+v", state)
	}
	if strings.Count(strings.Join(spy.Last(), " "), "drawtext=") != 4 {
		t.Fatalf("expected 4 drawtext filters: %v", spy.Last())
	}

	again, err := st.Execute(ctx, state)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !again.Skipped || spy.Calls() != 1 || prober.Calls() != 1 {
		t.Fatalf("second run must reuse the artifact: skipped=%v encodes=%d probes=%d", again.Skipped, spy.Calls(), prober.Calls())
	}
}

func TestStagePrepareMissingInputs(t *testing.T) {
	st, _, _, state := newCaptionStage(t)
	err := st.Prepare(context.Background(), state)
	if !errors.Is(err, services.ErrNotFound) || !strings.Contains(err.Error(), "video file not found") {
		t.Fatalf("expected missing video, got %v", err)
	}

	testsupport.WriteFile(t, state.Layout.BaseVideo(), 32)
	err = st.Prepare(context.Background(), state)
	if !errors.Is(err, services.ErrNotFound) || !strings.Contains(err.Error(), "transcription file not found") {
		t.Fatalf("expected missing transcript, got %v", err)
	}
}

func TestStageEncodeFailureLeavesNoOutput(t *testing.T) {
	st, spy, _, state := newCaptionStage(t)
	spy.Err = errors.New("exit status 1")
	testsupport.WriteFile(t, state.Layout.BaseVideo(), 32)
	testsupport.WriteTranscript(t, state.Layout, project.Segment{Word: "x", Start: 0, End: 1})

	_, err := st.Execute(context.Background(), state)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if _, statErr := os.Stat(state.Layout.SubtitledVideo()); !os.IsNotExist(statErr) {
		t.Fatalf("expected no output, got %v", statErr)
	}
	if state.SubtitledVideo != "" {
		t.Fatal("state must not record a failed render")
	}
}
