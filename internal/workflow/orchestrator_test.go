package workflow_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shortreel/internal/config"
	"shortreel/internal/history"
	"shortreel/internal/music"
	"shortreel/internal/project"
	"shortreel/internal/services"
	"shortreel/internal/testsupport"
	"shortreel/internal/workflow"
)

type renderFixture struct {
	cfg    *config.Config
	script project.Script
	layout project.Layout
	prober *testsupport.FakeProber
	spy    *testsupport.SpyRunner
	store  *history.Store
}

func newRenderFixture(t *testing.T) renderFixture {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	script := testsupport.Script("Deep Sea", 4, 6)
	layout := project.NewLayout(cfg.Paths.DataDir, script.Title)

	testsupport.WriteImages(t, layout, 2)
	testsupport.WriteNarration(t, layout)
	testsupport.WriteTranscript(t, layout,
		project.Segment{Word: "into", Start: 0, End: 0.4},
		project.Segment{Word: "the", Start: 0.4, End: 0.6},
		project.Segment{Word: "deep", Start: 0.6, End: 1.2},
	)
	track := filepath.Join(cfg.Paths.MusicDir, "calm.mp3")
	testsupport.WriteFile(t, track, 8)

	img := testsupport.ImageResult(1792, 1024)
	prober := testsupport.NewFakeProber().
		Set(layout.NarrationPath(), testsupport.AudioResult(20)).
		Set(layout.BaseVideo(), testsupport.VideoResult(576, 1024, 19, true)).
		Set(layout.SubtitledVideo(), testsupport.VideoResult(576, 1024, 19, true)).
		Set(track, testsupport.AudioResult(60))
	prober.Default = &img

	return renderFixture{
		cfg:    cfg,
		script: script,
		layout: layout,
		prober: prober,
		spy:    &testsupport.SpyRunner{},
		store:  testsupport.MustOpenHistory(t, cfg),
	}
}

func (f renderFixture) orchestrator(toggles workflow.Toggles, opts ...workflow.Option) *workflow.Orchestrator {
	seed := uint64(3)
	stages := workflow.BuildStages(f.cfg, f.prober, f.spy.Runner(), music.NewRand(&seed), toggles, nil)
	opts = append([]workflow.Option{workflow.WithRecorder(f.store)}, opts...)
	return workflow.New(f.cfg, stages, nil, opts...)
}

func TestRenderRunsAllStagesThenReusesArtifacts(t *testing.T) {
	f := newRenderFixture(t)
	orch := f.orchestrator(workflow.Toggles{Subtitles: true, Music: true}, workflow.WithRunIDFunc(func() string { return "run-1" }))
	ctx := context.Background()

	report, err := orch.Render(ctx, f.script)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(report.Outcomes) != 4 {
		t.Fatalf("expected 4 stage outcomes, got %+v", report.Outcomes)
	}
	if want := project.WithSuffix(f.layout.SubtitledVideo(), project.MusicSuffix); report.Final != want {
		t.Fatalf("final video = %q, want %q", report.Final, want)
	}
	if f.spy.Calls() != 3 {
		t.Fatalf("expected 3 encodes, got %d", f.spy.Calls())
	}

	saved, err := project.LoadScript(f.layout.ScriptPath())
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if *saved.Scenes[0].Start != 0 || *saved.Scenes[0].End != 8 || *saved.Scenes[1].Start != 8 || *saved.Scenes[1].End != 20 {
		t.Fatalf("unexpected timing: %+v %+v", saved.Scenes[0], saved.Scenes[1])
	}
	if _, err := os.Stat(f.layout.LogPath()); err != nil {
		t.Fatalf("expected project render log: %v", err)
	}

	again, err := f.orchestrator(workflow.Toggles{Subtitles: true, Music: true}).Render(ctx, f.script)
	if err != nil {
		t.Fatalf("second Render: %v", err)
	}
	if f.spy.Calls() != 3 {
		t.Fatalf("second render must not encode, got %d calls", f.spy.Calls())
	}
	for _, o := range again.Outcomes[1:] {
		if !o.Result.Skipped {
			t.Fatalf("stage %s should reuse its artifact", o.Stage)
		}
	}
	if again.Outcomes[0].Result.Detail != "timing unchanged" {
		t.Fatalf("unexpected timing detail %q", again.Outcomes[0].Result.Detail)
	}

	runs, err := f.store.List(ctx, history.ListOptions{RunID: "run-1"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 4 {
		t.Fatalf("expected 4 recorded runs, got %d", len(runs))
	}
	for _, run := range runs {
		if run.Status != history.StatusCompleted || run.Project != "Deep_Sea" {
			t.Fatalf("unexpected run %+v", run)
		}
	}
}

func TestRenderWithoutOptionalStages(t *testing.T) {
	f := newRenderFixture(t)
	report, err := f.orchestrator(workflow.Toggles{}).Render(context.Background(), f.script)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(report.Outcomes) != 2 || report.Final != f.layout.BaseVideo() {
		t.Fatalf("unexpected report %+v", report)
	}
	if f.spy.Calls() != 1 {
		t.Fatalf("expected a single encode, got %d", f.spy.Calls())
	}
}

func TestRenderContinuesPastFailures(t *testing.T) {
	f := newRenderFixture(t)
	if err := os.Remove(f.layout.TranscriptPath()); err != nil {
		t.Fatal(err)
	}

	report, err := f.orchestrator(workflow.Toggles{Subtitles: true, Music: true}).Render(context.Background(), f.script)
	if err == nil {
		t.Fatal("expected joined error")
	}
	if !errors.Is(err, services.ErrNotFound) || !strings.Contains(err.Error(), "transcription file not found") {
		t.Fatalf("unexpected error: %v", err)
	}
	failed := report.Failed()
	if len(failed) != 1 || failed[0].Stage != project.StageCaptions {
		t.Fatalf("expected only captions to fail, got %+v", failed)
	}
	// Music falls back to the base video when no captioned video exists.
	if want := project.WithSuffix(f.layout.BaseVideo(), project.MusicSuffix); report.Final != want {
		t.Fatalf("final video = %q, want %q", report.Final, want)
	}

	latest, err := f.store.Latest(context.Background(), "Deep_Sea")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest[project.StageCaptions].Status != history.StatusReview {
		t.Fatalf("missing input should land in review, got %+v", latest[project.StageCaptions])
	}
}

func TestRenderRejectsLockedProject(t *testing.T) {
	f := newRenderFixture(t)
	orch := f.orchestrator(workflow.Toggles{})

	holder := flockFor(t, f.layout.LockPath())
	defer holder()

	_, err := orch.Render(context.Background(), f.script)
	if !errors.Is(err, workflow.ErrProjectLocked) {
		t.Fatalf("expected locked error, got %v", err)
	}
	if f.spy.Calls() != 0 {
		t.Fatal("locked project must not be rendered")
	}
}

func TestRenderRejectsInvalidScript(t *testing.T) {
	f := newRenderFixture(t)
	_, err := f.orchestrator(workflow.Toggles{}).Render(context.Background(), project.Script{Title: "Empty"})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestHealthChecksFollowToggles(t *testing.T) {
	f := newRenderFixture(t)
	health := f.orchestrator(workflow.Toggles{Music: true}).HealthChecks(context.Background())
	if len(health) != 3 {
		t.Fatalf("expected 3 health records, got %+v", health)
	}
	for _, h := range health {
		if !h.Ready {
			t.Fatalf("stage %s not ready: %s", h.Name, h.Detail)
		}
	}
}
