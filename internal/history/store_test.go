package history_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"shortreel/internal/history"
	"shortreel/internal/testsupport"
)

func TestRecordAndList(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, stage := range []string{"timing", "compose", "captions"} {
		status := history.StatusCompleted
		if stage == "captions" {
			status = history.StatusReview
		}
		run, err := store.Record(ctx, history.Run{
			RunID:     "run-1",
			Project:   "Ocean",
			Stage:     stage,
			Status:    status,
			Output:    "/data/video/Ocean/Ocean.mp4",
			StartedAt: base.Add(time.Duration(i) * time.Minute),
			Duration:  1500 * time.Millisecond,
		})
		if err != nil {
			t.Fatalf("Record(%s): %v", stage, err)
		}
		if run.ID == 0 {
			t.Fatal("expected ID to be assigned")
		}
	}
	if _, err := store.Record(ctx, history.Run{RunID: "run-2", Project: "Other", Stage: "timing"}); err != nil {
		t.Fatalf("Record other: %v", err)
	}

	runs, err := store.List(ctx, history.ListOptions{Project: "Ocean"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if runs[0].Stage != "captions" || runs[0].Status != history.StatusReview {
		t.Fatalf("expected newest first, got %+v", runs[0])
	}
	if runs[2].Duration != 1500*time.Millisecond || !runs[2].StartedAt.Equal(base) {
		t.Fatalf("unexpected round trip: %+v", runs[2])
	}

	limited, err := store.List(ctx, history.ListOptions{Limit: 2})
	if err != nil || len(limited) != 2 {
		t.Fatalf("limited list: %d %v", len(limited), err)
	}
	byRun, err := store.List(ctx, history.ListOptions{RunID: "run-2"})
	if err != nil || len(byRun) != 1 || byRun[0].Status != history.StatusCompleted {
		t.Fatalf("run filter: %+v %v", byRun, err)
	}
}

func TestLatestPerStage(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	ctx := context.Background()
	for _, status := range []history.Status{history.StatusFailed, history.StatusCompleted} {
		if _, err := store.Record(ctx, history.Run{Project: "Ocean", Stage: "compose", Status: status}); err != nil {
			t.Fatal(err)
		}
	}
	latest, err := store.Latest(ctx, "Ocean")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest["compose"].Status != history.StatusCompleted {
		t.Fatalf("expected latest compose completed, got %+v", latest["compose"])
	}
}

func TestRecordRequiresProjectAndStage(t *testing.T) {
	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))
	if _, err := store.Record(context.Background(), history.Run{Stage: "timing"}); err == nil {
		t.Fatal("expected error without project")
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), history.DatabaseFile)
	store, err := history.OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	if _, err := history.OpenPath(path); !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}
