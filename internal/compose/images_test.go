package compose

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"shortreel/internal/services"
	"shortreel/internal/testsupport"
)

func TestDiscoverImagesOrdersByInteger(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"10.png", "2.png", "0.png", "1.jpg", "cover_2.png", "cover_10.png", "notes.txt", ".hidden.png"} {
		testsupport.WriteFile(t, filepath.Join(dir, name), 4)
	}

	got, err := DiscoverImages(dir)
	if err != nil {
		t.Fatalf("DiscoverImages: %v", err)
	}
	want := []string{"0.png", "1.jpg", "2.png", "10.png", "cover_2.png", "cover_10.png"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if filepath.Base(got[i]) != want[i] {
			t.Fatalf("position %d: got %s, want %s (all: %v)", i, filepath.Base(got[i]), want[i], got)
		}
	}
}

func TestDiscoverImagesMissingDir(t *testing.T) {
	_, err := DiscoverImages(filepath.Join(t.TempDir(), "absent"))
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProbeImagesKeepsOrder(t *testing.T) {
	prober := testsupport.NewFakeProber()
	paths := []string{"/i/0.png", "/i/1.png", "/i/2.png", "/i/3.png", "/i/4.png", "/i/5.png"}
	for i, p := range paths {
		prober.Set(p, testsupport.ImageResult(1000+i, 1024))
	}

	got, err := ProbeImages(context.Background(), prober, paths)
	if err != nil {
		t.Fatalf("ProbeImages: %v", err)
	}
	for i, src := range got {
		if src.Path != paths[i] || src.Width != 1000+i {
			t.Fatalf("result %d out of order: %+v", i, src)
		}
	}
	if prober.Calls() != len(paths) {
		t.Fatalf("expected %d probes, got %d", len(paths), prober.Calls())
	}
}

func TestProbeImagesRejectsNonImage(t *testing.T) {
	prober := testsupport.NewFakeProber().Set("/i/0.png", testsupport.AudioResult(3))
	_, err := ProbeImages(context.Background(), prober, []string{"/i/0.png"})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
