package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"shortreel/internal/project"
)

// WriteFile fills the target path with size bytes of a repeating pattern.
// A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = 0x42
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteJSON marshals v to path.
func WriteJSON(t testing.TB, path string, v any) {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("marshal %s: %v", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// Script returns a script whose scenes narrate the given word counts.
func Script(title string, wordCounts ...int) project.Script {
	script := project.Script{Title: title, Topic: "test"}
	for i, n := range wordCounts {
		text := ""
		for w := 0; w < n; w++ {
			if w > 0 {
				text += " "
			}
			text += fmt.Sprintf("word%d", w)
		}
		script.Scenes = append(script.Scenes, project.Scene{Order: i, Script: text, ImagePrompt: fmt.Sprintf("prompt %d", i)})
	}
	return script
}

// TimedScript returns a script with contiguous scenes of the given durations.
func TimedScript(title string, durations ...float64) project.Script {
	counts := make([]int, len(durations))
	for i := range counts {
		counts[i] = 1
	}
	script := Script(title, counts...)
	clock := 0.0
	for i, d := range durations {
		start, end := clock, clock+d
		script.Scenes[i].Start, script.Scenes[i].End = &start, &end
		clock = end
	}
	return script
}

// WriteImages creates n placeholder scene images named <order>.png.
func WriteImages(t testing.TB, layout project.Layout, n int) []string {
	t.Helper()
	paths := make([]string, n)
	for i := 0; i < n; i++ {
		paths[i] = filepath.Join(layout.ImageDir(), fmt.Sprintf("%d.png", i))
		WriteFile(t, paths[i], 16)
	}
	return paths
}

// WriteNarration creates a placeholder narration file.
func WriteNarration(t testing.TB, layout project.Layout) string {
	t.Helper()
	WriteFile(t, layout.NarrationPath(), 64)
	return layout.NarrationPath()
}

// WriteTranscript writes a transcript with the given segments.
func WriteTranscript(t testing.TB, layout project.Layout, segments ...project.Segment) string {
	t.Helper()
	WriteJSON(t, layout.TranscriptPath(), project.Transcript{Segments: segments})
	return layout.TranscriptPath()
}
