package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func sampleScript() Script {
	return Script{
		Title: "Deep Sea: Giants",
		Topic: "ocean",
		Scenes: []Scene{
			{Order: 0, Script: "one two three four", ImagePrompt: "a whale"},
			{Order: 1, Script: "five six seven eight nine ten", ImagePrompt: "a squid"},
		},
	}
}

func TestLayoutPaths(t *testing.T) {
	l := NewLayout("/data", "Deep Sea: Giants")
	if l.Name != "Deep_Sea_Giants" {
		t.Fatalf("unexpected name %q", l.Name)
	}
	tests := map[string]string{
		l.ImageDir():                     "/data/image/Deep_Sea_Giants",
		l.NarrationPath():                "/data/audio/Deep_Sea_Giants/Deep_Sea_Giants.mp3",
		l.TranscriptPath():               "/data/transcription/Deep_Sea_Giants/Deep_Sea_Giants.json",
		l.ScriptPath():                   "/data/JSON/Deep_Sea_Giants/Deep_Sea_Giants.json",
		l.BaseVideo():                    "/data/video/Deep_Sea_Giants/Deep_Sea_Giants.mp4",
		l.SubtitledVideo():               "/data/video/Deep_Sea_Giants/Deep_Sea_Giants_sub.mp4",
		l.MusicVideo(l.BaseVideo()):      "/data/video/Deep_Sea_Giants/Deep_Sea_Giants_music.mp4",
		l.MusicVideo(l.SubtitledVideo()): "/data/video/Deep_Sea_Giants/Deep_Sea_Giants_sub_music.mp4",
		l.LockPath():                     "/data/video/Deep_Sea_Giants/.render.lock",
	}
	for got, want := range tests {
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

func TestLayoutEnsure(t *testing.T) {
	l := NewLayout(t.TempDir(), "Ocean")
	if err := l.Ensure(); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	for _, dir := range []string{l.ImageDir(), l.VideoDir(), filepath.Dir(l.ScriptPath())} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", dir, err)
		}
	}
	if err := (Layout{DataDir: t.TempDir()}).Ensure(); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestScriptValidate(t *testing.T) {
	if err := sampleScript().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := (Script{Title: " ", Scenes: []Scene{{}}}).Validate(); err == nil {
		t.Fatal("expected error for blank title")
	}
	if err := (Script{Title: "x"}).Validate(); err == nil {
		t.Fatal("expected error for no scenes")
	}
}

func TestSaveScriptRoundTripAndSkip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "JSON", "Ocean", "Ocean.json")
	script := sampleScript()
	script.Scenes[0].Start, script.Scenes[0].End = ptr(0), ptr(8)
	script.Scenes[1].Start, script.Scenes[1].End = ptr(8), ptr(20)

	changed, err := SaveScript(path, script)
	if err != nil || !changed {
		t.Fatalf("first save: changed=%v err=%v", changed, err)
	}
	changed, err = SaveScript(path, script)
	if err != nil || changed {
		t.Fatalf("second save should be a no-op: changed=%v err=%v", changed, err)
	}

	loaded, err := LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	durations, err := loaded.Durations()
	if err != nil {
		t.Fatalf("Durations: %v", err)
	}
	if durations[0] != 8 || durations[1] != 12 {
		t.Fatalf("unexpected durations %v", durations)
	}
	raw, _ := os.ReadFile(path)
	if !strings.Contains(string(raw), `"image_prompt": "a whale"`) {
		t.Fatalf("expected indented keys, got %s", raw)
	}
}

func TestUntimedSceneOmitsTiming(t *testing.T) {
	data, err := sampleScript().Encode()
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `"start"`) {
		t.Fatalf("untimed scenes should omit start: %s", data)
	}
	if _, err := sampleScript().Durations(); err == nil {
		t.Fatal("expected error for untimed durations")
	}
}

func TestLoadTranscript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.json")
	doc := `{"text":"hi there","segments":[{"word":"hi","start":0,"end":0.4},{"word":"there","start":0.4,"end":0.9}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	tr, err := LoadTranscript(path)
	if err != nil {
		t.Fatalf("LoadTranscript: %v", err)
	}
	if len(tr.Segments) != 2 || tr.Segments[1].Word != "there" || tr.Segments[1].End != 0.9 {
		t.Fatalf("unexpected transcript %+v", tr)
	}
}

func TestStateOwnership(t *testing.T) {
	state := NewState("/data", sampleScript())
	if state.Version != 1 {
		t.Fatalf("expected version 1, got %d", state.Version)
	}

	timed := sampleScript().Clone().Scenes
	timed[0].Start, timed[0].End = ptr(0), ptr(8)
	timed[1].Start, timed[1].End = ptr(8), ptr(20)
	if err := state.SetTiming(timed); err != nil {
		t.Fatalf("SetTiming: %v", err)
	}
	if state.Version != 2 || !state.Script.Timed() {
		t.Fatalf("expected timed script at version 2, got %d", state.Version)
	}
	*timed[0].End = 99
	if *state.Script.Scenes[0].End != 8 {
		t.Fatal("state must not alias caller scenes")
	}

	tampered := state.Script.Clone().Scenes
	tampered[1].Script = "rewritten"
	if err := state.SetTiming(tampered); !errors.Is(err, ErrStateConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	state.SetBaseVideo("/v/base.mp4")
	if state.LatestVideo() != "/v/base.mp4" {
		t.Fatalf("unexpected latest %q", state.LatestVideo())
	}
	state.SetSubtitledVideo("/v/base_sub.mp4")
	state.SetFinalVideo("/v/base_sub_music.mp4")
	if state.LatestVideo() != "/v/base_sub_music.mp4" || state.Version != 5 {
		t.Fatalf("unexpected state %+v", state)
	}
}
