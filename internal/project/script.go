package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"shortreel/internal/fileutil"
)

// Scene is one narrated segment of the script, illustrated by one image.
// Start and End are nil until the timing stage has run.
type Scene struct {
	Order       int      `json:"order"`
	Script      string   `json:"script"`
	ImagePrompt string   `json:"image_prompt"`
	Start       *float64 `json:"start,omitempty"`
	End         *float64 `json:"end,omitempty"`
}

// Timed reports whether the scene carries a start and end time.
func (s Scene) Timed() bool {
	return s.Start != nil && s.End != nil
}

// Duration returns End-Start, or false when the scene is untimed.
func (s Scene) Duration() (float64, bool) {
	if !s.Timed() {
		return 0, false
	}
	return *s.End - *s.Start, true
}

// Script is the generated video script.
type Script struct {
	Title       string  `json:"title"`
	Topic       string  `json:"topic,omitempty"`
	Description string  `json:"description,omitempty"`
	Scenes      []Scene `json:"scenes"`
}

// Validate checks the fields every stage depends on.
func (s Script) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return errors.New("script title is empty")
	}
	if strings.TrimSpace(SanitizeTitle(s.Title)) == "" {
		return fmt.Errorf("script title %q has no usable characters", s.Title)
	}
	if len(s.Scenes) == 0 {
		return errors.New("script has no scenes")
	}
	return nil
}

// Timed reports whether every scene has been timed.
func (s Script) Timed() bool {
	if len(s.Scenes) == 0 {
		return false
	}
	for _, scene := range s.Scenes {
		if !scene.Timed() {
			return false
		}
	}
	return true
}

// Durations returns the per-scene durations in script order.
func (s Script) Durations() ([]float64, error) {
	out := make([]float64, len(s.Scenes))
	for i, scene := range s.Scenes {
		d, ok := scene.Duration()
		if !ok {
			return nil, fmt.Errorf("scene %d has no timing", i)
		}
		out[i] = d
	}
	return out, nil
}

// Clone returns a deep copy so stages can mutate timing without aliasing.
func (s Script) Clone() Script {
	out := s
	out.Scenes = make([]Scene, len(s.Scenes))
	for i, scene := range s.Scenes {
		out.Scenes[i] = scene
		if scene.Start != nil {
			v := *scene.Start
			out.Scenes[i].Start = &v
		}
		if scene.End != nil {
			v := *scene.End
			out.Scenes[i].End = &v
		}
	}
	return out
}

// LoadScript reads a Script JSON document.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, err
	}
	var script Script
	if err := json.Unmarshal(data, &script); err != nil {
		return Script{}, fmt.Errorf("parse script %s: %w", path, err)
	}
	return script, nil
}

// Encode renders the script the way it is persisted: indented, non-ASCII kept.
func (s Script) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveScript writes the script atomically. It reports false without touching
// the file when the stored bytes already match.
func SaveScript(path string, s Script) (bool, error) {
	data, err := s.Encode()
	if err != nil {
		return false, fmt.Errorf("encode script: %w", err)
	}
	if fileutil.SameContent(path, data) {
		return false, nil
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
