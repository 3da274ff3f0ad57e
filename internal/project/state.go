package project

import (
	"errors"
	"fmt"
)

// Stage names own disjoint parts of State.
const (
	StageTiming   = "timing"
	StageCompose  = "compose"
	StageCaptions = "captions"
	StageMusic    = "music"
)

// ErrStateConflict is returned when a stage writes a field it does not own.
var ErrStateConflict = errors.New("project state conflict")

// State is the project state threaded through one render. The orchestrator
// owns it; stages change it only through the setters below, each of which
// bumps Version.
type State struct {
	Version        int
	Script         Script
	Layout         Layout
	BaseVideo      string
	SubtitledVideo string
	FinalVideo     string
}

// NewState returns a State at version 1 for script rooted at dataDir.
func NewState(dataDir string, script Script) *State {
	return &State{
		Version: 1,
		Script:  script.Clone(),
		Layout:  NewLayout(dataDir, script.Title),
	}
}

// SetTiming replaces the scene timing. Only start and end may differ from the
// current scenes.
func (s *State) SetTiming(scenes []Scene) error {
	if len(scenes) != len(s.Script.Scenes) {
		return fmt.Errorf("%w: timing has %d scenes, script has %d", ErrStateConflict, len(scenes), len(s.Script.Scenes))
	}
	for i, scene := range scenes {
		current := s.Script.Scenes[i]
		if scene.Order != current.Order || scene.Script != current.Script || scene.ImagePrompt != current.ImagePrompt {
			return fmt.Errorf("%w: timing changed scene %d content", ErrStateConflict, i)
		}
	}
	next := Script{Scenes: scenes}.Clone().Scenes
	s.Script.Scenes = next
	s.Version++
	return nil
}

// SetBaseVideo records the composed video.
func (s *State) SetBaseVideo(path string) {
	s.BaseVideo = path
	s.Version++
}

// SetSubtitledVideo records the captioned video.
func (s *State) SetSubtitledVideo(path string) {
	s.SubtitledVideo = path
	s.Version++
}

// SetFinalVideo records the music-mixed video.
func (s *State) SetFinalVideo(path string) {
	s.FinalVideo = path
	s.Version++
}

// LatestVideo is the most processed video produced so far.
func (s *State) LatestVideo() string {
	switch {
	case s.FinalVideo != "":
		return s.FinalVideo
	case s.SubtitledVideo != "":
		return s.SubtitledVideo
	default:
		return s.BaseVideo
	}
}
