package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"shortreel/internal/textutil"
)

// SanitizeTitle is the artifact-path form of a title.
func SanitizeTitle(title string) string {
	return textutil.SanitizeTitle(title)
}

// Video name suffixes. Music is always applied after subtitles.
const (
	SubtitleSuffix = "_sub"
	MusicSuffix    = "_music"
)

// Layout resolves every artifact path of one project.
//
//	<data>/image/<t>/<order>.png
//	<data>/audio/<t>/<t>.mp3
//	<data>/transcription/<t>/<t>.json
//	<data>/JSON/<t>/<t>.json
//	<data>/video/<t>/<t>.mp4 (+ _sub, _music, _sub_music)
type Layout struct {
	DataDir string
	Name    string // sanitized title
}

// NewLayout builds the layout for a raw script title.
func NewLayout(dataDir, title string) Layout {
	return Layout{DataDir: dataDir, Name: SanitizeTitle(title)}
}

func (l Layout) dir(kind string) string {
	return filepath.Join(l.DataDir, kind, l.Name)
}

// ImageDir holds the scene images.
func (l Layout) ImageDir() string { return l.dir("image") }

// NarrationPath is the narration audio.
func (l Layout) NarrationPath() string {
	return filepath.Join(l.dir("audio"), l.Name+".mp3")
}

// TranscriptPath is the word-level transcript.
func (l Layout) TranscriptPath() string {
	return filepath.Join(l.dir("transcription"), l.Name+".json")
}

// ScriptPath is the timed script.
func (l Layout) ScriptPath() string {
	return filepath.Join(l.dir("JSON"), l.Name+".json")
}

// VideoDir holds every rendered video of the project.
func (l Layout) VideoDir() string { return l.dir("video") }

// BaseVideo is the composed scene video.
func (l Layout) BaseVideo() string {
	return filepath.Join(l.VideoDir(), l.Name+".mp4")
}

// SubtitledVideo is the base video with captions burned in.
func (l Layout) SubtitledVideo() string {
	return WithSuffix(l.BaseVideo(), SubtitleSuffix)
}

// MusicVideo is the music-mixed variant of input.
func (l Layout) MusicVideo(input string) string {
	return WithSuffix(input, MusicSuffix)
}

// LockPath guards concurrent renders of the same project.
func (l Layout) LockPath() string {
	return filepath.Join(l.VideoDir(), ".render.lock")
}

// LogPath is the per-project render log.
func (l Layout) LogPath() string {
	return filepath.Join(l.VideoDir(), "render.log")
}

// Ensure creates the per-project artifact directories.
func (l Layout) Ensure() error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("project layout has no name")
	}
	for _, kind := range []string{"image", "audio", "transcription", "JSON", "video"} {
		if err := os.MkdirAll(l.dir(kind), 0o755); err != nil {
			return fmt.Errorf("create %s directory: %w", kind, err)
		}
	}
	return nil
}

// WithSuffix inserts suffix before the extension of path.
func WithSuffix(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}
