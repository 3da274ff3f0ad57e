package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir  string `toml:"data_dir"`
	LogDir   string `toml:"log_dir"`
	MusicDir string `toml:"music_dir"` // Default: <data_dir>/music
	FontFile string `toml:"font_file"` // Optional TTF used for captions
	FontName string `toml:"font_name"` // Fontconfig family used when font_file is empty
}

// Render contains encoder targets for the composed scene video.
type Render struct {
	FPS              int     `toml:"fps"`
	CrossfadeSeconds float64 `toml:"crossfade_seconds"`
	// Width and Height force the output frame. Zero derives the frame from the
	// first image's crop window.
	Width        int    `toml:"width"`
	Height       int    `toml:"height"`
	AspectWidth  int    `toml:"aspect_width"`
	AspectHeight int    `toml:"aspect_height"`
	VideoCodec   string `toml:"video_codec"`
	AudioCodec   string `toml:"audio_codec"`
	PixelFormat  string `toml:"pixel_format"`
	Preset       string `toml:"preset"`
}

// Subtitles contains caption styling for the word-by-word overlay.
type Subtitles struct {
	Enabled          bool    `toml:"enabled"`
	FontSize         int     `toml:"font_size"`
	Color            string  `toml:"color"`
	StrokeColor      string  `toml:"stroke_color"`
	StrokeWidth      int     `toml:"stroke_width"`
	ShadowOffset     int     `toml:"shadow_offset"`
	VerticalPosition float64 `toml:"vertical_position"` // Fraction of frame height
}

// Music contains configuration for the background music bed.
type Music struct {
	Enabled    bool     `toml:"enabled"`
	Volume     float64  `toml:"volume"`
	Extensions []string `toml:"extensions"`
}

// Tools names the external binaries.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for shortreel.
//
// Configuration sections by subsystem:
//   - Paths: data directory layout root, logs, music pool, caption font
//   - Render: frame rate, crossfade, output frame, codecs
//   - Subtitles: caption styling and placement
//   - Music: background bed gain and track pool filter
//   - Tools: ffmpeg/ffprobe binaries
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Render    Render    `toml:"render"`
	Subtitles Subtitles `toml:"subtitles"`
	Music     Music     `toml:"music"`
	Tools     Tools     `toml:"tools"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/shortreel/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("shortreel.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log directory and the data directory tree.
// Per-title directories are created by the stages that write into them.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir, c.Paths.DataDir, c.Paths.MusicDir}
	for _, sub := range DataSubdirs {
		dirs = append(dirs, filepath.Join(c.Paths.DataDir, sub))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DataSubdirs lists the artifact directories beneath the data directory.
var DataSubdirs = []string{"video", "image", "audio", "JSON", "transcription", "music"}

// FFmpegBinary returns the ffmpeg executable used for every encode.
func (c *Config) FFmpegBinary() string {
	if bin := strings.TrimSpace(c.Tools.FFmpeg); bin != "" {
		return bin
	}
	return defaultFFmpegBinary
}

// FFprobeBinary returns the ffprobe executable used for media inspection.
func (c *Config) FFprobeBinary() string {
	if bin := strings.TrimSpace(c.Tools.FFprobe); bin != "" {
		return bin
	}
	return defaultFFprobeBinary
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
