package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"shortreel/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, "shortreel", "data")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.MusicDir != filepath.Join(wantData, "music") {
		t.Fatalf("unexpected music dir: %q", cfg.Paths.MusicDir)
	}
	if cfg.Render.FPS != 24 {
		t.Fatalf("unexpected fps: %d", cfg.Render.FPS)
	}
	if cfg.Render.CrossfadeSeconds != 1.0 {
		t.Fatalf("unexpected crossfade: %v", cfg.Render.CrossfadeSeconds)
	}
	if cfg.Music.Volume != 0.2 {
		t.Fatalf("unexpected music volume: %v", cfg.Music.Volume)
	}
	if !cfg.Subtitles.Enabled || !cfg.Music.Enabled {
		t.Fatal("expected subtitles and music enabled by default")
	}
	if cfg.FFmpegBinary() != "ffmpeg" || cfg.FFprobeBinary() != "ffprobe" {
		t.Fatalf("unexpected tool binaries: %q %q", cfg.FFmpegBinary(), cfg.FFprobeBinary())
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, sub := range config.DataSubdirs {
		dir := filepath.Join(cfg.Paths.DataDir, sub)
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "shortreel.toml")

	type payload struct {
		Paths struct {
			DataDir string `toml:"data_dir"`
		} `toml:"paths"`
		Render struct {
			FPS              int     `toml:"fps"`
			CrossfadeSeconds float64 `toml:"crossfade_seconds"`
		} `toml:"render"`
		Music struct {
			Extensions []string `toml:"extensions"`
		} `toml:"music"`
	}
	custom := payload{}
	custom.Paths.DataDir = filepath.Join(tempDir, "data")
	custom.Render.FPS = 30
	custom.Render.CrossfadeSeconds = 0.5
	custom.Music.Extensions = []string{"MP3", ".wav", "mp3"}
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Render.FPS != 30 {
		t.Fatalf("expected fps 30, got %d", cfg.Render.FPS)
	}
	if cfg.Render.CrossfadeSeconds != 0.5 {
		t.Fatalf("expected crossfade 0.5, got %v", cfg.Render.CrossfadeSeconds)
	}
	if strings.Join(cfg.Music.Extensions, ",") != ".mp3,.wav" {
		t.Fatalf("unexpected normalized extensions: %v", cfg.Music.Extensions)
	}
	if cfg.Paths.MusicDir != filepath.Join(tempDir, "data", "music") {
		t.Fatalf("unexpected music dir: %q", cfg.Paths.MusicDir)
	}
}

func TestEnvOverridesDataDirAndTools(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("SHORTREEL_DATA_DIR", filepath.Join(tempDir, "env-data"))
	t.Setenv("SHORTREEL_FFMPEG", "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv("SHORTREEL_FFPROBE", "/opt/ffmpeg/bin/ffprobe")

	cfg, _, _, err := config.Load(filepath.Join(tempDir, "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.DataDir != filepath.Join(tempDir, "env-data") {
		t.Errorf("expected data dir from env, got %q", cfg.Paths.DataDir)
	}
	if cfg.FFmpegBinary() != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("expected ffmpeg from env, got %q", cfg.FFmpegBinary())
	}
	if cfg.FFprobeBinary() != "/opt/ffmpeg/bin/ffprobe" {
		t.Errorf("expected ffprobe from env, got %q", cfg.FFprobeBinary())
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if !strings.Contains(cfg.Paths.DataDir, "shortreel") {
		t.Fatalf("expected data dir to contain shortreel, got %q", cfg.Paths.DataDir)
	}
	if cfg.Music.Volume != config.Default().Music.Volume {
		t.Fatalf("sample music volume drifted from defaults: %v", cfg.Music.Volume)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero fps", func(c *config.Config) { c.Render.FPS = 0 }},
		{"negative crossfade", func(c *config.Config) { c.Render.CrossfadeSeconds = -1 }},
		{"width without height", func(c *config.Config) { c.Render.Width = 720 }},
		{"odd frame", func(c *config.Config) { c.Render.Width, c.Render.Height = 721, 1280 }},
		{"zero aspect", func(c *config.Config) { c.Render.AspectWidth = 0 }},
		{"zero font size", func(c *config.Config) { c.Subtitles.FontSize = 0 }},
		{"position out of range", func(c *config.Config) { c.Subtitles.VerticalPosition = 1.5 }},
		{"negative volume", func(c *config.Config) { c.Music.Volume = -0.1 }},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "xml" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
