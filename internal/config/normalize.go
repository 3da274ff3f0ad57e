package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRender()
	c.normalizeSubtitles()
	c.normalizeMusic()
	c.normalizeTools()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := lookupEnv("SHORTREEL_DATA_DIR"); ok {
		c.Paths.DataDir = value
	}
	if value, ok := lookupEnv("SHORTREEL_FONT"); ok {
		c.Paths.FontFile = value
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}

	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.MusicDir) == "" {
		c.Paths.MusicDir = filepath.Join(c.Paths.DataDir, "music")
	}
	if c.Paths.MusicDir, err = expandPath(c.Paths.MusicDir); err != nil {
		return fmt.Errorf("paths.music_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.FontFile) != "" {
		if c.Paths.FontFile, err = expandPath(c.Paths.FontFile); err != nil {
			return fmt.Errorf("paths.font_file: %w", err)
		}
	}
	c.Paths.FontName = strings.TrimSpace(c.Paths.FontName)
	if c.Paths.FontName == "" {
		c.Paths.FontName = defaultFontName
	}
	return nil
}

func (c *Config) normalizeRender() {
	c.Render.VideoCodec = strings.TrimSpace(c.Render.VideoCodec)
	if c.Render.VideoCodec == "" {
		c.Render.VideoCodec = defaultVideoCodec
	}
	c.Render.AudioCodec = strings.TrimSpace(c.Render.AudioCodec)
	if c.Render.AudioCodec == "" {
		c.Render.AudioCodec = defaultAudioCodec
	}
	c.Render.PixelFormat = strings.TrimSpace(c.Render.PixelFormat)
	if c.Render.PixelFormat == "" {
		c.Render.PixelFormat = defaultPixelFormat
	}
	c.Render.Preset = strings.TrimSpace(c.Render.Preset)
}

func (c *Config) normalizeSubtitles() {
	c.Subtitles.Color = strings.TrimSpace(c.Subtitles.Color)
	if c.Subtitles.Color == "" {
		c.Subtitles.Color = defaultCaptionColor
	}
	c.Subtitles.StrokeColor = strings.TrimSpace(c.Subtitles.StrokeColor)
	if c.Subtitles.StrokeColor == "" {
		c.Subtitles.StrokeColor = defaultStrokeColor
	}
}

func (c *Config) normalizeMusic() {
	seen := make(map[string]struct{}, len(c.Music.Extensions))
	exts := make([]string, 0, len(c.Music.Extensions))
	for _, ext := range c.Music.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		exts = []string{".mp3"}
	}
	c.Music.Extensions = exts
}

func (c *Config) normalizeTools() {
	if value, ok := lookupEnv("SHORTREEL_FFMPEG"); ok {
		c.Tools.FFmpeg = value
	}
	if value, ok := lookupEnv("SHORTREEL_FFPROBE"); ok {
		c.Tools.FFprobe = value
	}
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = defaultFFmpegBinary
	}
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = defaultFFprobeBinary
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}
