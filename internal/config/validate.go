package config

import (
	"errors"
	"fmt"
	"math"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validateSubtitles(); err != nil {
		return err
	}
	if err := c.validateMusic(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateRender() error {
	if c.Render.FPS <= 0 {
		return errors.New("render.fps must be positive")
	}
	if c.Render.CrossfadeSeconds < 0 || math.IsNaN(c.Render.CrossfadeSeconds) {
		return errors.New("render.crossfade_seconds must be zero or positive")
	}
	if c.Render.Width < 0 || c.Render.Height < 0 {
		return errors.New("render.width and render.height must not be negative")
	}
	if (c.Render.Width == 0) != (c.Render.Height == 0) {
		return errors.New("render.width and render.height must be set together")
	}
	if c.Render.Width%2 != 0 || c.Render.Height%2 != 0 {
		return fmt.Errorf("render frame %dx%d must use even dimensions", c.Render.Width, c.Render.Height)
	}
	if c.Render.AspectWidth <= 0 || c.Render.AspectHeight <= 0 {
		return errors.New("render.aspect_width and render.aspect_height must be positive")
	}
	return nil
}

func (c *Config) validateSubtitles() error {
	if c.Subtitles.FontSize <= 0 {
		return errors.New("subtitles.font_size must be positive")
	}
	if c.Subtitles.StrokeWidth < 0 {
		return errors.New("subtitles.stroke_width must not be negative")
	}
	if c.Subtitles.VerticalPosition < 0 || c.Subtitles.VerticalPosition > 1 {
		return errors.New("subtitles.vertical_position must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateMusic() error {
	if c.Music.Volume < 0 || math.IsNaN(c.Music.Volume) {
		return errors.New("music.volume must be zero or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
