package workflow

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"shortreel/internal/config"
	"shortreel/internal/logging"
)

// projectLogger tees base into the project's render.log. The returned closer
// must be closed when the render ends. Without a log path the base logger is
// returned unchanged.
func projectLogger(cfg *config.Config, base *slog.Logger, path string) (*slog.Logger, io.Closer, error) {
	if base == nil {
		base = logging.NewNop()
	}
	if strings.TrimSpace(path) == "" {
		return base, nopCloser{}, nil
	}
	format, level := "json", "info"
	if cfg != nil {
		if f := strings.TrimSpace(cfg.Logging.Format); f != "" {
			format = f
		}
		if l := strings.TrimSpace(cfg.Logging.Level); l != "" {
			level = l
		}
	}
	handler, closer, err := logging.NewFileHandler(path, format, level)
	if err != nil {
		return base, nopCloser{}, fmt.Errorf("project log: %w", err)
	}
	return logging.TeeLogger(base, handler), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
