package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"shortreel/internal/config"
	"shortreel/internal/history"
	"shortreel/internal/logging"
	"shortreel/internal/media/encode"
	"shortreel/internal/media/ffprobe"
	"shortreel/internal/project"
)

// runtimeDeps replaces the external tools, for tests. Zero values use the
// configured ffprobe and ffmpeg binaries.
type runtimeDeps struct {
	prober ffprobe.Prober
	run    encode.CommandRunner
}

type commandContext struct {
	configFlag   *string
	logLevelFlag *string
	deps         runtimeDeps

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	store *history.Store
}

func newCommandContext(configFlag, logLevelFlag *string, deps runtimeDeps) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		deps:         deps,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.TrimSpace(*c.logLevelFlag); level != "" {
				cfg.Logging.Level = level
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func (c *commandContext) loggerValue() *slog.Logger {
	c.loggerOnce.Do(func() {
		logger, err := logging.NewFromConfig(c.configValue())
		if err != nil {
			fmt.Fprintf(os.Stderr, "logging unavailable: %v\n", err)
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) prober() ffprobe.Prober {
	if c.deps.prober != nil {
		return c.deps.prober
	}
	return ffprobe.NewCLI(c.configValue().FFprobeBinary())
}

func (c *commandContext) runner() *encode.Runner {
	return encode.NewRunner(c.configValue().FFmpegBinary(), c.loggerValue()).WithCommandRunner(c.deps.run)
}

func (c *commandContext) historyStore() (*history.Store, error) {
	if c.store != nil {
		return c.store, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := history.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	c.store = store
	return store, nil
}

func (c *commandContext) close() {
	if c.store != nil {
		_ = c.store.Close()
		c.store = nil
	}
}

// scriptFlags selects the project a command works on.
type scriptFlags struct {
	path  string
	title string
}

func (f *scriptFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.path, "script", "s", "", "Path to the script JSON")
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "Project title; reads the saved script from the data directory")
}

// load reads the script named by --script, or the saved script for --title.
func (f *scriptFlags) load(cfg *config.Config) (project.Script, error) {
	path := strings.TrimSpace(f.path)
	if path == "" {
		title := strings.TrimSpace(f.title)
		if title == "" {
			return project.Script{}, errors.New("either --script or --title is required")
		}
		path = project.NewLayout(cfg.Paths.DataDir, title).ScriptPath()
	} else {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return project.Script{}, fmt.Errorf("resolve script path: %w", err)
		}
		path = expanded
	}
	script, err := project.LoadScript(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return project.Script{}, fmt.Errorf("script not found at %s", path)
		}
		return project.Script{}, err
	}
	return script, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
