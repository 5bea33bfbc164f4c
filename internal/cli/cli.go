// Package cli implements the gridviz command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridviz/internal/config"
	"github.com/matzehuels/gridviz/pkg/buildinfo"
	"github.com/matzehuels/gridviz/pkg/cache"
	"github.com/matzehuels/gridviz/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "gridviz"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag value, empty for the XDG default.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "gridviz",
		Short:        "Gridviz animates agent plans on grid maps",
		Long:         `Gridviz renders a solved grid-world plan (an agent path plus box trajectories) as a looping GIF animation, a final-state PNG, an ASCII trace, or a Graphviz solution tree.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: XDG config dir)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configured (or default) config file.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, c.Logger), nil
}

func newCache(cfg config.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Disabled {
		return cache.NewNullCache(), nil
	}
	if cfg.Redis != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return cache.NewRedisCache(ctx, cfg.Redis)
	}
	dir := cfg.Dir
	if dir == "" {
		var err error
		dir, err = cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/gridviz/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatGIF, pipeline.FormatPNG}
	}
	return strings.Split(s, ",")
}
