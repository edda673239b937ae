// Package cli implements the tracekit command-line interface.
//
// Tracekit works on serialized computation graphs: `check` validates a
// graph's structural invariants, `render` draws it via Graphviz, and
// `inspect` lists or interactively browses its nodes. All commands support
// --verbose (-v) for debug-level logging; loggers are passed through
// context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tracekit/tracekit/pkg/buildinfo"
	"github.com/tracekit/tracekit/pkg/cache"
)

// appName is the application name used for directories and display.
const appName = "tracekit"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "tracekit",
		Short:        "Tracekit inspects and rewrites recorded computation graphs",
		Long:         `Tracekit is a CLI tool for working with serialized computation graphs: validating their def/use bookkeeping, applying rewrite passes, and rendering them as diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to config file (default: ~/.config/tracekit/config.toml)")

	root.AddCommand(c.checkCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())

	return root
}

// loadConfig reads the configuration honoring the --config flag.
func (c *CLI) loadConfig() (Config, error) {
	return loadConfig(c.configPath)
}

// newCache builds the artifact cache selected by cfg. Backend failures for
// the file cache degrade to a null cache so rendering still works.
func newCache(ctx context.Context, cfg CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache || cfg.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case "redis":
		return cache.NewRedisCache(ctx, cfg.RedisAddr, cfg.RedisPrefix)
	case "", "file":
		dir := cfg.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend %q (want file, redis, or none)", cfg.Backend)
	}
}

// cacheTTL converts the configured minutes to a duration.
func cacheTTL(cfg CacheConfig) time.Duration {
	return time.Duration(cfg.TTLMinutes) * time.Minute
}

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/tracekit/).
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
