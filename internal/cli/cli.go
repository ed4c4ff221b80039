// Package cli implements the plotwire command-line interface.
//
// This package provides commands for building interactive figures from
// tabular data files, laying out clustering trees, rendering static tree
// snapshots, serving figure previews over HTTP, and managing the artifact
// cache. The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - build: Assemble a figure from a CSV or JSON data file
//   - dendro: Lay out a hierarchical clustering tree as a figure
//   - snapshot: Render a static SVG or PNG of a clustering tree
//   - serve: Preview a figure in the browser
//   - inspect: Browse the resolved traces of a figure interactively
//   - cache: Manage the rendered-artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/plotwire/plotwire/pkg/buildinfo"
	"github.com/plotwire/plotwire/pkg/cache"
	"github.com/plotwire/plotwire/pkg/config"
)

// ===== Constants =====

// appName is the application name used for directories and display.
const appName = "plotwire"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// ===== CLI - Central CLI State =====

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
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
		Use:          appName,
		Short:        "Plotwire binds tabular data to interactive figures",
		Long:         `Plotwire is a CLI tool for turning tabular data and column mappings into declarative chart descriptions, rendered as self-contained HTML widgets or raw figure JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Attach the shared logger so commands can use loggerFromContext.
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.dendroCommand())
	root.AddCommand(c.snapshotCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// ===== Cache Factory =====

// newCache opens the cache backend selected by configuration. Cache setup
// failures degrade to the null cache so figure building never blocks on a
// broken cache.
func (c *CLI) newCache(cmd *cobra.Command, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}

	cfg, err := config.LoadDefault()
	if err != nil {
		c.Logger.Warn("config unreadable, caching disabled", "err", err)
		return cache.NewNullCache()
	}

	if cfg.Cache.Redis != "" {
		rc, err := cache.NewRedisCache(cmd.Context(), cfg.Cache.Redis)
		if err == nil {
			return cache.Instrument(rc)
		}
		c.Logger.Warn("redis unreachable, falling back to file cache",
			"addr", cfg.Cache.Redis, "err", err)
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		if dir, err = config.DefaultCacheDir(); err != nil {
			c.Logger.Warn("no cache dir, caching disabled", "err", err)
			return cache.NewNullCache()
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache dir unusable, caching disabled", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	return cache.Instrument(fc)
}

// cacheTTL returns the configured artifact lifetime.
func cacheTTL() time.Duration {
	cfg, err := config.LoadDefault()
	if err != nil {
		return config.DefaultCacheTTL
	}
	d, err := cfg.Cache.TTLDuration()
	if err != nil {
		return config.DefaultCacheTTL
	}
	return d
}
