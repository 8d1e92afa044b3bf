// Package cli implements the sparklines command-line interface.
//
// # Commands
//
//   - render: draw a series to SVG, JSON, PNG or PDF
//   - serve: render sparklines over HTTP
//   - explore: move a pointer across a chart in the terminal
//   - cache: manage the artifact cache
//
// All commands support --verbose (-v) for debug-level logging. The logger
// travels through context.Context.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sparklines/pkg/buildinfo"
	"github.com/matzehuels/sparklines/pkg/cache"
	"github.com/matzehuels/sparklines/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "sparklines"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

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
		Use:           appName,
		Short:         "Sparklines draws small word-sized charts",
		Long:          `Sparklines renders compact line, column and win/loss charts from a series of values, as SVG documents or derived formats.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Cache selection
// =============================================================================

// Environment defaults for the cache flags.
const (
	envCacheDir = "SPARKLINES_CACHE_DIR"
	envRedis    = "SPARKLINES_REDIS"
)

// cacheOpts picks the artifact store: nothing, redis or the file cache.
type cacheOpts struct {
	noCache bool
	redis   string
}

func (o *cacheOpts) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVar(&o.noCache, "no-cache", false, "render without reading or writing the artifact cache")
	f.StringVar(&o.redis, "redis", os.Getenv(envRedis), "share artifacts through redis at `addr` (env "+envRedis+")")
	cmd.MarkFlagsMutuallyExclusive("no-cache", "redis")
}

func (o cacheOpts) open(ctx context.Context) (cache.Cache, error) {
	if o.noCache {
		return cache.NewNullCache(), nil
	}
	if o.redis != "" {
		return cache.NewRedisCache(ctx, o.redis)
	}
	dir, err := cacheDir()
	if err != nil {
		// No home directory: run uncached rather than fail.
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newRunner wires the selected cache, scoped to this build, into a runner.
func (c *CLI) newRunner(ctx context.Context, o cacheOpts) (*pipeline.Runner, error) {
	store, err := o.open(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache.NewScopedCache(store, buildinfo.CacheScope()), c.Logger), nil
}

// cacheDir resolves the file cache root: $SPARKLINES_CACHE_DIR, then
// $XDG_CACHE_HOME/sparklines, then ~/.cache/sparklines.
func cacheDir() (string, error) {
	if dir := os.Getenv(envCacheDir); dir != "" {
		return dir, nil
	}
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, appName), nil
}
