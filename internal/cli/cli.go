package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindmap/pkg/buildinfo"
	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "mindmap"
)

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

	// ui receives status lines; it follows the running command's error
	// stream once the root command starts.
	ui console

	// configPath is bound to the persistent --config flag.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), ui: newConsole(w)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Mindmap lays out concept graphs as trees and exports them as images",
		Long: `Mindmap turns a concept graph (nodes and labelled edges) into a rooted tree,
lays it out top-down, and renders it as SVG, PNG, PDF, JSON or Graphviz DOT.

Long notes can be exported as paginated PNG pages with the text command.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "TOML config file (flags override its values)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		c.installLogHooks()
		c.ui = newConsole(cmd.ErrOrStderr())
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	// Register all subcommands
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.textCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadOptions returns the options from the --config file, or zero options
// when no file was given. Defaults are applied later by the pipeline.
func (c *CLI) loadOptions() (pipeline.Options, error) {
	if c.configPath == "" {
		return pipeline.Options{}, nil
	}
	opts, err := pipeline.LoadOptions(c.configPath)
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("load config: %w", err)
	}
	c.Logger.Debug("loaded config", "path", c.configPath)
	return opts, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(cfg pipeline.CacheOptions, noCache bool) (*pipeline.Runner, error) {
	cc, keyer, err := newCache(cfg, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

// newCache builds the cache backend selected by cfg. The file backend is the
// default; an unusable home directory silently disables caching.
func newCache(cfg pipeline.CacheOptions, noCache bool) (cache.Cache, cache.Keyer, error) {
	if noCache || cfg.Backend == pipeline.CacheNone {
		return cache.NewNullCache(), nil, nil
	}

	var keyer cache.Keyer
	if cfg.Prefix != "" {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), cfg.Prefix)
	}

	switch cfg.Backend {
	case pipeline.CacheRedis:
		rc, err := cache.NewRedisCache(cache.RedisOptions{URL: cfg.URL})
		if err != nil {
			return nil, nil, err
		}
		return rc, keyer, nil
	case "", pipeline.CacheFile:
		dir := cfg.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return cache.NewNullCache(), keyer, nil
			}
			dir = d
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, nil, err
		}
		return fc, keyer, nil
	default:
		return nil, nil, fmt.Errorf("invalid cache backend: %q (must be one of: none, file, redis)", cfg.Backend)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/mindmap/).
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
