// Package cli implements the newton command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/willbeason/newton-fractal/pkg/buildinfo"
	"github.com/willbeason/newton-fractal/pkg/cache"
	"github.com/willbeason/newton-fractal/pkg/config"
	"github.com/willbeason/newton-fractal/pkg/pipeline"
)

// appName names the cache directory.
const appName = "newton"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	verbose bool
}

// New creates a CLI logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root command with every subcommand registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "newton",
		Short: "Render Newton fractals",
		Long: `Newton colors each point of a rectangle of the complex plane by the root of a
polynomial that Newton's method reaches from it.`,
		Version: buildinfo.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())

	return root
}

// loadConfig reads path on top of the defaults, or returns the defaults if
// path is empty.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func (c *CLI) newRunner(ctx context.Context, cc config.Cache, noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(ctx, cc, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, newKeyer(cc), loggerFromContext(ctx)), nil
}

// newKeyer returns nil, the pipeline default, unless the job sets a key
// prefix.
func newKeyer(cc config.Cache) cache.Keyer {
	if cc.KeyPrefix == "" {
		return nil
	}
	return cache.NewScopedKeyer(nil, cc.KeyPrefix)
}

// newCache picks the cache backend: none, Redis if an address is set, and
// otherwise a file cache.
func newCache(ctx context.Context, cc config.Cache, noCache bool) (cache.Cache, error) {
	if noCache || cc.Disabled {
		return cache.NewNullCache(), nil
	}
	if cc.RedisAddr != "" {
		return cache.NewRedisCache(ctx, cc.RedisAddr, cache.DefaultRedisPrefix)
	}

	dir, err := fileCacheDir(cc.Dir)
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// fileCacheDir returns dir, or cacheDir if dir is empty.
func fileCacheDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using the XDG convention
// (~/.cache/newton/).
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
