// Package pipeline renders jobs to encoded images, reusing cached results.
//
// Both the CLI and the HTTP server go through a Runner so that they share
// cache keys: an image rendered by one is a cache hit for the other.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/willbeason/newton-fractal/pkg/cache"
	"github.com/willbeason/newton-fractal/pkg/config"
	"github.com/willbeason/newton-fractal/pkg/fractal"
	"github.com/willbeason/newton-fractal/pkg/sink"
)

// Runner renders jobs through a cache. It holds no per-job state and may be
// used from several goroutines.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner fills nil arguments with a NullCache, DefaultKeyer and
// log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Options control a single Execute call.
type Options struct {
	// Format is the encoding; see sink.Formats. Empty means the format of
	// the job's output path.
	Format string

	// Refresh skips the cache lookup but still stores the result.
	Refresh bool

	// TTL of the stored image. Zero never expires.
	TTL time.Duration
}

// Result is an encoded image and how it was produced.
type Result struct {
	// ID identifies this execution in logs.
	ID string

	Data   []byte
	Format string

	// CacheHit is true when Data came from the cache; Stats is then empty.
	CacheHit bool
	Stats    fractal.Stats
}

// Execute renders cfg and encodes it, or returns the cached image for an
// identical job.
func (r *Runner) Execute(ctx context.Context, cfg config.Config, opts Options) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	format, err := r.format(cfg, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{ID: uuid.NewString(), Format: format}
	logger := r.Logger.With("job", result.ID)

	key := r.Keyer.ImageKey(cfg.RenderParams(), format)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err != nil {
			logger.Warn("cache lookup failed", "err", err)
		} else if hit {
			logger.Debug("cache hit", "key", key)
			result.Data = data
			result.CacheHit = true
			return result, nil
		}
	}

	renderer, err := cfg.Renderer()
	if err != nil {
		return nil, err
	}
	renderer.Hooks = progressHooks{logger: logger}

	view := cfg.FractalView()
	logger.Debug("rendering", "view", view.String(), "polynomial", cfg.BuildPolynomial().String())

	img, stats, err := renderer.Render(ctx, view)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Stats = stats

	var buf bytes.Buffer
	if err := sink.Encode(&buf, format, img); err != nil {
		return nil, err
	}
	result.Data = buf.Bytes()

	if err := r.Cache.Set(ctx, key, result.Data, opts.TTL); err != nil {
		logger.Warn("cache store failed", "err", err)
	}

	return result, nil
}

// format is opts.Format, or the output path's format if unset.
func (r *Runner) format(cfg config.Config, opts Options) (string, error) {
	if opts.Format != "" {
		return sink.ParseFormat(opts.Format)
	}
	return sink.FormatFromPath(cfg.Output)
}

// progressHooks logs render progress at debug level every tenth of the
// columns.
type progressHooks struct {
	logger *log.Logger
}

func (h progressHooks) OnColumn(done, total int) {
	if done*10/total != (done-1)*10/total {
		h.logger.Debug("iterating", "columns", done, "of", total)
	}
}

func (h progressHooks) OnComplete(view fractal.View, stats fractal.Stats) {
	h.logger.Info("rendered fractal",
		"width", view.Width,
		"height", view.Height,
		"roots", len(stats.Roots),
		"converged", stats.Converged,
		"exhausted", stats.Exhausted,
		"degenerate", stats.Degenerate,
		"duration", stats.Duration.Round(time.Millisecond))
}
