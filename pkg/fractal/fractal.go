// Package fractal renders Newton fractals into a raster.
//
// Rendering happens in two phases. First every pixel's starting point is
// iterated to an approximate root; columns are spread over worker goroutines
// since each pixel is independent. Then a single pass walks the pixels in scan
// order (x outer, y inner), identifies each root and colors the pixel. Root ids
// are assigned on first discovery, so fixing the scan order of the second
// phase makes the output identical for any number of workers.
package fractal

import (
	"context"
	"image"
	"image/draw"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/willbeason/newton-fractal/pkg/cplx"
	"github.com/willbeason/newton-fractal/pkg/errors"
	"github.com/willbeason/newton-fractal/pkg/newton"
	"github.com/willbeason/newton-fractal/pkg/palette"
	"github.com/willbeason/newton-fractal/pkg/polynomial"
	"github.com/willbeason/newton-fractal/pkg/roots"
)

// Renderer composes the Newton iteration, root tracking and coloring.
type Renderer struct {
	Iterator  *newton.Iterator
	Colorizer *palette.Colorizer

	// Workers is the number of goroutines iterating columns. Zero or less
	// means runtime.NumCPU().
	Workers int

	Hooks Hooks
}

// New returns a Renderer for p with default iteration limits and coloring.
func New(p *polynomial.Polynomial) *Renderer {
	return &Renderer{
		Iterator:  newton.New(p),
		Colorizer: palette.New(),
	}
}

// Stats summarizes a render.
type Stats struct {
	// Roots are the distinct roots found, indexed by root id.
	Roots []cplx.Complex

	Converged  int
	Exhausted  int
	Degenerate int

	Duration time.Duration
}

// Pixels is the total number of pixels rendered.
func (s Stats) Pixels() int {
	return s.Converged + s.Exhausted + s.Degenerate
}

// Render allocates an RGBA image for view and renders into it.
func (r *Renderer) Render(ctx context.Context, view View) (*image.RGBA, Stats, error) {
	if err := view.Validate(); err != nil {
		return nil, Stats{}, err
	}

	img := image.NewRGBA(image.Rect(0, 0, view.Width, view.Height))
	stats, err := r.Generate(ctx, view, img)
	if err != nil {
		return nil, stats, err
	}
	return img, stats, nil
}

// Generate renders view into dst. Pixel (px, py) is written at
// dst.Bounds().Min + (px, py); dst must be at least view.Width by view.Height.
func (r *Renderer) Generate(ctx context.Context, view View, dst draw.Image) (Stats, error) {
	start := time.Now()

	if err := view.Validate(); err != nil {
		return Stats{}, err
	}
	bounds := dst.Bounds()
	if bounds.Dx() < view.Width || bounds.Dy() < view.Height {
		return Stats{}, errors.New(errors.ErrCodeInvalidInput,
			"raster %dx%d is smaller than view %dx%d", bounds.Dx(), bounds.Dy(), view.Width, view.Height)
	}

	results, err := r.iterate(ctx, view)
	if err != nil {
		return Stats{}, err
	}

	stats := r.colorize(view, results, dst)
	stats.Duration = time.Since(start)

	r.hooks().OnComplete(view, stats)
	return stats, nil
}

// iterate runs the Newton iteration for every pixel. The result for (px, py)
// is stored at px*Height + py.
func (r *Renderer) iterate(ctx context.Context, view View) ([]newton.Result, error) {
	results := make([]newton.Result, view.Width*view.Height)

	xChannel := make(chan int)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(xChannel)
		for px := 0; px < view.Width; px++ {
			select {
			case xChannel <- px:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	hooks := r.hooks()
	var done atomic.Int64

	for i := 0; i < r.workers(); i++ {
		g.Go(func() error {
			for px := range xChannel {
				column := results[px*view.Height : (px+1)*view.Height]
				for py := range column {
					column[py] = r.Iterator.Iterate(view.Point(px, py))
				}

				hooks.OnColumn(int(done.Add(1)), view.Width)

				if err := ctx.Err(); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// colorize identifies roots and writes pixels in scan order.
func (r *Renderer) colorize(view View, results []newton.Result, dst draw.Image) Stats {
	var stats Stats

	tracker := roots.NewTracker()
	origin := dst.Bounds().Min

	for px := 0; px < view.Width; px++ {
		for py := 0; py < view.Height; py++ {
			res := results[px*view.Height+py]

			if res.Degenerate {
				stats.Degenerate++
				dst.Set(origin.X+px, origin.Y+py, palette.Undefined)
				continue
			}

			if res.Converged {
				stats.Converged++
			} else {
				stats.Exhausted++
			}

			id, _ := tracker.Identify(res.Root)
			dst.Set(origin.X+px, origin.Y+py, r.Colorizer.Color(id, res.Iterations))
		}
	}

	stats.Roots = tracker.Roots()
	return stats
}

func (r *Renderer) workers() int {
	if r.Workers <= 0 {
		return runtime.NumCPU()
	}
	return r.Workers
}

func (r *Renderer) hooks() Hooks {
	if r.Hooks == nil {
		return NoopHooks{}
	}
	return r.Hooks
}
