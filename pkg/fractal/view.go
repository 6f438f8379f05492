package fractal

import (
	"fmt"
	"math"
	"sort"

	"github.com/willbeason/newton-fractal/pkg/cplx"
	"github.com/willbeason/newton-fractal/pkg/errors"
)

// A View is the output raster size and the rectangle of the complex plane it
// covers. XMin < XMax and YMin < YMax are expected but not required; reversed
// bounds mirror the image.
type View struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	XMin float64 `json:"xmin"`
	XMax float64 `json:"xmax"`
	YMin float64 `json:"ymin"`
	YMax float64 `json:"ymax"`
}

// Validate checks the raster size.
func (v View) Validate() error {
	if v.Width <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "width must be positive, got %d", v.Width)
	}
	if v.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "height must be positive, got %d", v.Height)
	}
	// An RGBA raster holds 4 bytes per pixel.
	if v.Width > math.MaxInt/4/v.Height {
		return errors.New(errors.ErrCodeInvalidInput, "%dx%d raster is too large", v.Width, v.Height)
	}
	return nil
}

// Steps returns the size of one pixel along each axis.
func (v View) Steps() (xStep, yStep float64) {
	return (v.XMax - v.XMin) / float64(v.Width), (v.YMax - v.YMin) / float64(v.Height)
}

// Point returns the starting point for pixel (px, py).
func (v View) Point(px, py int) cplx.Complex {
	xStep, yStep := v.Steps()
	return cplx.New(v.XMin+float64(px)*xStep, v.YMin+float64(py)*yStep)
}

// WithSize returns v covering the same region at a new raster size.
func (v View) WithSize(width, height int) View {
	v.Width = width
	v.Height = height
	return v
}

func (v View) String() string {
	return fmt.Sprintf("%dx%d [%g, %g]x[%g, %g]", v.Width, v.Height, v.XMin, v.XMax, v.YMin, v.YMax)
}

// Views are named regions of the plane. Their raster size is a default; use
// WithSize to change it.
var Views = map[string]View{
	// The whole basin structure of x³+1.
	"default": {Width: 800, Height: 800, XMin: -2, XMax: 2, YMin: -2, YMax: 2},

	// Boundary between the three basins near the origin.
	"triple-point": {Width: 800, Height: 800, XMin: -0.25, XMax: 0.25, YMin: -0.25, YMax: 0.25},

	// Basin boundary along the positive real axis.
	"tendril": {Width: 800, Height: 800, XMin: 0.2, XMax: 0.8, YMin: -0.3, YMax: 0.3},

	"wide": {Width: 1600, Height: 900, XMin: -3.2, XMax: 3.2, YMin: -1.8, YMax: 1.8},
}

// ViewNames returns the names of Views, sorted.
func ViewNames() []string {
	names := make([]string, 0, len(Views))
	for name := range Views {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
