// Package config loads render jobs from TOML files.
//
// A job file only needs the keys it changes; everything else keeps the value
// from Default:
//
//	width = 1920
//	height = 1080
//	output = "out/fractal.png"
//
//	[view]
//	xmin = -3.2
//	xmax = 3.2
//	ymin = -1.8
//	ymax = 1.8
//
//	[polynomial]
//	# [re, im] pairs, constant term first: x⁴ - 1
//	coefficients = [[-1.0, 0.0], [0.0, 0.0], [0.0, 0.0], [0.0, 0.0], [1.0, 0.0]]
//
//	[color]
//	palette = "pastel"
//	shading = "speed"
package config

import (
	"io"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/willbeason/newton-fractal/pkg/cplx"
	"github.com/willbeason/newton-fractal/pkg/errors"
	"github.com/willbeason/newton-fractal/pkg/fractal"
	"github.com/willbeason/newton-fractal/pkg/newton"
	"github.com/willbeason/newton-fractal/pkg/palette"
	"github.com/willbeason/newton-fractal/pkg/polynomial"
	"github.com/willbeason/newton-fractal/pkg/sink"
)

// Config is a complete render job.
type Config struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Output string `toml:"output"`

	View       View       `toml:"view"`
	Polynomial Polynomial `toml:"polynomial"`
	Newton     Newton     `toml:"newton"`
	Color      Color      `toml:"color"`
	Render     Render     `toml:"render"`
	Cache      Cache      `toml:"cache"`
	Server     Server     `toml:"server"`
}

type View struct {
	XMin float64 `toml:"xmin"`
	XMax float64 `toml:"xmax"`
	YMin float64 `toml:"ymin"`
	YMax float64 `toml:"ymax"`
}

type Polynomial struct {
	// Coefficients are [re, im] pairs, constant term first.
	Coefficients [][2]float64 `toml:"coefficients"`
}

type Newton struct {
	MaxIterations int     `toml:"max_iterations"`
	Tolerance     float64 `toml:"tolerance"`
}

type Color struct {
	Palette  string `toml:"palette"`
	FadeStep int    `toml:"fade_step"`
	Shading  string `toml:"shading"`
}

type Render struct {
	// Workers <= 0 uses every CPU.
	Workers int `toml:"workers"`
}

type Cache struct {
	Disabled bool `toml:"disabled"`

	// Dir overrides the default cache directory.
	Dir string `toml:"dir"`

	// RedisAddr selects a Redis cache instead of the file cache.
	RedisAddr string `toml:"redis_addr"`

	// KeyPrefix scopes image keys, so deployments rendering with different
	// code can share one Redis.
	KeyPrefix string `toml:"key_prefix"`

	TTL Duration `toml:"ttl"`
}

type Server struct {
	Addr string `toml:"addr"`

	// MaxPixels bounds width*height of a single request.
	MaxPixels int `toml:"max_pixels"`
}

// Duration is a time.Duration written as a string such as "24h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the reference job: x³+1 over [-2,2]x[-2,2].
func Default() Config {
	return Config{
		Width:  800,
		Height: 800,
		Output: "fractal.png",
		View:   View{XMin: -2, XMax: 2, YMin: -2, YMax: 2},
		Polynomial: Polynomial{
			Coefficients: [][2]float64{{1, 0}, {0, 0}, {0, 0}, {1, 0}},
		},
		Newton: Newton{
			MaxIterations: newton.DefaultMaxIterations,
			Tolerance:     newton.DefaultTolerance,
		},
		Color: Color{
			Palette:  "classic",
			FadeStep: palette.DefaultFadeStep,
			Shading:  palette.ShadeByRoot.String(),
		},
		Cache: Cache{
			TTL: Duration{24 * time.Hour},
		},
		Server: Server{
			Addr:      ":8080",
			MaxPixels: 4_000_000,
		},
	}
}

// Load reads a job file on top of Default. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "reading %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %v", path, undecoded)
	}

	return cfg, cfg.Validate()
}

// Write encodes cfg as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks every field the renderer depends on.
func (c Config) Validate() error {
	if err := c.FractalView().Validate(); err != nil {
		return err
	}
	if len(c.Polynomial.Coefficients) < 2 {
		return errors.New(errors.ErrCodeInvalidConfig, "polynomial must have degree at least 1, got %d coefficients", len(c.Polynomial.Coefficients))
	}
	if c.Newton.MaxIterations <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "newton.max_iterations must be positive, got %d", c.Newton.MaxIterations)
	}
	if c.Newton.Tolerance <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "newton.tolerance must be positive, got %g", c.Newton.Tolerance)
	}
	if c.Color.FadeStep < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "color.fade_step must not be negative, got %d", c.Color.FadeStep)
	}
	if _, err := c.Colorizer(); err != nil {
		return err
	}
	if c.Output != "" {
		if _, err := sink.FormatFromPath(c.Output); err != nil {
			return err
		}
	}
	if c.Server.MaxPixels <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_pixels must be positive, got %d", c.Server.MaxPixels)
	}
	return nil
}

// FractalView is the region and raster size to render.
func (c Config) FractalView() fractal.View {
	return fractal.View{
		Width:  c.Width,
		Height: c.Height,
		XMin:   c.View.XMin,
		XMax:   c.View.XMax,
		YMin:   c.View.YMin,
		YMax:   c.View.YMax,
	}
}

// SetView copies v's region and size into c.
func (c *Config) SetView(v fractal.View) {
	c.Width = v.Width
	c.Height = v.Height
	c.View = View{XMin: v.XMin, XMax: v.XMax, YMin: v.YMin, YMax: v.YMax}
}

func (c Config) BuildPolynomial() *polynomial.Polynomial {
	p := &polynomial.Polynomial{}
	for _, coeff := range c.Polynomial.Coefficients {
		p.Add(cplx.New(coeff[0], coeff[1]))
	}
	return p
}

func (c Config) Colorizer() (*palette.Colorizer, error) {
	pal, err := palette.Lookup(c.Color.Palette)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "color.palette")
	}
	shading, err := palette.ParseShading(c.Color.Shading)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "color.shading")
	}
	return &palette.Colorizer{
		Palette:  pal,
		FadeStep: c.Color.FadeStep,
		Shading:  shading,
	}, nil
}

// RenderParams are the fields that determine the rendered pixels. Two jobs
// with equal RenderParams produce identical images.
type RenderParams struct {
	View         fractal.View
	Coefficients [][2]float64
	Newton       Newton
	Color        Color
}

func (c Config) RenderParams() RenderParams {
	return RenderParams{
		View:         c.FractalView(),
		Coefficients: c.Polynomial.Coefficients,
		Newton:       c.Newton,
		Color:        c.Color,
	}
}

// Renderer builds a renderer for the job.
func (c Config) Renderer() (*fractal.Renderer, error) {
	colorizer, err := c.Colorizer()
	if err != nil {
		return nil, err
	}

	r := fractal.New(c.BuildPolynomial())
	r.Iterator.MaxIterations = c.Newton.MaxIterations
	r.Iterator.Tolerance = c.Newton.Tolerance
	r.Colorizer = colorizer
	r.Workers = c.Render.Workers
	return r, nil
}
