package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/willbeason/newton-fractal/pkg/config"
	"github.com/willbeason/newton-fractal/pkg/errors"
	"github.com/willbeason/newton-fractal/pkg/fractal"
	"github.com/willbeason/newton-fractal/pkg/pipeline"
	"github.com/willbeason/newton-fractal/pkg/sink"
)

// renderArgs is the number of positional arguments of the render command.
const renderArgs = 7

// renderOpts holds the flags of the render command. Empty or zero values
// keep the job file's setting.
type renderOpts struct {
	configPath    string
	view          string
	palette       string
	shading       string
	workers       int
	maxIterations int
	noCache       bool
	refresh       bool
	showRoots     bool
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <width> <height> <xmin> <xmax> <ymin> <ymax> <output>",
		Short: "Render a Newton fractal to an image file",
		Long: `Render a Newton fractal of the region [xmin, xmax] x [ymin, ymax] into a
width x height image. The output format follows the file extension
(png, jpg, bmp, tif).

With --config the positional arguments may be omitted; when given they
override the job file. Flags must precede the arguments.`,
		Example: `  newton render 800 600 -2 2 -1.5 1.5 fractal.png
  newton render --config job.toml
  newton render --view triple-point --palette pastel 1024 1024 -0.25 0.25 -0.25 0.25 zoom.png`,
		Args: cobra.MaximumNArgs(renderArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != renderArgs && (opts.configPath == "" || len(args) > 0) {
				return cmd.Usage()
			}

			// At this point usage information has already been printed if obviously incorrect.
			cmd.SilenceUsage = true

			cfg, err := opts.job(args)
			if err != nil {
				return err
			}
			return c.runRender(cmd, cfg, opts)
		},
	}

	// Flags come before the arguments so that negative coordinates are not
	// parsed as flags.
	cmd.Flags().SetInterspersed(false)

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "TOML job file")
	cmd.Flags().StringVar(&opts.view, "view", "", "named region to render (overridden by positional arguments)")
	cmd.Flags().StringVar(&opts.palette, "palette", "", "color palette: classic or pastel")
	cmd.Flags().StringVar(&opts.shading, "shading", "", "shading mode: root or speed")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "iteration goroutines (default: number of CPUs)")
	cmd.Flags().IntVar(&opts.maxIterations, "max-iterations", 0, "Newton iteration limit per pixel")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the image cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "render even if the image is cached")
	cmd.Flags().BoolVar(&opts.showRoots, "roots", false, "print the roots found (always renders)")

	return cmd
}

// job builds the render job: positional arguments, then flags, then the job
// file, then defaults.
func (o renderOpts) job(args []string) (config.Config, error) {
	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return config.Config{}, err
	}

	if o.view != "" {
		v, ok := fractal.Views[o.view]
		if !ok {
			return config.Config{}, errors.New(errors.ErrCodeInvalidInput, "unknown view %q (available: %v)", o.view, fractal.ViewNames())
		}
		cfg.SetView(v.WithSize(cfg.Width, cfg.Height))
	}
	if o.palette != "" {
		cfg.Color.Palette = o.palette
	}
	if o.shading != "" {
		cfg.Color.Shading = o.shading
	}
	if o.workers != 0 {
		cfg.Render.Workers = o.workers
	}
	if o.maxIterations != 0 {
		cfg.Newton.MaxIterations = o.maxIterations
	}

	if len(args) == renderArgs {
		view, output, err := parseRenderArgs(args)
		if err != nil {
			return config.Config{}, err
		}
		cfg.SetView(view)
		cfg.Output = output
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// parseRenderArgs parses <width> <height> <xmin> <xmax> <ymin> <ymax> <output>.
func parseRenderArgs(args []string) (fractal.View, string, error) {
	var v fractal.View

	ints := []struct {
		name string
		dst  *int
	}{
		{"width", &v.Width},
		{"height", &v.Height},
	}
	for i, arg := range ints {
		n, err := strconv.Atoi(args[i])
		if err != nil {
			return fractal.View{}, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "%s must be an integer, got %q", arg.name, args[i])
		}
		*arg.dst = n
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"xmin", &v.XMin},
		{"xmax", &v.XMax},
		{"ymin", &v.YMin},
		{"ymax", &v.YMax},
	}
	for i, arg := range floats {
		s := args[len(ints)+i]
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fractal.View{}, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "%s must be a number, got %q", arg.name, s)
		}
		*arg.dst = f
	}

	return v, args[renderArgs-1], nil
}

func (c *CLI) runRender(cmd *cobra.Command, cfg config.Config, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, cfg.Cache, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	prog := newProgress(logger)
	res, err := runner.Execute(ctx, cfg, pipeline.Options{
		// Cached images carry no roots.
		Refresh: opts.refresh || opts.showRoots,
		TTL:     cfg.Cache.TTL.Duration,
	})
	if err != nil {
		return err
	}

	if err := sink.WriteBytes(cfg.Output, res.Data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "writing %s", cfg.Output)
	}
	prog.done("Saved " + cfg.Output)

	w := cmd.OutOrStdout()
	printSuccess(w, "Fractal saved to %s", cfg.Output)
	printStats(w, res)
	if opts.showRoots {
		printRoots(w, res)
	}
	return nil
}
