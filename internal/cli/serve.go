package cli

import (
	"github.com/spf13/cobra"

	"github.com/willbeason/newton-fractal/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered fractals over HTTP",
		Long: `Serve GET /render, which takes the render command's parameters as query
values and returns the encoded image. Jobs default to the job file's settings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			runner, err := c.newRunner(ctx, cfg.Cache, noCache)
			if err != nil {
				return err
			}
			defer runner.Cache.Close()

			return server.New(runner, cfg, loggerFromContext(ctx)).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML job file with server and render defaults")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the image cache")

	return cmd
}
