package cli

import (
	"github.com/spf13/cobra"

	"github.com/willbeason/newton-fractal/pkg/fractal"
	"github.com/willbeason/newton-fractal/pkg/palette"
)

func (c *CLI) configCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print a job file",
		Long: `Print the effective job as TOML: the defaults, or the defaults merged with
--config. Redirect it to a file to start a new job:

  newton config > job.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return cfg.Write(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML job file")

	cmd.AddCommand(c.configListCommand())
	return cmd
}

// configListCommand prints the names accepted by --view, --palette and
// --shading.
func (c *CLI) configListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List named views, palettes and shading modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()

			printInfo(w, "Views")
			for _, name := range fractal.ViewNames() {
				printDetail(w, "%-14s %s", name, fractal.Views[name])
			}
			printInfo(w, "Palettes")
			for _, name := range palette.Names() {
				printDetail(w, "%s", name)
			}
			printInfo(w, "Shading")
			for _, s := range []palette.Shading{palette.ShadeByRoot, palette.ShadeBySpeed} {
				printDetail(w, "%s", s)
			}
			return nil
		},
	}
}
