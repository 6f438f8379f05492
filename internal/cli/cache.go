package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) cacheCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered image cache",
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML job file selecting the cache")

	cmd.AddCommand(c.cacheClearCommand(&configPath))
	cmd.AddCommand(c.cachePathCommand(&configPath))

	return cmd
}

func (c *CLI) cacheClearCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := cmd.Context()

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			store, err := newCache(ctx, cfg.Cache, false)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Clear(ctx); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			w := cmd.OutOrStdout()
			printSuccess(w, "Cache cleared")
			if cfg.Cache.RedisAddr != "" {
				printDetail(w, "Redis: %s", cfg.Cache.RedisAddr)
			} else if dir, err := fileCacheDir(cfg.Cache.Dir); err == nil {
				printDetail(w, "Directory: %s", dir)
			}
			return nil
		},
	}
}

func (c *CLI) cachePathCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			dir, err := fileCacheDir(cfg.Cache.Dir)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
