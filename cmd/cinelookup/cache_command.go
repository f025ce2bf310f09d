package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cinelookup/internal/artwork"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the artwork cache",
	}
	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	return cacheCmd
}

func (c *commandContext) artworkCache() (*artwork.Cache, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return artwork.NewFromConfig(cfg, c.log()), nil
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show artwork cache usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.artworkCache()
			if err != nil {
				return err
			}
			stats, err := cache.Stats(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Dir:     %s\n", stats.Dir)
			fmt.Fprintf(out, "Enabled: %s\n", yesNo(cache.Enabled()))
			fmt.Fprintf(out, "Files:   %d\n", stats.Count)
			fmt.Fprintf(out, "Size:    %s (%.2f MB)\n", humanBytes(stats.Bytes), stats.SizeMB)
			if stats.FreeBytes > 0 {
				fmt.Fprintf(out, "Disk:    %s free\n", humanBytes(int64(stats.FreeBytes)))
			}
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	var assumeYes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every cached poster, backdrop and photo",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.artworkCache()
			if err != nil {
				return err
			}
			if !assumeYes {
				current, err := cache.Stats(cmd.Context())
				if err != nil {
					return err
				}
				if current.Count == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Removed 0 files, freed 0.00 MB")
					return nil
				}
				prompt := fmt.Sprintf("Delete %d cached files (%.2f MB)?", current.Count, current.SizeMB)
				if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
					fmt.Fprintln(cmd.OutOrStdout(), "Cache left unchanged")
					return nil
				}
			}
			stats, err := cache.ClearAll(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d files, freed %.2f MB\n", stats.Count, stats.FreedMB)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}
