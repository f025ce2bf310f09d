package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cinelookup/internal/language"
	"cinelookup/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check API keys, endpoints and local directories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			results := preflight.RunAll(cmd.Context(), cfg)
			for _, line := range renderSectionHeader("cinelookup status", colorize) {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out, renderStatusLine("Language", statusInfo, fmt.Sprintf("%s (%s)", language.DisplayName(cfg.TMDB.Language), cfg.TMDB.Language), colorize))
			for _, line := range preflightLines(results, colorize) {
				fmt.Fprintln(out, line)
			}
			if failed := preflight.Failed(results); failed > 0 {
				return fmt.Errorf("%d status checks failed", failed)
			}
			return nil
		},
	}
}
