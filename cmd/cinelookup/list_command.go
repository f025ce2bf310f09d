package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cinelookup/internal/media"
	"cinelookup/internal/services"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var kindFlag string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list <popular|trending|top_rated|upcoming>",
		Short: "Show a curated catalog list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, ok := media.ParseCategory(args[0])
			if !ok {
				names := make([]string, 0, len(media.Categories()))
				for _, c := range media.Categories() {
					names = append(names, string(c))
				}
				return fmt.Errorf("unknown list %q (valid: %s)", args[0], strings.Join(names, ", "))
			}
			kind, err := parseListKind(kindFlag)
			if err != nil {
				return err
			}
			return ctx.withSession(func(s *session) error {
				candidates, err := s.service.List(cmd.Context(), category, kind).Wait(cmd.Context())
				if err != nil {
					return s.report(cmd, err)
				}
				if jsonOutput {
					return writeJSON(cmd, newCandidateViews(candidates))
				}
				out := cmd.OutOrStdout()
				if len(candidates) == 0 {
					fmt.Fprintln(out, services.NoResultsMessage)
					return nil
				}
				fmt.Fprintln(out, candidateTable(candidates))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "movie", "List movies or series (movie, tv)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
