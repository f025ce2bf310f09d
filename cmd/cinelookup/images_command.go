package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cinelookup/internal/media"
)

func newImagesCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "images <movie|tv> <id>",
		Short: "List alternate posters and backdrops, best first",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseTitleRef(args[0], args[1])
			if err != nil {
				return err
			}
			return ctx.withSession(func(s *session) error {
				manifest, err := s.service.Images(cmd.Context(), id, kind).Wait(cmd.Context())
				if err != nil {
					return s.report(cmd, err)
				}
				posters := headRefs(manifest.Posters, limit)
				backdrops := headRefs(manifest.Backdrops, limit)
				if jsonOutput {
					return writeJSON(cmd, map[string][]media.ImageRef{"posters": posters, "backdrops": backdrops})
				}
				out := cmd.OutOrStdout()
				if len(posters) == 0 && len(backdrops) == 0 {
					fmt.Fprintln(out, "No images")
					return nil
				}
				if len(posters) > 0 {
					fmt.Fprintln(out, imageTable("poster", posters))
				}
				if len(backdrops) > 0 {
					fmt.Fprintln(out, imageTable("backdrop", backdrops))
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum images per type (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func headRefs(refs []media.ImageRef, limit int) []media.ImageRef {
	if limit > 0 && len(refs) > limit {
		return refs[:limit]
	}
	return refs
}
