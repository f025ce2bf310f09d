package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cinelookup/internal/media"
	"cinelookup/internal/presenter"
	"cinelookup/internal/services"
)

func newRatingCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rating <movie|tv> <id>",
		Short: "Show the secondary critic rating for a catalog id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseTitleRef(args[0], args[1])
			if err != nil {
				return err
			}
			return ctx.withSession(func(s *session) error {
				if s.ratings == nil {
					return services.MissingConfig("omdb", "api_key", s.cfg.OMDbKeyHint())
				}
				detail, err := s.service.Navigate(cmd.Context(), media.Candidate{ID: id, Kind: kind}).Wait(cmd.Context())
				if err != nil {
					return s.report(cmd, err)
				}
				rating, err := s.ratings.FetchRating(cmd.Context(), detail)
				if err != nil {
					return s.report(cmd, err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, detail.Candidate().Label())
				if line := presenter.RatingLine(rating); line != "" {
					fmt.Fprintln(out, line)
				} else {
					fmt.Fprintln(out, "IMDb: N/A")
				}
				return nil
			})
		},
	}
}
