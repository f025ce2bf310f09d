package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cinelookup/internal/identification"
	"cinelookup/internal/lookup"
	"cinelookup/internal/media"
	"cinelookup/internal/presenter"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var descriptions []string
	var kindFlag string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "search <title>",
		Short: "Resolve a title and show its details",
		Long: `Resolve free-form text, such as a broadcast listing, to the best matching
movie or series and show its details, rating and cached artwork.

With --kind the disambiguation is skipped and the first movie or series hit
is used directly.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := strings.Join(args, " ")
			var direct media.Kind
			if strings.TrimSpace(kindFlag) != "" {
				kind, err := parseListKind(kindFlag)
				if err != nil {
					return err
				}
				direct = kind
			}
			return ctx.withSession(func(s *session) error {
				var task *lookup.Task[*lookup.Result]
				if direct != media.KindUnknown {
					task = s.service.Direct(cmd.Context(), direct, raw)
				} else {
					task = s.service.Lookup(cmd.Context(), raw, descriptions...)
				}
				result, err := task.Wait(cmd.Context())
				if err != nil {
					return s.report(cmd, err)
				}
				return s.showDetail(cmd, result.Token, result.Detail, result.Resolution, jsonOutput)
			})
		},
	}

	cmd.Flags().StringArrayVarP(&descriptions, "desc", "d", nil, "Description text scanned for a year hint (repeatable)")
	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "", "Search only movies or only series (movie, tv)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <movie|tv> <id>",
		Short: "Show details for a catalog id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseTitleRef(args[0], args[1])
			if err != nil {
				return err
			}
			return ctx.withSession(func(s *session) error {
				task := s.service.Navigate(cmd.Context(), media.Candidate{ID: id, Kind: kind})
				detail, err := task.Wait(cmd.Context())
				if err != nil {
					return s.report(cmd, err)
				}
				return s.showDetail(cmd, task.Token(), detail, nil, jsonOutput)
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

// showDetail waits for enrichment and prints the detail block followed by
// the artwork paths and the status line.
func (s *session) showDetail(cmd *cobra.Command, token string, detail *media.Detail, res *identification.Resolution, jsonOutput bool) error {
	defer s.service.Tracker().Release(token)
	enrichment := s.service.Enrich(cmd.Context(), token, detail)
	outcome, err := enrichment.Collect(cmd.Context())
	if err != nil {
		return err
	}
	s.service.LogOutcome(cmd.Context(), outcome)
	if !s.service.IsCurrent(token) {
		return nil
	}

	if jsonOutput {
		return writeJSON(cmd, newDetailView(detail, res, outcome))
	}

	out := cmd.OutOrStdout()
	for _, line := range presenter.DetailLines(detail, outcome.Rating) {
		fmt.Fprintln(out, line)
	}
	if outcome.PosterPath != "" || outcome.BackdropPath != "" {
		fmt.Fprintln(out)
	}
	if outcome.PosterPath != "" {
		fmt.Fprintf(out, "Poster: %s\n", outcome.PosterPath)
	}
	if outcome.BackdropPath != "" {
		fmt.Fprintf(out, "Backdrop: %s\n", outcome.BackdropPath)
	}
	fmt.Fprintln(out)
	status := outcome.StatusLine()
	fmt.Fprintln(out, renderStatusLine("Status", enrichmentStatusKind(status), status, shouldColorize(out)))
	return nil
}
