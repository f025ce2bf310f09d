package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cinelookup/internal/logging"
	"cinelookup/internal/presenter"
)

func newPersonCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "person <name>",
		Short: "Show a person's biography and best known credits",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			return ctx.withSession(func(s *session) error {
				person, err := s.service.Person(cmd.Context(), name).Wait(cmd.Context())
				if err != nil {
					return s.report(cmd, err)
				}
				photo, photoErr := s.service.PersonPhoto(cmd.Context(), person).Wait(cmd.Context())
				if photoErr != nil {
					s.logger.Debug("person photo unavailable", logging.Int64("person_id", person.ID), logging.Error(photoErr))
				}

				if jsonOutput {
					return writeJSON(cmd, newPersonView(person, photo))
				}
				out := cmd.OutOrStdout()
				for _, line := range presenter.PersonLines(person) {
					fmt.Fprintln(out, line)
				}
				if photo != "" {
					fmt.Fprintf(out, "\nPhoto: %s\n", photo)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
