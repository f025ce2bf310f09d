package presenter

import (
	"strings"

	"cinelookup/internal/media"
)

// PersonLines renders a person with a short known-for list.
func PersonLines(p *media.PersonDetail) []string {
	if p == nil {
		return nil
	}
	lines := []string{orNA(p.Name)}
	if p.KnownForDepartment != "" {
		lines = append(lines, "Known for: "+p.KnownForDepartment)
	}
	if p.Birthday != "" {
		born := "Born: " + p.Birthday
		if p.PlaceOfBirth != "" {
			born += ", " + p.PlaceOfBirth
		}
		lines = append(lines, born)
	}
	if p.Deathday != "" {
		lines = append(lines, "Died: "+p.Deathday)
	}
	if bio := Plot(p.Biography); bio != "" {
		lines = append(lines, "", "Biography:", bio)
	}
	if credits := p.KnownFor(knownForLimit); len(credits) > 0 {
		lines = append(lines, "", "Known for:")
		for _, credit := range credits {
			entry := credit.Label()
			if role := strings.TrimSpace(credit.Character); role != "" {
				entry += " as " + role
			} else if job := strings.TrimSpace(credit.Job); job != "" {
				entry += " (" + job + ")"
			}
			lines = append(lines, "  • "+entry)
		}
	}
	return lines
}
