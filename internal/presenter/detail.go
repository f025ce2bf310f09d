package presenter

import (
	"fmt"
	"strconv"
	"strings"

	"cinelookup/internal/media"
)

const (
	// PlotLimit is the maximum plot length in characters before truncation.
	PlotLimit     = 800
	castLimit     = 5
	creditLimit   = 3
	knownForLimit = 10
	notAvailable  = "N/A"
)

// DetailLines renders a movie or series detail. rating may be zero; it is
// rendered only when set, so it can be filled in later without reflowing the
// rest of the block.
func DetailLines(d *media.Detail, rating media.SecondaryRating) []string {
	if d == nil {
		return nil
	}
	lines := []string{orNA(d.Title)}
	if d.OriginalTitle != "" && d.OriginalTitle != d.Title {
		lines = append(lines, "Original: "+d.OriginalTitle)
	}
	lines = append(lines,
		"Year: "+yearText(d.Year),
		"Duration: "+Duration(d),
	)
	if d.VoteAverage > 0 {
		lines = append(lines, fmt.Sprintf("Rating: %.1f/10 ★", d.VoteAverage))
	}
	if line := RatingLine(rating); line != "" {
		lines = append(lines, line)
	}
	if len(d.Genres) > 0 {
		lines = append(lines, "Genres: "+strings.Join(d.Genres, ", "))
	}
	if line := creditLine(d); line != "" {
		lines = append(lines, line)
	}
	if plot := Plot(d.Overview); plot != "" {
		lines = append(lines, "", "Plot:", plot)
	}
	if cast := d.TopCast(castLimit); len(cast) > 0 {
		lines = append(lines, "", "Cast:")
		for _, member := range cast {
			lines = append(lines, "  • "+castEntry(member))
		}
	}
	return lines
}

// Duration formats the runtime: "N min" for movies, "~N min/ep" for series.
func Duration(d *media.Detail) string {
	if !d.HasRuntime() {
		return notAvailable
	}
	if d.Kind == media.KindSeries {
		return fmt.Sprintf("~%d min/ep", d.RuntimeMinutes)
	}
	return fmt.Sprintf("%d min", d.RuntimeMinutes)
}

// RatingLine formats the secondary rating, or "" when unset.
func RatingLine(r media.SecondaryRating) string {
	if !r.IsSet() {
		return ""
	}
	line := "IMDb: " + r.Value + "/10"
	if r.Votes != "" {
		line += " (" + r.Votes + " votes)"
	}
	return line
}

// Plot flattens newlines and truncates at PlotLimit characters on a word
// boundary.
func Plot(overview string) string {
	text := strings.TrimSpace(overview)
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	runes := []rune(text)
	if len(runes) <= PlotLimit {
		return text
	}
	cut := string(runes[:PlotLimit])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + " ..."
}

func creditLine(d *media.Detail) string {
	if d.Kind == media.KindSeries {
		if len(d.CreatedBy) == 0 {
			return ""
		}
		return "Created by: " + strings.Join(head(d.CreatedBy, creditLimit), ", ")
	}
	directors := d.Directors(0)
	switch len(directors) {
	case 0:
		return ""
	case 1:
		return "Director: " + directors[0]
	default:
		return "Directors: " + strings.Join(head(directors, creditLimit), ", ")
	}
}

func castEntry(member media.CastMember) string {
	name := strings.TrimSpace(member.Name)
	if character := strings.TrimSpace(member.Character); character != "" {
		return name + " as " + character
	}
	return name
}

func head(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}

func yearText(year int) string {
	if year <= 0 {
		return notAvailable
	}
	return strconv.Itoa(year)
}

func orNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return notAvailable
	}
	return value
}
