package identification

import (
	"regexp"
	"strconv"
	"strings"

	"cinelookup/internal/media"
	"cinelookup/internal/services"
)

const (
	minYear = 1900
	maxYear = 2100
)

var (
	bracketPattern  = regexp.MustCompile(`\[[^\]]*\]`)
	parenPattern    = regexp.MustCompile(`\([^)]*\)`)
	labelPattern    = regexp.MustCompile(`(?i)^\s*(?:film|movie|tv)\s*:\s*`)
	yearPattern     = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	titleSeparators = []string{" - ", " – ", ":"}
)

// Normalize turns raw user or program-guide text into a search query.
// Brackets and parentheses are removed, a leading Film:/Movie:/TV: label is
// dropped, the text is cut at the first " - ", " – " or ":" and whitespace is
// collapsed. An empty result is ErrInvalidQuery.
//
// The year hint comes from the raw text, then from each description in order;
// the first (19|20)xx token wins.
func Normalize(raw string, descriptions ...string) (media.SearchQuery, error) {
	query := media.SearchQuery{
		RawText:      raw,
		CleanedTitle: CleanTitle(raw),
		Year:         ExtractYear(append([]string{raw}, descriptions...)...),
	}
	if query.CleanedTitle == "" {
		return query, services.Wrap(services.ErrInvalidQuery, "normalizer", "normalize", "no searchable title", nil)
	}
	return query, nil
}

// CleanTitle applies the title stripping rules without year extraction.
func CleanTitle(raw string) string {
	text := collapseSpaces(raw)
	text = bracketPattern.ReplaceAllString(text, " ")
	text = parenPattern.ReplaceAllString(text, " ")
	text = collapseSpaces(text)
	text = labelPattern.ReplaceAllString(text, "")
	if idx := firstSeparator(text); idx >= 0 {
		text = text[:idx]
	}
	return collapseSpaces(text)
}

// ExtractYear returns the first plausible release year found in texts, or 0.
func ExtractYear(texts ...string) int {
	for _, text := range texts {
		for _, match := range yearPattern.FindAllString(text, -1) {
			year, err := strconv.Atoi(match)
			if err == nil && year >= minYear && year <= maxYear {
				return year
			}
		}
	}
	return 0
}

func firstSeparator(text string) int {
	first := -1
	for _, sep := range titleSeparators {
		if idx := strings.Index(text, sep); idx >= 0 && (first < 0 || idx < first) {
			first = idx
		}
	}
	return first
}

func collapseSpaces(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
