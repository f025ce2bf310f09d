package tmdb

import (
	"strings"

	"cinelookup/internal/media"
)

// parseCandidates maps search rows to candidates. fallback supplies the kind
// for endpoints that omit media_type; rows with an unknown kind are dropped.
func parseCandidates(results []Result, fallback media.Kind) []media.Candidate {
	if len(results) == 0 {
		return nil
	}
	out := make([]media.Candidate, 0, len(results))
	for _, row := range results {
		kind := fallback
		if row.MediaType != "" {
			parsed, ok := media.ParseKind(row.MediaType)
			if !ok {
				continue
			}
			kind = parsed
		}
		if kind == media.KindUnknown || row.ID <= 0 {
			continue
		}
		out = append(out, parseCandidate(row, kind))
	}
	return out
}

func parseCandidate(row Result, kind media.Kind) media.Candidate {
	candidate := media.Candidate{
		ID:           row.ID,
		Kind:         kind,
		Overview:     strings.TrimSpace(row.Overview),
		Popularity:   nonNegative(row.Popularity),
		VoteAverage:  clampVote(row.VoteAverage),
		VoteCount:    max(row.VoteCount, 0),
		PosterPath:   row.PosterPath,
		BackdropPath: row.BackdropPath,
	}
	switch kind {
	case media.KindMovie:
		candidate.Title = firstNonEmpty(row.Title, row.Name)
		candidate.OriginalTitle = firstNonEmpty(row.OriginalTitle, row.OriginalName)
		candidate.Year = media.YearFromDate(firstNonEmpty(row.ReleaseDate, row.FirstAirDate))
	case media.KindSeries:
		candidate.Title = firstNonEmpty(row.Name, row.Title)
		candidate.OriginalTitle = firstNonEmpty(row.OriginalName, row.OriginalTitle)
		candidate.Year = media.YearFromDate(firstNonEmpty(row.FirstAirDate, row.ReleaseDate))
	case media.KindPerson:
		candidate.Title = firstNonEmpty(row.Name, row.Title)
		candidate.PosterPath = firstNonEmpty(row.ProfilePath, row.PosterPath)
	}
	return candidate
}

func parseDetail(payload detailPayload, kind media.Kind) *media.Detail {
	base := parseCandidate(payload.Result, kind)
	detail := &media.Detail{
		ID:            payload.ID,
		Kind:          kind,
		Title:         base.Title,
		OriginalTitle: base.OriginalTitle,
		Year:          base.Year,
		Overview:      base.Overview,
		Tagline:       strings.TrimSpace(payload.Tagline),
		Status:        payload.Status,
		PosterPath:    payload.PosterPath,
		BackdropPath:  payload.BackdropPath,
		VoteAverage:   base.VoteAverage,
		VoteCount:     base.VoteCount,
		IMDbID:        firstNonEmpty(payload.IMDbID, payload.ExternalIDs.IMDbID),
	}
	detail.RuntimeMinutes = runtimeMinutes(payload, kind)
	for _, genre := range payload.Genres {
		if name := strings.TrimSpace(genre.Name); name != "" {
			detail.Genres = append(detail.Genres, name)
		}
	}
	for _, creator := range payload.CreatedBy {
		if name := strings.TrimSpace(creator.Name); name != "" {
			detail.CreatedBy = append(detail.CreatedBy, name)
		}
	}
	for _, member := range payload.Credits.Cast {
		if member.Name == "" {
			continue
		}
		detail.Cast = append(detail.Cast, media.CastMember{
			Name:        member.Name,
			Character:   strings.TrimSpace(member.Character),
			Order:       member.Order,
			ProfilePath: member.ProfilePath,
		})
	}
	for _, member := range payload.Credits.Crew {
		if member.Name == "" {
			continue
		}
		detail.Crew = append(detail.Crew, media.CrewMember{Name: member.Name, Job: member.Job, Department: member.Department})
	}
	return detail
}

// runtimeMinutes returns the movie runtime or, for series, the first listed
// episode runtime with the latest aired episode as fallback. Unknown is 0.
func runtimeMinutes(payload detailPayload, kind media.Kind) int {
	if kind == media.KindMovie {
		if payload.Runtime != nil && *payload.Runtime > 0 {
			return *payload.Runtime
		}
		return 0
	}
	for _, minutes := range payload.EpisodeRunTime {
		if minutes > 0 {
			return minutes
		}
	}
	if last := payload.LastEpisodeToAir; last != nil && last.Runtime != nil && *last.Runtime > 0 {
		return *last.Runtime
	}
	return 0
}

func parsePerson(payload personPayload) *media.PersonDetail {
	person := &media.PersonDetail{
		ID:                 payload.ID,
		Name:               payload.Name,
		KnownForDepartment: payload.KnownForDepartment,
		Birthday:           deref(payload.Birthday),
		Deathday:           deref(payload.Deathday),
		PlaceOfBirth:       deref(payload.PlaceOfBirth),
		Biography:          strings.TrimSpace(payload.Biography),
		ProfilePath:        payload.ProfilePath,
		Popularity:         nonNegative(payload.Popularity),
	}
	person.MovieCredits = parseCredits(payload.MovieCredits, media.KindMovie)
	person.TVCredits = parseCredits(payload.TVCredits, media.KindSeries)
	return person
}

func parseCredits(credits creditsPayload, kind media.Kind) []media.PersonCredit {
	out := make([]media.PersonCredit, 0, len(credits.Cast)+len(credits.Crew))
	for _, row := range credits.Cast {
		if row.ID <= 0 {
			continue
		}
		out = append(out, media.PersonCredit{Candidate: parseCandidate(row, kind), Character: strings.TrimSpace(row.Character)})
	}
	for _, row := range credits.Crew {
		if row.ID <= 0 {
			continue
		}
		out = append(out, media.PersonCredit{Candidate: parseCandidate(row, kind), Job: row.Job})
	}
	return out
}

func parseImages(payload imagesPayload, id int64, kind media.Kind) *media.ImageManifest {
	manifest := &media.ImageManifest{ID: id, Kind: kind}
	manifest.Posters = parseImageRefs(payload.Posters)
	manifest.Backdrops = parseImageRefs(payload.Backdrops)
	return manifest
}

func parseImageRefs(images []imagePayload) []media.ImageRef {
	out := make([]media.ImageRef, 0, len(images))
	for _, image := range images {
		if strings.TrimSpace(image.FilePath) == "" {
			continue
		}
		out = append(out, media.ImageRef{
			FilePath:    image.FilePath,
			Width:       image.Width,
			Height:      image.Height,
			Language:    deref(image.Language),
			VoteAverage: clampVote(image.VoteAverage),
			VoteCount:   max(image.VoteCount, 0),
		})
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

func nonNegative(value float64) float64 {
	if value < 0 {
		return 0
	}
	return value
}

func clampVote(value float64) float64 {
	return min(max(value, 0), 10)
}
