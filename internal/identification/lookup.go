package identification

import (
	"context"
	"fmt"

	"cinelookup/internal/media"
	"cinelookup/internal/services"
)

// LookupDirect runs a single movie or series search without disambiguation
// and returns the first hit. This backs the explicit "search movies" and
// "search series" modes, where the user has already chosen the kind.
func LookupDirect(ctx context.Context, search Searcher, kind media.Kind, raw string) (*media.Candidate, media.SearchQuery, error) {
	query, err := Normalize(raw)
	if err != nil {
		return nil, query, err
	}
	if search == nil {
		return nil, query, services.Wrap(services.ErrConfigurationMissing, "lookup", "direct", "catalog client unavailable", nil)
	}

	var results []media.Candidate
	switch kind {
	case media.KindMovie:
		results, err = search.SearchMovies(ctx, query.CleanedTitle, query.Year)
	case media.KindSeries:
		results, err = search.SearchSeries(ctx, query.CleanedTitle, query.Year)
	default:
		return nil, query, services.Wrap(services.ErrInvalidQuery, "lookup", "direct", fmt.Sprintf("unsupported kind %q", kind), nil)
	}
	if err != nil {
		return nil, query, err
	}
	if len(results) == 0 {
		return nil, query, services.Wrap(services.ErrNotFound, "lookup", "direct", query.CleanedTitle, nil)
	}
	first := results[0]
	return &first, query, nil
}
