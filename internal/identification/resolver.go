package identification

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"
	"strconv"

	"cinelookup/internal/logging"
	"cinelookup/internal/media"
	"cinelookup/internal/services"
)

// DefaultShortRuntimeMinutes is the runtime below which a movie match is
// re-checked against series search.
const DefaultShortRuntimeMinutes = 35

// Tier names the step that produced a resolution.
type Tier string

const (
	TierNone           Tier = "none"
	TierYearMatch      Tier = "year_match"
	TierPopularity     Tier = "popularity"
	TierShortRuntime   Tier = "short_runtime_series"
	TierFallbackMovie  Tier = "fallback_movie"
	TierFallbackSeries Tier = "fallback_series"
)

// Resolution is the outcome of a single Resolve call. Candidate is nil when
// nothing matched.
type Resolution struct {
	Query     media.SearchQuery
	Candidate *media.Candidate
	Tier      Tier
	Calls     int
	// Detail is set when the short-runtime check fetched the movie detail
	// and the movie was kept.
	Detail *media.Detail
}

// Found reports whether a candidate was selected.
func (r *Resolution) Found() bool { return r != nil && r.Candidate != nil }

// Resolver picks the single best catalog entry for a query.
type Resolver struct {
	search       Searcher
	shortRuntime int
	logger       *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithShortRuntimeThreshold overrides the short-runtime demotion threshold.
func WithShortRuntimeThreshold(minutes int) ResolverOption {
	return func(r *Resolver) {
		if minutes > 0 {
			r.shortRuntime = minutes
		}
	}
}

// WithResolverLogger attaches a logger for decision tracing.
func WithResolverLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logging.NewComponentLogger(logger, "resolver")
	}
}

// NewResolver constructs a resolver over the given searcher.
func NewResolver(search Searcher, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		search:       search,
		shortRuntime: DefaultShortRuntimeMinutes,
		logger:       logging.NewComponentLogger(nil, "resolver"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveText normalizes raw text and resolves it.
func (r *Resolver) ResolveText(ctx context.Context, raw string, descriptions ...string) (*Resolution, error) {
	query, err := Normalize(raw, descriptions...)
	if err != nil {
		return &Resolution{Query: query, Tier: TierNone}, err
	}
	return r.Resolve(ctx, query)
}

// Resolve runs the tiered selection:
//
//  1. multi search, keeping movies and series only
//  2. with a year hint, the first candidate in catalog order whose year matches
//  3. otherwise the most popular candidate; a movie shorter than the runtime
//     threshold is replaced by the first series hit for the same title
//  4. when multi search yields nothing, movie search then series search
//
// A failed call counts as an empty result for its tier. Configuration errors
// and context cancellation abort the resolution.
func (r *Resolver) Resolve(ctx context.Context, query media.SearchQuery) (*Resolution, error) {
	res := &Resolution{Query: query, Tier: TierNone}
	if query.CleanedTitle == "" {
		return res, services.Wrap(services.ErrInvalidQuery, "resolver", "resolve", "empty title", nil)
	}
	if r == nil || r.search == nil {
		return res, services.Wrap(services.ErrConfigurationMissing, "resolver", "resolve", "catalog client unavailable", nil)
	}
	logger := logging.WithContext(ctx, r.logger).With(
		logging.String("title", query.CleanedTitle),
		logging.Int("year", query.Year),
	)

	candidates, err := r.call(ctx, res, func() ([]media.Candidate, error) {
		return r.search.SearchMulti(ctx, query.CleanedTitle, query.Year)
	})
	if fatal(ctx, err) {
		return res, err
	}
	candidates = titlesOnly(candidates)

	if len(candidates) > 0 {
		if query.HasYear() {
			if match := firstWithYear(candidates, query.Year); match != nil {
				return r.done(logger, res, match, TierYearMatch), nil
			}
		}
		best := mostPopular(candidates)
		if best.Kind != media.KindMovie {
			return r.done(logger, res, &best, TierPopularity), nil
		}
		return r.checkShortRuntime(ctx, logger, res, best)
	}

	logger.Debug("multi search empty; falling back to direct searches")
	movies, err := r.call(ctx, res, func() ([]media.Candidate, error) {
		return r.search.SearchMovies(ctx, query.CleanedTitle, query.Year)
	})
	if fatal(ctx, err) {
		return res, err
	}
	if len(movies) > 0 {
		return r.done(logger, res, &movies[0], TierFallbackMovie), nil
	}

	series, err := r.call(ctx, res, func() ([]media.Candidate, error) {
		return r.search.SearchSeries(ctx, query.CleanedTitle, query.Year)
	})
	if fatal(ctx, err) {
		return res, err
	}
	if len(series) > 0 {
		return r.done(logger, res, &series[0], TierFallbackSeries), nil
	}

	logger.Info("no catalog match", logging.Args(append(
		logging.DecisionAttrs("resolve", string(TierNone), "all tiers empty"),
		logging.Int("calls", res.Calls),
	)...)...)
	return res, nil
}

func (r *Resolver) checkShortRuntime(ctx context.Context, logger *slog.Logger, res *Resolution, best media.Candidate) (*Resolution, error) {
	res.Calls++
	detail, err := r.search.FetchDetail(ctx, best.ID, best.Kind)
	if fatal(ctx, err) {
		return res, err
	}
	if err != nil || !detail.HasRuntime() || detail.RuntimeMinutes >= r.shortRuntime {
		if err == nil {
			res.Detail = detail
		}
		return r.done(logger, res, &best, TierPopularity), nil
	}

	logger.Debug("short movie runtime; re-checking series",
		logging.Int("runtime_minutes", detail.RuntimeMinutes),
		logging.Int("threshold_minutes", r.shortRuntime),
	)
	series, err := r.call(ctx, res, func() ([]media.Candidate, error) {
		return r.search.SearchSeries(ctx, res.Query.CleanedTitle, res.Query.Year)
	})
	if fatal(ctx, err) {
		return res, err
	}
	if len(series) > 0 {
		return r.done(logger, res, &series[0], TierShortRuntime), nil
	}
	res.Detail = detail
	return r.done(logger, res, &best, TierPopularity), nil
}

func (r *Resolver) call(ctx context.Context, res *Resolution, fn func() ([]media.Candidate, error)) ([]media.Candidate, error) {
	res.Calls++
	results, err := fn()
	if err != nil {
		if !fatal(ctx, err) {
			logging.WithContext(ctx, r.logger).Debug("catalog call failed; treating as empty", logging.Error(err))
		}
		return nil, err
	}
	return results, nil
}

func (r *Resolver) done(logger *slog.Logger, res *Resolution, candidate *media.Candidate, tier Tier) *Resolution {
	selected := *candidate
	res.Candidate = &selected
	res.Tier = tier
	logger.Info("catalog match selected", logging.Args(append(
		logging.DecisionAttrs("resolve", string(tier), selected.Label()),
		logging.Int64("tmdb_id", selected.ID),
		logging.String("kind", string(selected.Kind)),
		logging.Int("calls", res.Calls),
	)...)...)
	return res
}

// fatal reports errors that must stop resolution instead of degrading to an
// empty tier.
func fatal(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, services.ErrConfigurationMissing) {
		return true
	}
	return ctx.Err() != nil
}

func titlesOnly(candidates []media.Candidate) []media.Candidate {
	out := make([]media.Candidate, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.Kind.Title() {
			out = append(out, candidate)
		}
	}
	return out
}

func firstWithYear(candidates []media.Candidate, year int) *media.Candidate {
	for i := range candidates {
		if candidates[i].Year == year {
			return &candidates[i]
		}
	}
	return nil
}

func mostPopular(candidates []media.Candidate) media.Candidate {
	sorted := slices.Clone(candidates)
	slices.SortStableFunc(sorted, func(a, b media.Candidate) int {
		return cmp.Compare(b.Popularity, a.Popularity)
	})
	return sorted[0]
}

// String renders the resolution for logs and history.
func (r *Resolution) String() string {
	if !r.Found() {
		return "no match (" + string(r.Tier) + ")"
	}
	return r.Candidate.Label() + " [" + string(r.Candidate.Kind) + " " + strconv.FormatInt(r.Candidate.ID, 10) + "] via " + string(r.Tier)
}
