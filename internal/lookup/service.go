package lookup

import (
	"context"
	"log/slog"
	"time"

	"cinelookup/internal/artwork"
	"cinelookup/internal/history"
	"cinelookup/internal/identification"
	"cinelookup/internal/logging"
	"cinelookup/internal/media"
	"cinelookup/internal/services"
)

// Catalog is the catalog surface the service uses beyond resolution.
type Catalog interface {
	FetchDetail(ctx context.Context, id int64, kind media.Kind) (*media.Detail, error)
	SearchPerson(ctx context.Context, name string) ([]media.Candidate, error)
	FetchPersonDetail(ctx context.Context, id int64) (*media.PersonDetail, error)
	FetchCuratedList(ctx context.Context, category media.Category, kind media.Kind) ([]media.Candidate, error)
	FetchImageManifest(ctx context.Context, id int64, kind media.Kind) (*media.ImageManifest, error)
}

// RatingFetcher supplies the secondary rating.
type RatingFetcher interface {
	FetchRating(ctx context.Context, detail *media.Detail) (media.SecondaryRating, error)
}

// ArtworkFetcher returns a local path for a remote image.
type ArtworkFetcher interface {
	FetchOrDownload(ctx context.Context, kind artwork.Kind, ownerID int64, remotePath string) (string, error)
}

// Recorder stores resolved lookups.
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) error
}

// Service coordinates resolution, detail fetches and enrichment.
type Service struct {
	resolver    *identification.Resolver
	search      identification.Searcher
	catalog     Catalog
	ratings     RatingFetcher
	artwork     ArtworkFetcher
	recorder    Recorder
	tracker     *Tracker
	softTimeout time.Duration
	logger      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithRatings enables secondary ratings.
func WithRatings(r RatingFetcher) Option { return func(s *Service) { s.ratings = r } }

// WithArtwork enables poster and backdrop downloads.
func WithArtwork(a ArtworkFetcher) Option { return func(s *Service) { s.artwork = a } }

// WithRecorder enables lookup history.
func WithRecorder(r Recorder) Option { return func(s *Service) { s.recorder = r } }

// WithSoftTimeout bounds how long enrichment waits for artwork.
func WithSoftTimeout(d time.Duration) Option { return func(s *Service) { s.softTimeout = d } }

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logging.NewComponentLogger(logger, "lookup") }
}

// NewService wires a service. search feeds the resolver and direct modes;
// catalog serves details, people, lists and images.
func NewService(resolver *identification.Resolver, search identification.Searcher, catalog Catalog, opts ...Option) *Service {
	s := &Service{
		resolver:    resolver,
		search:      search,
		catalog:     catalog,
		tracker:     NewTracker(),
		softTimeout: 12 * time.Second,
		logger:      logging.NewComponentLogger(nil, "lookup"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tracker exposes the request tracker so consumers can discard stale results.
func (s *Service) Tracker() *Tracker { return s.tracker }

// IsCurrent reports whether token belongs to the latest request.
func (s *Service) IsCurrent(token string) bool { return s.tracker.Current(token) }

// Result is the outcome of a title lookup.
type Result struct {
	Token      string
	Resolution *identification.Resolution
	Detail     *media.Detail
}

// Lookup normalizes raw text, resolves it and fetches the detail of the
// match. No match is reported as ErrNotFound.
func (s *Service) Lookup(ctx context.Context, raw string, descriptions ...string) *Task[*Result] {
	ctx, token := s.tracker.Begin(ctx)
	ctx = services.WithOperation(ctx, "resolve")
	return Go(ctx, token, func(ctx context.Context) (*Result, error) {
		result := &Result{Token: token}
		res, err := s.resolver.ResolveText(ctx, raw, descriptions...)
		result.Resolution = res
		if err != nil {
			return result, err
		}
		s.record(ctx, token, res)
		if !res.Found() {
			return result, services.Wrap(services.ErrNotFound, "lookup", "resolve", res.Query.CleanedTitle, nil)
		}
		detail := res.Detail
		if detail == nil || detail.ID != res.Candidate.ID || detail.Kind != res.Candidate.Kind {
			detail, err = s.catalog.FetchDetail(services.WithOperation(ctx, "detail"), res.Candidate.ID, res.Candidate.Kind)
			if err != nil {
				return result, err
			}
		}
		result.Detail = detail
		return result, nil
	})
}

// Direct runs a kind-specific search without disambiguation and fetches the
// first hit's detail.
func (s *Service) Direct(ctx context.Context, kind media.Kind, raw string) *Task[*Result] {
	ctx, token := s.tracker.Begin(ctx)
	ctx = services.WithOperation(ctx, "direct")
	return Go(ctx, token, func(ctx context.Context) (*Result, error) {
		match, query, err := identification.LookupDirect(ctx, s.search, kind, raw)
		result := &Result{Token: token, Resolution: &identification.Resolution{Query: query, Tier: identification.TierNone, Calls: 1}}
		if err != nil {
			return result, err
		}
		result.Resolution.Candidate = match
		result.Resolution.Tier = directTier(kind)
		s.record(ctx, token, result.Resolution)
		detail, err := s.catalog.FetchDetail(ctx, match.ID, match.Kind)
		if err != nil {
			return result, err
		}
		result.Detail = detail
		return result, nil
	})
}

func directTier(kind media.Kind) identification.Tier {
	if kind == media.KindSeries {
		return identification.TierFallbackSeries
	}
	return identification.TierFallbackMovie
}

// Navigate fetches a fresh detail for a candidate picked from a list.
func (s *Service) Navigate(ctx context.Context, candidate media.Candidate) *Task[*media.Detail] {
	ctx, token := s.tracker.Begin(ctx)
	ctx = services.WithOperation(ctx, "detail")
	return Go(ctx, token, func(ctx context.Context) (*media.Detail, error) {
		return s.catalog.FetchDetail(ctx, candidate.ID, candidate.Kind)
	})
}

// Person finds a person by name and returns their biography and credits.
func (s *Service) Person(ctx context.Context, name string) *Task[*media.PersonDetail] {
	ctx, token := s.tracker.Begin(ctx)
	ctx = services.WithOperation(ctx, "person")
	return Go(ctx, token, func(ctx context.Context) (*media.PersonDetail, error) {
		people, err := s.catalog.SearchPerson(ctx, name)
		if err != nil {
			return nil, err
		}
		if len(people) == 0 {
			return nil, services.Wrap(services.ErrNotFound, "lookup", "person", name, nil)
		}
		return s.catalog.FetchPersonDetail(ctx, people[0].ID)
	})
}

// List fetches a curated list.
func (s *Service) List(ctx context.Context, category media.Category, kind media.Kind) *Task[[]media.Candidate] {
	ctx, token := s.tracker.Begin(ctx)
	ctx = services.WithOperation(ctx, "list")
	return Go(ctx, token, func(ctx context.Context) ([]media.Candidate, error) {
		return s.catalog.FetchCuratedList(ctx, category, kind)
	})
}

// Images fetches the alternate poster and backdrop manifest.
func (s *Service) Images(ctx context.Context, id int64, kind media.Kind) *Task[*media.ImageManifest] {
	ctx, token := s.tracker.Begin(ctx)
	ctx = services.WithOperation(ctx, "images")
	return Go(ctx, token, func(ctx context.Context) (*media.ImageManifest, error) {
		return s.catalog.FetchImageManifest(ctx, id, kind)
	})
}

func (s *Service) record(ctx context.Context, token string, res *identification.Resolution) {
	if s.recorder == nil || res == nil || res.Query.CleanedTitle == "" {
		return
	}
	entry := history.Entry{
		Token:        token,
		RawText:      res.Query.RawText,
		CleanedTitle: res.Query.CleanedTitle,
		YearHint:     res.Query.Year,
		Tier:         string(res.Tier),
		Calls:        res.Calls,
	}
	if res.Found() {
		entry.TMDBID = res.Candidate.ID
		entry.Kind = res.Candidate.Kind
		entry.Title = res.Candidate.Title
		entry.Year = res.Candidate.Year
	}
	// history must survive a cancelled request
	if err := s.recorder.Record(context.WithoutCancel(ctx), entry); err != nil {
		logging.WithContext(ctx, s.logger).Warn("record lookup history failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "history_record_failed"),
			logging.String(logging.FieldImpact, "lookup not listed in history"),
		)
	}
}
