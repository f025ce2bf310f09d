package lookup

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"cinelookup/internal/artwork"
	"cinelookup/internal/logging"
	"cinelookup/internal/media"
	"cinelookup/internal/services"
)

// Status line texts.
const (
	StatusLoadedWithPoster = "Info loaded ✓"
	StatusLoaded           = "Info loaded"
	StatusPosterTimeout    = "Poster download timeout"
)

// Enrichment holds the background tasks started for one detail. Any field
// may finish first.
type Enrichment struct {
	Token    string
	Poster   *Task[string]
	Backdrop *Task[string]
	Rating   *Task[media.SecondaryRating]
}

// Enrich starts poster, backdrop and rating fetches for detail under the
// given request token. Missing collaborators or image paths resolve
// immediately with an error.
func (s *Service) Enrich(ctx context.Context, token string, detail *media.Detail) *Enrichment {
	ctx = services.WithRequestID(ctx, token)
	e := &Enrichment{Token: token}
	if detail == nil {
		missing := services.Wrap(services.ErrNotFound, "lookup", "enrich", "no detail", nil)
		e.Poster = Resolved(token, "", missing)
		e.Backdrop = Resolved(token, "", missing)
		e.Rating = Resolved(token, media.SecondaryRating{}, missing)
		return e
	}
	e.Poster = s.image(ctx, token, artwork.KindPoster, detail.ID, detail.PosterPath)
	e.Backdrop = s.image(ctx, token, artwork.KindBackdrop, detail.ID, detail.BackdropPath)
	if s.ratings == nil {
		e.Rating = Resolved(token, media.SecondaryRating{}, services.Wrap(services.ErrConfigurationMissing, "lookup", "rating", "rating client not configured", nil))
	} else {
		ratingCtx := services.WithOperation(ctx, "rating")
		e.Rating = Go(ratingCtx, token, func(ctx context.Context) (media.SecondaryRating, error) {
			return s.ratings.FetchRating(ctx, detail)
		})
	}
	return e
}

// PersonPhoto downloads a person's profile image.
func (s *Service) PersonPhoto(ctx context.Context, person *media.PersonDetail) *Task[string] {
	ctx, token := s.tracker.Begin(ctx)
	return s.image(ctx, token, artwork.KindPerson, person.ID, person.ProfilePath)
}

func (s *Service) image(ctx context.Context, token string, kind artwork.Kind, ownerID int64, remotePath string) *Task[string] {
	if s.artwork == nil {
		return Resolved(token, "", services.Wrap(services.ErrArtworkUnavailable, "lookup", string(kind), "artwork cache not configured", nil))
	}
	if remotePath == "" {
		return Resolved(token, "", services.Wrap(services.ErrArtworkUnavailable, "lookup", string(kind), "no image", nil))
	}
	ctx = services.WithOperation(ctx, "artwork")
	return Go(ctx, token, func(ctx context.Context) (string, error) {
		return withSoftTimeout(ctx, s.softTimeout, string(kind), func(ctx context.Context) (string, error) {
			return s.artwork.FetchOrDownload(ctx, kind, ownerID, remotePath)
		})
	})
}

// Outcome is the settled state of an Enrichment.
type Outcome struct {
	PosterPath   string
	PosterErr    error
	BackdropPath string
	BackdropErr  error
	Rating       media.SecondaryRating
	RatingErr    error
}

// Collect waits for every task. Task failures are recorded in the outcome,
// never returned; only ctx ending stops the wait early.
func (e *Enrichment) Collect(ctx context.Context) (Outcome, error) {
	var out Outcome
	var g errgroup.Group
	g.Go(func() error {
		out.PosterPath, out.PosterErr = e.Poster.Wait(ctx)
		return ctx.Err()
	})
	g.Go(func() error {
		out.BackdropPath, out.BackdropErr = e.Backdrop.Wait(ctx)
		return ctx.Err()
	})
	g.Go(func() error {
		out.Rating, out.RatingErr = e.Rating.Wait(ctx)
		return ctx.Err()
	})
	err := g.Wait()
	return out, err
}

// StatusLine summarizes the outcome for the status bar.
func (o Outcome) StatusLine() string {
	switch {
	case o.PosterPath != "":
		return StatusLoadedWithPoster
	case errors.Is(o.PosterErr, ErrSoftTimeout):
		return StatusPosterTimeout
	default:
		return StatusLoaded
	}
}

// LogOutcome writes one debug line per degraded enrichment.
func (s *Service) LogOutcome(ctx context.Context, o Outcome) {
	logger := logging.WithContext(ctx, s.logger)
	for name, err := range map[string]error{"poster": o.PosterErr, "backdrop": o.BackdropErr, "rating": o.RatingErr} {
		if err != nil {
			logger.Debug("enrichment degraded", logging.String("part", name), logging.Error(err))
		}
	}
}
