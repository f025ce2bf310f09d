package main

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"

	"cinelookup/internal/history"
	"cinelookup/internal/identification"
	"cinelookup/internal/lookup"
	"cinelookup/internal/media"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type ratingView struct {
	Value  string `json:"value"`
	Votes  string `json:"votes,omitempty"`
	IMDbID string `json:"imdb_id,omitempty"`
}

type resolutionView struct {
	Query string `json:"query"`
	Title string `json:"cleaned_title"`
	Year  int    `json:"year_hint,omitempty"`
	Tier  string `json:"tier"`
	Calls int    `json:"calls"`
}

type detailView struct {
	ID             int64           `json:"id"`
	Kind           media.Kind      `json:"kind"`
	Title          string          `json:"title"`
	OriginalTitle  string          `json:"original_title,omitempty"`
	Year           int             `json:"year,omitempty"`
	RuntimeMinutes int             `json:"runtime_minutes,omitempty"`
	Genres         []string        `json:"genres,omitempty"`
	Overview       string          `json:"overview,omitempty"`
	VoteAverage    float64         `json:"vote_average"`
	VoteCount      int64           `json:"vote_count"`
	IMDbID         string          `json:"imdb_id,omitempty"`
	Directors      []string        `json:"directors,omitempty"`
	CreatedBy      []string        `json:"created_by,omitempty"`
	Rating         *ratingView     `json:"secondary_rating,omitempty"`
	PosterFile     string          `json:"poster_file,omitempty"`
	BackdropFile   string          `json:"backdrop_file,omitempty"`
	Status         string          `json:"status"`
	Resolution     *resolutionView `json:"resolution,omitempty"`
}

func newDetailView(d *media.Detail, res *identification.Resolution, o lookup.Outcome) detailView {
	view := detailView{
		ID:             d.ID,
		Kind:           d.Kind,
		Title:          d.Title,
		OriginalTitle:  d.OriginalTitle,
		Year:           d.Year,
		RuntimeMinutes: d.RuntimeMinutes,
		Genres:         d.Genres,
		Overview:       d.Overview,
		VoteAverage:    d.VoteAverage,
		VoteCount:      d.VoteCount,
		IMDbID:         d.IMDbID,
		Directors:      d.Directors(3),
		CreatedBy:      d.CreatedBy,
		PosterFile:     o.PosterPath,
		BackdropFile:   o.BackdropPath,
		Status:         o.StatusLine(),
	}
	if o.Rating.IsSet() {
		view.Rating = &ratingView{Value: o.Rating.Value, Votes: o.Rating.Votes, IMDbID: o.Rating.SourceID}
	}
	if res != nil {
		view.Resolution = &resolutionView{
			Query: res.Query.RawText,
			Title: res.Query.CleanedTitle,
			Year:  res.Query.Year,
			Tier:  string(res.Tier),
			Calls: res.Calls,
		}
	}
	return view
}

type historyView struct {
	ID           int64      `json:"id"`
	RawText      string     `json:"raw_text"`
	CleanedTitle string     `json:"cleaned_title"`
	YearHint     int        `json:"year_hint,omitempty"`
	Tier         string     `json:"tier"`
	TMDBID       int64      `json:"tmdb_id,omitempty"`
	Kind         media.Kind `json:"kind,omitempty"`
	Title        string     `json:"title,omitempty"`
	Year         int        `json:"year,omitempty"`
	Calls        int        `json:"calls"`
	CreatedAt    time.Time  `json:"created_at"`
}

func newHistoryViews(entries []history.Entry) []historyView {
	views := make([]historyView, 0, len(entries))
	for _, e := range entries {
		views = append(views, historyView{
			ID:           e.ID,
			RawText:      e.RawText,
			CleanedTitle: e.CleanedTitle,
			YearHint:     e.YearHint,
			Tier:         e.Tier,
			TMDBID:       e.TMDBID,
			Kind:         e.Kind,
			Title:        e.Title,
			Year:         e.Year,
			Calls:        e.Calls,
			CreatedAt:    e.CreatedAt,
		})
	}
	return views
}

type creditView struct {
	ID        int64      `json:"id"`
	Kind      media.Kind `json:"kind"`
	Title     string     `json:"title"`
	Year      int        `json:"year,omitempty"`
	Character string     `json:"character,omitempty"`
	Job       string     `json:"job,omitempty"`
}

type personView struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Department   string       `json:"known_for_department,omitempty"`
	Birthday     string       `json:"birthday,omitempty"`
	Deathday     string       `json:"deathday,omitempty"`
	PlaceOfBirth string       `json:"place_of_birth,omitempty"`
	Biography    string       `json:"biography,omitempty"`
	PhotoFile    string       `json:"photo_file,omitempty"`
	KnownFor     []creditView `json:"known_for"`
}

func newPersonView(p *media.PersonDetail, photo string) personView {
	view := personView{
		ID:           p.ID,
		Name:         p.Name,
		Department:   p.KnownForDepartment,
		Birthday:     p.Birthday,
		Deathday:     p.Deathday,
		PlaceOfBirth: p.PlaceOfBirth,
		Biography:    p.Biography,
		PhotoFile:    photo,
		KnownFor:     []creditView{},
	}
	for _, credit := range p.KnownFor(10) {
		view.KnownFor = append(view.KnownFor, creditView{
			ID:        credit.ID,
			Kind:      credit.Kind,
			Title:     credit.Title,
			Year:      credit.Year,
			Character: credit.Character,
			Job:       credit.Job,
		})
	}
	return view
}

type candidateView struct {
	ID          int64      `json:"id"`
	Kind        media.Kind `json:"kind"`
	Title       string     `json:"title"`
	Year        int        `json:"year,omitempty"`
	VoteAverage float64    `json:"vote_average"`
	Popularity  float64    `json:"popularity"`
}

func newCandidateViews(candidates []media.Candidate) []candidateView {
	views := make([]candidateView, 0, len(candidates))
	for _, c := range candidates {
		views = append(views, candidateView{
			ID:          c.ID,
			Kind:        c.Kind,
			Title:       c.Title,
			Year:        c.Year,
			VoteAverage: c.VoteAverage,
			Popularity:  c.Popularity,
		})
	}
	return views
}
