package media

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies the catalog entity type. Values match the catalog's
// media_type strings.
type Kind string

const (
	KindUnknown Kind = ""
	KindMovie   Kind = "movie"
	KindSeries  Kind = "tv"
	KindPerson  Kind = "person"
)

// ParseKind accepts catalog and user spellings ("tv", "series", "show").
func ParseKind(value string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "movie", "movies", "film":
		return KindMovie, true
	case "tv", "series", "show", "shows":
		return KindSeries, true
	case "person", "people", "actor":
		return KindPerson, true
	default:
		return KindUnknown, false
	}
}

// Label returns a display label.
func (k Kind) Label() string {
	switch k {
	case KindMovie:
		return "Movie"
	case KindSeries:
		return "Series"
	case KindPerson:
		return "Person"
	default:
		return "Unknown"
	}
}

// Title reports whether the kind is a movie or series, the only kinds the
// resolver may select.
func (k Kind) Title() bool {
	return k == KindMovie || k == KindSeries
}

// SearchQuery is the normalized form of user or broadcast text.
type SearchQuery struct {
	RawText      string
	CleanedTitle string
	Year         int // 0 when no year hint was found
}

// HasYear reports whether a year hint is present.
func (q SearchQuery) HasYear() bool { return q.Year > 0 }

// Candidate is one catalog search hit.
type Candidate struct {
	ID            int64
	Kind          Kind
	Title         string
	OriginalTitle string
	Year          int
	Overview      string
	Popularity    float64
	VoteAverage   float64
	VoteCount     int64
	PosterPath    string
	BackdropPath  string
}

// Label renders "Title (Year)" or just the title.
func (c Candidate) Label() string {
	if c.Year > 0 {
		return c.Title + " (" + strconv.Itoa(c.Year) + ")"
	}
	return c.Title
}

// CastMember is a billed performer.
type CastMember struct {
	Name        string
	Character   string
	Order       int
	ProfilePath string
}

// CrewMember is a credited crew entry.
type CrewMember struct {
	Name       string
	Job        string
	Department string
}

// Detail is the full record for one movie or series. Details are fetched
// fresh for every navigation and never cached.
type Detail struct {
	ID             int64
	Kind           Kind
	Title          string
	OriginalTitle  string
	Year           int
	RuntimeMinutes int // episode runtime for series; 0 when unknown
	Genres         []string
	Overview       string
	Tagline        string
	Status         string
	PosterPath     string
	BackdropPath   string
	VoteAverage    float64
	VoteCount      int64
	Cast           []CastMember
	Crew           []CrewMember
	CreatedBy      []string
	IMDbID         string
}

// HasRuntime reports whether the runtime is known.
func (d *Detail) HasRuntime() bool { return d != nil && d.RuntimeMinutes > 0 }

// Directors returns up to limit distinct crew names credited as Director.
func (d *Detail) Directors(limit int) []string {
	if d == nil {
		return nil
	}
	var out []string
	seen := map[string]struct{}{}
	for _, member := range d.Crew {
		if member.Job != "Director" || member.Name == "" {
			continue
		}
		if _, ok := seen[member.Name]; ok {
			continue
		}
		seen[member.Name] = struct{}{}
		out = append(out, member.Name)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// TopCast returns the first limit cast members by billing order.
func (d *Detail) TopCast(limit int) []CastMember {
	if d == nil || len(d.Cast) == 0 {
		return nil
	}
	cast := slices.Clone(d.Cast)
	slices.SortStableFunc(cast, func(a, b CastMember) int { return cmp.Compare(a.Order, b.Order) })
	if limit > 0 && len(cast) > limit {
		cast = cast[:limit]
	}
	return cast
}

// Candidate projects the detail back to a search candidate.
func (d *Detail) Candidate() Candidate {
	return Candidate{
		ID:            d.ID,
		Kind:          d.Kind,
		Title:         d.Title,
		OriginalTitle: d.OriginalTitle,
		Year:          d.Year,
		Overview:      d.Overview,
		VoteAverage:   d.VoteAverage,
		VoteCount:     d.VoteCount,
		PosterPath:    d.PosterPath,
		BackdropPath:  d.BackdropPath,
	}
}

// PersonCredit is one movie or series in a person's filmography.
type PersonCredit struct {
	Candidate
	Character string
	Job       string
}

// Score ranks credits for "known for" ordering.
func (c PersonCredit) Score() float64 {
	return c.VoteAverage * float64(c.VoteCount)
}

// PersonDetail is the full record for one person.
type PersonDetail struct {
	ID                 int64
	Name               string
	KnownForDepartment string
	Birthday           string
	Deathday           string
	PlaceOfBirth       string
	Biography          string
	ProfilePath        string
	Popularity         float64
	MovieCredits       []PersonCredit
	TVCredits          []PersonCredit
}

// KnownFor merges movie and series credits, drops duplicates by (kind, id),
// and orders by Score descending.
func (p *PersonDetail) KnownFor(limit int) []PersonCredit {
	if p == nil {
		return nil
	}
	type key struct {
		kind Kind
		id   int64
	}
	seen := map[key]struct{}{}
	merged := make([]PersonCredit, 0, len(p.MovieCredits)+len(p.TVCredits))
	for _, credit := range append(slices.Clone(p.MovieCredits), p.TVCredits...) {
		k := key{credit.Kind, credit.ID}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		merged = append(merged, credit)
	}
	slices.SortStableFunc(merged, func(a, b PersonCredit) int { return cmp.Compare(b.Score(), a.Score()) })
	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// ImageRef is one entry in an image manifest.
type ImageRef struct {
	FilePath    string
	Width       int
	Height      int
	Language    string
	VoteAverage float64
	VoteCount   int64
}

// Score ranks images; higher is better.
func (r ImageRef) Score() float64 {
	return r.VoteAverage * float64(r.VoteCount)
}

// ImageManifest lists the alternate posters and backdrops for a title.
type ImageManifest struct {
	ID        int64
	Kind      Kind
	Posters   []ImageRef
	Backdrops []ImageRef
}

// SortBest orders posters and backdrops by Score descending. Ties keep
// their catalog order.
func (m *ImageManifest) SortBest() {
	if m == nil {
		return
	}
	byScore := func(a, b ImageRef) int { return cmp.Compare(b.Score(), a.Score()) }
	slices.SortStableFunc(m.Posters, byScore)
	slices.SortStableFunc(m.Backdrops, byScore)
}

// Category names a curated catalog list.
type Category string

const (
	CategoryPopular  Category = "popular"
	CategoryTrending Category = "trending"
	CategoryTopRated Category = "top_rated"
	CategoryUpcoming Category = "upcoming"
)

// Categories lists the supported curated lists in display order.
func Categories() []Category {
	return []Category{CategoryPopular, CategoryTrending, CategoryTopRated, CategoryUpcoming}
}

// ParseCategory accepts the canonical names plus a few spellings.
func ParseCategory(value string) (Category, bool) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(value), "-", "_")) {
	case "popular":
		return CategoryPopular, true
	case "trending":
		return CategoryTrending, true
	case "top_rated", "toprated", "top":
		return CategoryTopRated, true
	case "upcoming", "on_the_air", "airing":
		return CategoryUpcoming, true
	default:
		return "", false
	}
}

// SecondaryRating is the critic rating from the secondary service. The zero
// value means "no rating".
type SecondaryRating struct {
	Value    string // e.g. "8.3"
	Votes    string
	SourceID string // IMDb id the rating belongs to
}

// IsSet reports whether a rating value is present.
func (r SecondaryRating) IsSet() bool { return r.Value != "" }

// YearFromDate extracts the year from a YYYY-MM-DD date string. Empty or
// malformed input yields 0.
func YearFromDate(value string) int {
	value = strings.TrimSpace(value)
	if len(value) < 4 {
		return 0
	}
	year, err := strconv.Atoi(value[:4])
	if err != nil || year < 1800 || year > 2200 {
		return 0
	}
	return year
}
