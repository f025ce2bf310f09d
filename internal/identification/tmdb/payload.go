package tmdb

// Result represents a single TMDB search or list entry. Movies carry Title
// and ReleaseDate, series carry Name and FirstAirDate, people carry Name and
// ProfilePath.
type Result struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Name          string  `json:"name"`
	OriginalTitle string  `json:"original_title"`
	OriginalName  string  `json:"original_name"`
	Overview      string  `json:"overview"`
	ReleaseDate   string  `json:"release_date"`
	FirstAirDate  string  `json:"first_air_date"`
	MediaType     string  `json:"media_type"`
	Popularity    float64 `json:"popularity"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int64   `json:"vote_count"`
	PosterPath    string  `json:"poster_path"`
	BackdropPath  string  `json:"backdrop_path"`
	ProfilePath   string  `json:"profile_path"`
	Character     string  `json:"character"`
	Job           string  `json:"job"`
}

type searchResponse struct {
	Page         int      `json:"page"`
	Results      []Result `json:"results"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
}

type namedPayload struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type castPayload struct {
	Name        string `json:"name"`
	Character   string `json:"character"`
	Order       int    `json:"order"`
	ProfilePath string `json:"profile_path"`
}

type crewPayload struct {
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

type detailPayload struct {
	Result
	Tagline          string         `json:"tagline"`
	Status           string         `json:"status"`
	Runtime          *int           `json:"runtime"`
	EpisodeRunTime   []int          `json:"episode_run_time"`
	LastEpisodeToAir *struct {
		Runtime *int `json:"runtime"`
	} `json:"last_episode_to_air"`
	Genres      []namedPayload `json:"genres"`
	CreatedBy   []namedPayload `json:"created_by"`
	IMDbID      string         `json:"imdb_id"`
	ExternalIDs struct {
		IMDbID string `json:"imdb_id"`
	} `json:"external_ids"`
	Credits struct {
		Cast []castPayload `json:"cast"`
		Crew []crewPayload `json:"crew"`
	} `json:"credits"`
}

type creditsPayload struct {
	Cast []Result `json:"cast"`
	Crew []Result `json:"crew"`
}

type personPayload struct {
	ID                 int64          `json:"id"`
	Name               string         `json:"name"`
	KnownForDepartment string         `json:"known_for_department"`
	Birthday           *string        `json:"birthday"`
	Deathday           *string        `json:"deathday"`
	PlaceOfBirth       *string        `json:"place_of_birth"`
	Biography          string         `json:"biography"`
	ProfilePath        string         `json:"profile_path"`
	Popularity         float64        `json:"popularity"`
	MovieCredits       creditsPayload `json:"movie_credits"`
	TVCredits          creditsPayload `json:"tv_credits"`
}

type imagePayload struct {
	FilePath    string  `json:"file_path"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Language    *string `json:"iso_639_1"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int64   `json:"vote_count"`
}

type imagesPayload struct {
	ID        int64          `json:"id"`
	Posters   []imagePayload `json:"posters"`
	Backdrops []imagePayload `json:"backdrops"`
}
