package config

const (
	defaultConfigPath          = "~/.config/cinelookup/config.toml"
	defaultAPIKeyFile          = "~/.config/cinelookup/tmdbapikey.txt"
	defaultHistoryPath         = "~/.local/share/cinelookup/history.db"
	defaultTMDBLanguage        = "en-US"
	defaultTMDBBaseURL         = "https://api.themoviedb.org/3"
	defaultTMDBImageBaseURL    = "https://image.tmdb.org/t/p"
	defaultTMDBRequestTimeout  = 10
	defaultOMDbBaseURL         = "https://www.omdbapi.com/"
	defaultOMDbRequestTimeout  = 10
	defaultPosterSize          = "w500"
	defaultBackdropSize        = "w780"
	defaultProfileSize         = "w185"
	defaultArtworkDownload     = 8
	defaultArtworkSoftTimeout  = 12
	defaultShortRuntimeMinutes = 35
	defaultListLimit           = 20
	defaultSearchCacheTTL      = 600
	defaultSearchIntervalMS    = 250
	defaultHistoryMaxEntries   = 500
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultLogRetentionDays    = 14
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		TMDB: TMDB{
			APIKeyFile:     defaultAPIKeyFile,
			BaseURL:        defaultTMDBBaseURL,
			ImageBaseURL:   defaultTMDBImageBaseURL,
			Language:       defaultTMDBLanguage,
			RequestTimeout: defaultTMDBRequestTimeout,
		},
		OMDb: OMDb{
			BaseURL:        defaultOMDbBaseURL,
			RequestTimeout: defaultOMDbRequestTimeout,
		},
		Artwork: Artwork{
			Enabled:         true,
			Dir:             defaultArtworkDir(),
			PosterSize:      defaultPosterSize,
			BackdropSize:    defaultBackdropSize,
			ProfileSize:     defaultProfileSize,
			DownloadTimeout: defaultArtworkDownload,
			SoftTimeout:     defaultArtworkSoftTimeout,
		},
		Resolver: Resolver{
			ShortRuntimeMinutes: defaultShortRuntimeMinutes,
			ListLimit:           defaultListLimit,
			SearchCacheTTL:      defaultSearchCacheTTL,
			SearchIntervalMS:    defaultSearchIntervalMS,
		},
		History: History{
			Enabled:    true,
			Path:       defaultHistoryPath,
			MaxEntries: defaultHistoryMaxEntries,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
