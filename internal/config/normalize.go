package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
)

func (c *Config) normalize() error {
	if err := c.normalizeTMDB(); err != nil {
		return err
	}
	c.normalizeOMDb()
	if err := c.normalizeArtwork(); err != nil {
		return err
	}
	c.normalizeResolver()
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeTMDB() error {
	var err error
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	if c.TMDB.APIKey == "" {
		if value, ok := os.LookupEnv("TMDB_API_KEY"); ok {
			c.TMDB.APIKey = strings.TrimSpace(value)
		}
	}
	if strings.TrimSpace(c.TMDB.APIKeyFile) == "" {
		c.TMDB.APIKeyFile = defaultAPIKeyFile
	}
	if c.TMDB.APIKeyFile, err = expandPath(c.TMDB.APIKeyFile); err != nil {
		return fmt.Errorf("tmdb.api_key_file: %w", err)
	}
	if c.TMDB.APIKey == "" {
		key, err := ReadAPIKeyFile(c.TMDB.APIKeyFile)
		if err != nil {
			return fmt.Errorf("tmdb.api_key_file: %w", err)
		}
		c.TMDB.APIKey = key
	}
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.ImageBaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.ImageBaseURL), "/")
	if c.TMDB.ImageBaseURL == "" {
		c.TMDB.ImageBaseURL = defaultTMDBImageBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	if c.TMDB.Language == "" {
		c.TMDB.Language = defaultTMDBLanguage
	} else if tag, err := language.Parse(c.TMDB.Language); err == nil {
		c.TMDB.Language = tag.String()
	}
	if c.TMDB.RequestTimeout <= 0 {
		c.TMDB.RequestTimeout = defaultTMDBRequestTimeout
	}
	return nil
}

func (c *Config) normalizeOMDb() {
	c.OMDb.APIKey = strings.TrimSpace(c.OMDb.APIKey)
	if c.OMDb.APIKey == "" {
		if value, ok := os.LookupEnv("OMDB_API_KEY"); ok {
			c.OMDb.APIKey = strings.TrimSpace(value)
		}
	}
	c.OMDb.BaseURL = strings.TrimSpace(c.OMDb.BaseURL)
	if c.OMDb.BaseURL == "" {
		c.OMDb.BaseURL = defaultOMDbBaseURL
	}
	if c.OMDb.RequestTimeout <= 0 {
		c.OMDb.RequestTimeout = defaultOMDbRequestTimeout
	}
}

func (c *Config) normalizeArtwork() error {
	var err error
	if strings.TrimSpace(c.Artwork.Dir) == "" {
		c.Artwork.Dir = defaultArtworkDir()
	}
	if c.Artwork.Dir, err = expandPath(c.Artwork.Dir); err != nil {
		return fmt.Errorf("artwork.dir: %w", err)
	}
	c.Artwork.PosterSize = normalizeSize(c.Artwork.PosterSize, defaultPosterSize)
	c.Artwork.BackdropSize = normalizeSize(c.Artwork.BackdropSize, defaultBackdropSize)
	c.Artwork.ProfileSize = normalizeSize(c.Artwork.ProfileSize, defaultProfileSize)
	if c.Artwork.DownloadTimeout <= 0 {
		c.Artwork.DownloadTimeout = defaultArtworkDownload
	}
	if c.Artwork.SoftTimeout <= 0 {
		c.Artwork.SoftTimeout = defaultArtworkSoftTimeout
	}
	return nil
}

func normalizeSize(value, fallback string) string {
	value = strings.Trim(strings.ToLower(strings.TrimSpace(value)), "/")
	if value == "" {
		return fallback
	}
	return value
}

func (c *Config) normalizeResolver() {
	if c.Resolver.ShortRuntimeMinutes <= 0 {
		c.Resolver.ShortRuntimeMinutes = defaultShortRuntimeMinutes
	}
	if c.Resolver.ListLimit <= 0 {
		c.Resolver.ListLimit = defaultListLimit
	}
	if c.Resolver.SearchCacheTTL < 0 {
		c.Resolver.SearchCacheTTL = 0
	}
	if c.Resolver.SearchIntervalMS < 0 {
		c.Resolver.SearchIntervalMS = 0
	}
}

func (c *Config) normalizeHistory() error {
	var err error
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	if c.History.MaxEntries < 0 {
		c.History.MaxEntries = 0
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
	var err error
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
