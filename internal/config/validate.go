package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable. Missing API keys are not
// validation failures; see TMDBKeyHint and OMDbKeyHint.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}
	if err := c.validateOMDb(); err != nil {
		return err
	}
	if err := c.validateArtwork(); err != nil {
		return err
	}
	if err := c.validateResolver(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTMDB() error {
	if err := validateURL("tmdb.base_url", c.TMDB.BaseURL); err != nil {
		return err
	}
	if err := validateURL("tmdb.image_base_url", c.TMDB.ImageBaseURL); err != nil {
		return err
	}
	if _, err := language.Parse(c.TMDB.Language); err != nil {
		return fmt.Errorf("tmdb.language %q is not a valid language tag: %w", c.TMDB.Language, err)
	}
	if c.TMDB.RequestTimeout <= 0 {
		return errors.New("tmdb.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateOMDb() error {
	if err := validateURL("omdb.base_url", c.OMDb.BaseURL); err != nil {
		return err
	}
	if c.OMDb.RequestTimeout <= 0 {
		return errors.New("omdb.request_timeout must be positive")
	}
	return nil
}

func (c *Config) validateArtwork() error {
	if !c.Artwork.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Artwork.Dir) == "" {
		return errors.New("artwork.dir must be set when artwork.enabled is true")
	}
	if err := ensurePositiveMap(map[string]int{
		"artwork.download_timeout": c.Artwork.DownloadTimeout,
		"artwork.soft_timeout":     c.Artwork.SoftTimeout,
	}); err != nil {
		return err
	}
	if c.Artwork.SoftTimeout < c.Artwork.DownloadTimeout {
		return errors.New("artwork.soft_timeout must be at least artwork.download_timeout")
	}
	return nil
}

func (c *Config) validateResolver() error {
	if c.Resolver.ShortRuntimeMinutes <= 0 {
		return errors.New("resolver.short_runtime_minutes must be positive")
	}
	if c.Resolver.ListLimit <= 0 || c.Resolver.ListLimit > 100 {
		return errors.New("resolver.list_limit must be between 1 and 100")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
}

func validateURL(key, value string) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", key, value)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
