package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// TMDB contains configuration for The Movie Database API.
type TMDB struct {
	APIKey         string `toml:"api_key"`
	APIKeyFile     string `toml:"api_key_file"`
	BaseURL        string `toml:"base_url"`
	ImageBaseURL   string `toml:"image_base_url"`
	Language       string `toml:"language"`
	RequestTimeout int    `toml:"request_timeout"`
}

// OMDb contains configuration for the secondary rating service.
type OMDb struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Artwork contains configuration for the poster/backdrop cache.
type Artwork struct {
	Enabled         bool   `toml:"enabled"`
	Dir             string `toml:"dir"`
	PosterSize      string `toml:"poster_size"`
	BackdropSize    string `toml:"backdrop_size"`
	ProfileSize     string `toml:"profile_size"`
	DownloadTimeout int    `toml:"download_timeout"` // seconds, transport level
	SoftTimeout     int    `toml:"soft_timeout"`     // seconds, caller level
}

// Resolver contains the thresholds used when picking the best match.
type Resolver struct {
	ShortRuntimeMinutes int `toml:"short_runtime_minutes"`
	ListLimit           int `toml:"list_limit"`
	SearchCacheTTL      int `toml:"search_cache_ttl"`   // seconds
	SearchIntervalMS    int `toml:"search_interval_ms"` // minimum spacing between catalog searches
}

// History contains configuration for the resolved-lookup history store.
type History struct {
	Enabled    bool   `toml:"enabled"`
	Path       string `toml:"path"`
	MaxEntries int    `toml:"max_entries"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	Dir           string `toml:"dir"`
	// RetentionDays prunes daily log files older than this; 0 keeps them all.
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for cinelookup.
//
// Configuration sections by subsystem:
//   - TMDB: catalog search, details and images
//   - OMDb: secondary critic rating
//   - Artwork: on-disk poster/backdrop cache
//   - Resolver: runtime threshold, list cap and search memo
//   - History: SQLite record of resolved lookups
//   - Logging: log format, level, optional log directory and retention
type Config struct {
	TMDB     TMDB     `toml:"tmdb"`
	OMDb     OMDb     `toml:"omdb"`
	Artwork  Artwork  `toml:"artwork"`
	Resolver Resolver `toml:"resolver"`
	History  History  `toml:"history"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized. A missing API key is not a load error; clients
// report it when they are constructed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("cinelookup.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the artwork and history directories when the
// corresponding features are enabled.
func (c *Config) EnsureDirectories() error {
	if c.Artwork.Enabled && strings.TrimSpace(c.Artwork.Dir) != "" {
		if err := os.MkdirAll(c.Artwork.Dir, 0o755); err != nil {
			return fmt.Errorf("create artwork directory %q: %w", c.Artwork.Dir, err)
		}
	}
	if c.History.Enabled && strings.TrimSpace(c.History.Path) != "" {
		if err := os.MkdirAll(filepath.Dir(c.History.Path), 0o755); err != nil {
			return fmt.Errorf("create history directory: %w", err)
		}
	}
	if dir := strings.TrimSpace(c.Logging.Dir); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log directory %q: %w", dir, err)
		}
	}
	return nil
}

// TMDBRequestTimeout returns the catalog HTTP timeout.
func (c *Config) TMDBRequestTimeout() time.Duration {
	return time.Duration(c.TMDB.RequestTimeout) * time.Second
}

// OMDbRequestTimeout returns the rating service HTTP timeout.
func (c *Config) OMDbRequestTimeout() time.Duration {
	return time.Duration(c.OMDb.RequestTimeout) * time.Second
}

// ArtworkDownloadTimeout returns the image CDN transport timeout.
func (c *Config) ArtworkDownloadTimeout() time.Duration {
	return time.Duration(c.Artwork.DownloadTimeout) * time.Second
}

// ArtworkSoftTimeout returns the caller-side deadline for poster and backdrop fetches.
func (c *Config) ArtworkSoftTimeout() time.Duration {
	return time.Duration(c.Artwork.SoftTimeout) * time.Second
}

// SearchCacheTTL returns how long identical catalog searches are memoized.
func (c *Config) SearchCacheTTL() time.Duration {
	return time.Duration(c.Resolver.SearchCacheTTL) * time.Second
}

// SearchInterval returns the minimum spacing between uncached catalog searches.
func (c *Config) SearchInterval() time.Duration {
	return time.Duration(c.Resolver.SearchIntervalMS) * time.Millisecond
}

// TMDBKeyHint is the actionable message shown when the catalog key is missing.
func (c *Config) TMDBKeyHint() string {
	keyFile := c.TMDB.APIKeyFile
	if keyFile == "" {
		keyFile = defaultAPIKeyFile
	}
	return fmt.Sprintf("TMDB API key missing. Set TMDB_API_KEY, run 'cinelookup config set-key <key>', or write it to %s", keyFile)
}

// OMDbKeyHint is the actionable message shown when the rating key is missing.
func (c *Config) OMDbKeyHint() string {
	return "OMDb API key missing. Set OMDB_API_KEY or edit [omdb] api_key in the config file"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultArtworkDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "cinelookup", "artwork")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/cinelookup/artwork"
	}
	return filepath.Join(home, ".cache", "cinelookup", "artwork")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the effective configuration as TOML. API keys are masked.
func (c *Config) Encode() ([]byte, error) {
	clone := *c
	clone.TMDB.APIKey = maskSecret(clone.TMDB.APIKey)
	clone.OMDb.APIKey = maskSecret(clone.OMDb.APIKey)
	data, err := toml.Marshal(clone)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

func maskSecret(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return "****"
	}
	return value[:2] + strings.Repeat("*", len(value)-4) + value[len(value)-2:]
}
