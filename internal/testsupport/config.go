package testsupport

import (
	"net/http/httptest"
	"path/filepath"
	"testing"

	"cinelookup/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Remote endpoints point at an unroutable placeholder until a test overrides
// them with WithTMDBServer or WithOMDbServer.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.TMDB.APIKey = "test"
	cfgVal.TMDB.APIKeyFile = filepath.Join(base, "config", "tmdbapikey.txt")
	cfgVal.TMDB.BaseURL = "http://127.0.0.1:0"
	cfgVal.TMDB.ImageBaseURL = "http://127.0.0.1:0"
	cfgVal.OMDb.BaseURL = "http://127.0.0.1:0/"
	cfgVal.Artwork.Dir = filepath.Join(base, "artwork")
	cfgVal.History.Path = filepath.Join(base, "data", "history.db")
	cfgVal.Logging.Dir = ""
	cfgVal.Resolver.SearchIntervalMS = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithTMDBKey sets the TMDB API key on the test config.
func WithTMDBKey(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.TMDB.APIKey = key
	}
}

// WithOMDbKey sets the OMDb API key on the test config.
func WithOMDbKey(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.OMDb.APIKey = key
	}
}

// WithTMDBServer points the catalog and image endpoints at server.
func WithTMDBServer(server *httptest.Server) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.TMDB.BaseURL = server.URL
		b.cfg.TMDB.ImageBaseURL = server.URL + "/images"
	}
}

// WithOMDbServer points the rating endpoint at server.
func WithOMDbServer(server *httptest.Server) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.OMDb.BaseURL = server.URL + "/"
	}
}

// WithArtworkDisabled turns the artwork cache off.
func WithArtworkDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Artwork.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Artwork.Dir)
}
