package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"cinelookup/internal/artwork"
	"cinelookup/internal/config"
	"cinelookup/internal/history"
	"cinelookup/internal/identification"
	"cinelookup/internal/identification/tmdb"
	"cinelookup/internal/language"
	"cinelookup/internal/logging"
	"cinelookup/internal/lookup"
	"cinelookup/internal/services"
	"cinelookup/internal/services/omdb"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string
	languageFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, logLevelFlag, languageFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		languageFlag: languageFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.TrimSpace(*c.logLevelFlag); level != "" {
				cfg.Logging.Level = level
			}
		}
		if c.languageFlag != nil {
			if value := strings.TrimSpace(*c.languageFlag); value != "" {
				if !language.Supported(value) {
					c.configErr = fmt.Errorf("unsupported language %q (see 'cinelookup config languages')", value)
					return
				}
				cfg.TMDB.Language = language.Canonical(value)
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

func (c *commandContext) log() *slog.Logger {
	c.loggerOnce.Do(func() {
		logger, err := logging.NewFromConfig(c.configValue())
		if err != nil {
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

// session holds the clients and stores one command invocation works with.
type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	catalog *tmdb.Client
	ratings *omdb.Client
	artwork *artwork.Cache
	history *history.Store
	service *lookup.Service
}

func (c *commandContext) withSession(fn func(*session) error) error {
	s, err := c.openSession()
	if err != nil {
		return err
	}
	defer s.close()
	return fn(s)
}

func (c *commandContext) openSession() (*session, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger := c.log()

	catalog, err := newCatalog(cfg, logger)
	if err != nil {
		return nil, err
	}
	s := &session{
		cfg:     cfg,
		logger:  logger,
		catalog: catalog,
		artwork: artwork.NewFromConfig(cfg, logger),
	}

	opts := []lookup.Option{
		lookup.WithLogger(logger),
		lookup.WithSoftTimeout(cfg.ArtworkSoftTimeout()),
	}
	if s.artwork.Enabled() {
		opts = append(opts, lookup.WithArtwork(s.artwork))
	}
	if ratings, err := newRatings(cfg, logger); err != nil {
		logger.Debug("secondary ratings disabled", logging.Error(err))
	} else {
		s.ratings = ratings
		opts = append(opts, lookup.WithRatings(ratings))
	}
	if cfg.History.Enabled {
		store, err := history.Open(cfg)
		if err != nil {
			logging.WarnWithContext(logger, "history store unavailable", "history_open_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check history.path permissions or disable history"),
				logging.String(logging.FieldImpact, "lookups are not recorded"),
			)
		} else {
			s.history = store
			opts = append(opts, lookup.WithRecorder(store))
		}
	}

	search := identification.NewCachedSearcher(catalog, cfg.SearchCacheTTL(), cfg.SearchInterval())
	resolver := identification.NewResolver(search,
		identification.WithShortRuntimeThreshold(cfg.Resolver.ShortRuntimeMinutes),
		identification.WithResolverLogger(logger),
	)
	s.service = lookup.NewService(resolver, search, catalog, opts...)
	return s, nil
}

func (s *session) close() {
	if s.history != nil {
		if err := s.history.Close(); err != nil {
			s.logger.Debug("close history store failed", logging.Error(err))
		}
	}
}

// report turns a lookup failure into what the user sees. Configuration
// problems and cancellation propagate; everything else prints the no
// results message and exits cleanly.
func (s *session) report(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || services.IsUserVisible(err) {
		return err
	}
	logging.WithContext(cmd.Context(), s.logger).Debug("lookup failed", logging.Error(err))
	fmt.Fprintln(cmd.OutOrStdout(), services.UserMessage(err))
	return nil
}

func newCatalog(cfg *config.Config, logger *slog.Logger) (*tmdb.Client, error) {
	if strings.TrimSpace(cfg.TMDB.APIKey) == "" {
		return nil, services.MissingConfig("tmdb", "api_key", cfg.TMDBKeyHint())
	}
	return tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language,
		tmdb.WithTimeout(cfg.TMDBRequestTimeout()),
		tmdb.WithListLimit(cfg.Resolver.ListLimit),
		tmdb.WithLogger(logger),
	)
}

func newRatings(cfg *config.Config, logger *slog.Logger) (*omdb.Client, error) {
	if strings.TrimSpace(cfg.OMDb.APIKey) == "" {
		return nil, services.MissingConfig("omdb", "api_key", cfg.OMDbKeyHint())
	}
	return omdb.New(cfg.OMDb.APIKey, cfg.OMDb.BaseURL,
		omdb.WithTimeout(cfg.OMDbRequestTimeout()),
		omdb.WithLogger(logger),
	)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
