package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cinelookup/internal/language"
	"cinelookup/internal/logging"
	"cinelookup/internal/media"
	"cinelookup/internal/services"
)

const (
	defaultListLimit = 20
	maxResponseBytes = 8 << 20
)

// Client provides access to the TMDB API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	listLimit  int
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithLogger attaches a logger for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "tmdb")
	}
}

// WithListLimit caps curated list results.
func WithListLimit(limit int) Option {
	return func(c *Client) {
		if limit > 0 {
			c.listLimit = limit
		}
	}
}

// New creates a TMDB client. An empty API key yields ErrConfigurationMissing.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, services.Wrap(services.ErrConfigurationMissing, "tmdb", "new client", "api key required", nil)
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, services.Wrap(services.ErrConfigurationMissing, "tmdb", "new client", "base url required", nil)
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		listLimit:  defaultListLimit,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logging.NewComponentLogger(nil, "tmdb"),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SearchMovies searches movies; year filters on primary release year.
func (c *Client) SearchMovies(ctx context.Context, title string, year int) ([]media.Candidate, error) {
	params, err := searchParams(title)
	if err != nil {
		return nil, err
	}
	if year > 0 {
		params.Set("primary_release_year", strconv.Itoa(year))
	}
	var payload searchResponse
	if err := c.get(ctx, "search_movie", "/search/movie", params, &payload); err != nil {
		return nil, err
	}
	return parseCandidates(payload.Results, media.KindMovie), nil
}

// SearchSeries searches TV series; year filters on first air date year.
func (c *Client) SearchSeries(ctx context.Context, title string, year int) ([]media.Candidate, error) {
	params, err := searchParams(title)
	if err != nil {
		return nil, err
	}
	if year > 0 {
		params.Set("first_air_date_year", strconv.Itoa(year))
	}
	var payload searchResponse
	if err := c.get(ctx, "search_tv", "/search/tv", params, &payload); err != nil {
		return nil, err
	}
	return parseCandidates(payload.Results, media.KindSeries), nil
}

// SearchMulti searches movies, series and people in one call. Results keep
// the catalog's relevance order.
func (c *Client) SearchMulti(ctx context.Context, title string, year int) ([]media.Candidate, error) {
	params, err := searchParams(title)
	if err != nil {
		return nil, err
	}
	if year > 0 {
		params.Set("year", strconv.Itoa(year))
	}
	var payload searchResponse
	if err := c.get(ctx, "search_multi", "/search/multi", params, &payload); err != nil {
		return nil, err
	}
	return parseCandidates(payload.Results, media.KindUnknown), nil
}

// SearchPerson searches people by name.
func (c *Client) SearchPerson(ctx context.Context, name string) ([]media.Candidate, error) {
	params, err := searchParams(name)
	if err != nil {
		return nil, err
	}
	var payload searchResponse
	if err := c.get(ctx, "search_person", "/search/person", params, &payload); err != nil {
		return nil, err
	}
	return parseCandidates(payload.Results, media.KindPerson), nil
}

// FetchDetail returns the full movie or series record including credits and
// external ids.
func (c *Client) FetchDetail(ctx context.Context, id int64, kind media.Kind) (*media.Detail, error) {
	if id <= 0 {
		return nil, services.Wrap(services.ErrInvalidQuery, "tmdb", "fetch_detail", "id must be positive", nil)
	}
	if !kind.Title() {
		return nil, services.Wrap(services.ErrInvalidQuery, "tmdb", "fetch_detail", fmt.Sprintf("unsupported kind %q", kind), nil)
	}
	params := url.Values{}
	params.Set("append_to_response", "credits,external_ids")
	var payload detailPayload
	if err := c.get(ctx, "fetch_detail", fmt.Sprintf("/%s/%d", kind, id), params, &payload); err != nil {
		return nil, err
	}
	return parseDetail(payload, kind), nil
}

// FetchPersonDetail returns biography and filmography for a person.
func (c *Client) FetchPersonDetail(ctx context.Context, id int64) (*media.PersonDetail, error) {
	if id <= 0 {
		return nil, services.Wrap(services.ErrInvalidQuery, "tmdb", "fetch_person", "id must be positive", nil)
	}
	params := url.Values{}
	params.Set("append_to_response", "movie_credits,tv_credits")
	var payload personPayload
	if err := c.get(ctx, "fetch_person", fmt.Sprintf("/person/%d", id), params, &payload); err != nil {
		return nil, err
	}
	return parsePerson(payload), nil
}

// FetchCuratedList returns a curated list capped at the configured limit.
func (c *Client) FetchCuratedList(ctx context.Context, category media.Category, kind media.Kind) ([]media.Candidate, error) {
	path, err := curatedPath(category, kind)
	if err != nil {
		return nil, err
	}
	var payload searchResponse
	if err := c.get(ctx, "fetch_list", path, url.Values{}, &payload); err != nil {
		return nil, err
	}
	candidates := parseCandidates(payload.Results, kind)
	if len(candidates) > c.listLimit {
		candidates = candidates[:c.listLimit]
	}
	return candidates, nil
}

// FetchImageManifest returns alternate posters and backdrops ordered best
// first.
func (c *Client) FetchImageManifest(ctx context.Context, id int64, kind media.Kind) (*media.ImageManifest, error) {
	if id <= 0 {
		return nil, services.Wrap(services.ErrInvalidQuery, "tmdb", "fetch_images", "id must be positive", nil)
	}
	if !kind.Title() {
		return nil, services.Wrap(services.ErrInvalidQuery, "tmdb", "fetch_images", fmt.Sprintf("unsupported kind %q", kind), nil)
	}
	params := url.Values{}
	params.Set("include_image_language", imageLanguages(c.language))
	// The language filter would hide untagged images.
	params.Set("language", "")
	var payload imagesPayload
	if err := c.get(ctx, "fetch_images", fmt.Sprintf("/%s/%d/images", kind, id), params, &payload); err != nil {
		return nil, err
	}
	manifest := parseImages(payload, id, kind)
	manifest.SortBest()
	return manifest, nil
}

// Ping verifies the key against the configuration endpoint.
func (c *Client) Ping(ctx context.Context) error {
	var payload map[string]any
	return c.get(ctx, "ping", "/configuration", url.Values{}, &payload)
}

func searchParams(query string) (url.Values, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, services.Wrap(services.ErrInvalidQuery, "tmdb", "search", "query must not be empty", nil)
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	return params, nil
}

func curatedPath(category media.Category, kind media.Kind) (string, error) {
	switch category {
	case media.CategoryPopular:
		return fmt.Sprintf("/%s/popular", kind), validListKind(kind, true)
	case media.CategoryTrending:
		return fmt.Sprintf("/trending/%s/week", kind), validListKind(kind, true)
	case media.CategoryTopRated:
		return fmt.Sprintf("/%s/top_rated", kind), validListKind(kind, false)
	case media.CategoryUpcoming:
		if kind == media.KindSeries {
			return "/tv/on_the_air", nil
		}
		return "/movie/upcoming", validListKind(kind, false)
	default:
		return "", services.Wrap(services.ErrInvalidQuery, "tmdb", "fetch_list", fmt.Sprintf("unknown category %q", category), nil)
	}
}

func validListKind(kind media.Kind, allowPerson bool) error {
	if kind.Title() || (allowPerson && kind == media.KindPerson) {
		return nil
	}
	return services.Wrap(services.ErrInvalidQuery, "tmdb", "fetch_list", fmt.Sprintf("unsupported kind %q", kind), nil)
}

func imageLanguages(tag string) string {
	primary := language.ToISO2(tag)
	if primary == "" {
		primary, _, _ = strings.Cut(tag, "-")
		primary = strings.ToLower(strings.TrimSpace(primary))
	}
	if primary == "" || primary == "en" {
		return "en,null"
	}
	return primary + ",en,null"
}

func (c *Client) get(ctx context.Context, operation, path string, params url.Values, dest any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return services.Wrap(services.ErrRemoteUnavailable, "tmdb", operation, "parse tmdb url", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if _, ok := params["language"]; !ok && c.language != "" {
		params.Set("language", c.language)
	}
	if params.Get("language") == "" {
		params.Del("language")
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return services.Wrap(services.ErrRemoteUnavailable, "tmdb", operation, "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return c.fail(ctx, services.ErrRemoteUnavailable, operation, fmt.Sprintf("execute request (latency=%v)", latency), redactURLError(err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return c.fail(ctx, services.ErrNotFound, operation, fmt.Sprintf("tmdb %s returned %d", path, resp.StatusCode), nil)
	case resp.StatusCode == http.StatusUnauthorized:
		return c.fail(ctx, services.ErrConfigurationMissing, operation, "tmdb rejected the api key", nil)
	case resp.StatusCode != http.StatusOK:
		return c.fail(ctx, services.ErrRemoteUnavailable, operation, fmt.Sprintf("tmdb %s returned %d (latency=%v)", path, resp.StatusCode, latency), nil)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(dest); err != nil {
		return c.fail(ctx, services.ErrRemoteUnavailable, operation, "decode tmdb response", err)
	}
	return nil
}

func (c *Client) fail(ctx context.Context, marker error, operation, message string, err error) error {
	wrapped := services.Wrap(marker, "tmdb", operation, message, err)
	logger := logging.WithContext(ctx, c.logger)
	if errors.Is(marker, services.ErrNotFound) {
		logger.Debug("tmdb entity not found", logging.String("operation", operation))
		return wrapped
	}
	logging.WarnWithContext(logger, "tmdb request failed", "tmdb_request_failed",
		logging.String("operation", operation),
		logging.Error(wrapped),
		logging.String(logging.FieldErrorHint, "check network connectivity and tmdb.api_key"),
		logging.String(logging.FieldImpact, "lookup continues with an empty result"),
	)
	return wrapped
}

// redactURLError strips the api_key query parameter from transport errors,
// which echo the full request URL.
func redactURLError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	parsed, perr := url.Parse(urlErr.URL)
	if perr != nil {
		return err
	}
	query := parsed.Query()
	if query.Has("api_key") {
		query.Set("api_key", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return &url.Error{Op: urlErr.Op, URL: parsed.String(), Err: urlErr.Err}
}
