package omdb

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

	"cinelookup/internal/logging"
	"cinelookup/internal/media"
	"cinelookup/internal/services"
)

// DefaultBaseURL is the public OMDb endpoint.
const DefaultBaseURL = "https://www.omdbapi.com/"

const maxResponseBytes = 1 << 20

// Client queries OMDb for ratings.
type Client struct {
	apiKey     string
	baseURL    string
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

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "omdb")
	}
}

// New builds a client. An empty key yields ErrConfigurationMissing.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, services.Wrap(services.ErrConfigurationMissing, "omdb", "new client", "api key required", nil)
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logging.NewComponentLogger(nil, "omdb"),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type ratingPayload struct {
	Response   string `json:"Response"`
	Error      string `json:"Error"`
	IMDbRating string `json:"imdbRating"`
	IMDbVotes  string `json:"imdbVotes"`
	IMDbID     string `json:"imdbID"`
}

// FetchRating returns the rating for detail. Lookups by IMDb id are used when
// the detail carries one; otherwise title, year and type are sent.
func (c *Client) FetchRating(ctx context.Context, detail *media.Detail) (media.SecondaryRating, error) {
	if detail == nil {
		return media.SecondaryRating{}, services.Wrap(services.ErrInvalidQuery, "omdb", "fetch_rating", "detail required", nil)
	}
	params, err := ratingParams(detail)
	if err != nil {
		return media.SecondaryRating{}, err
	}
	params.Set("apikey", c.apiKey)

	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return media.SecondaryRating{}, services.Wrap(services.ErrRemoteUnavailable, "omdb", "fetch_rating", "parse omdb url", err)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return media.SecondaryRating{}, services.Wrap(services.ErrRemoteUnavailable, "omdb", "fetch_rating", "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return media.SecondaryRating{}, c.fail(ctx, "execute request", redactKey(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return media.SecondaryRating{}, services.Wrap(services.ErrConfigurationMissing, "omdb", "fetch_rating", "omdb rejected the api key", nil)
	}
	if resp.StatusCode != http.StatusOK {
		return media.SecondaryRating{}, c.fail(ctx, fmt.Sprintf("omdb returned %d", resp.StatusCode), nil)
	}

	var payload ratingPayload
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return media.SecondaryRating{}, c.fail(ctx, "decode omdb response", err)
	}
	rating := parseRating(payload)
	logging.WithContext(ctx, c.logger).Debug("omdb rating lookup",
		logging.String("imdb_id", detail.IMDbID),
		logging.Bool("found", rating.IsSet()),
	)
	return rating, nil
}

func ratingParams(detail *media.Detail) (url.Values, error) {
	params := url.Values{}
	if id := strings.TrimSpace(detail.IMDbID); id != "" {
		params.Set("i", id)
		return params, nil
	}
	title := strings.TrimSpace(detail.Title)
	if title == "" {
		return nil, services.Wrap(services.ErrInvalidQuery, "omdb", "fetch_rating", "title or imdb id required", nil)
	}
	params.Set("t", title)
	if detail.Year > 0 {
		params.Set("y", strconv.Itoa(detail.Year))
	}
	switch detail.Kind {
	case media.KindMovie:
		params.Set("type", "movie")
	case media.KindSeries:
		params.Set("type", "series")
	}
	return params, nil
}

func parseRating(payload ratingPayload) media.SecondaryRating {
	if !strings.EqualFold(strings.TrimSpace(payload.Response), "True") {
		return media.SecondaryRating{}
	}
	value := strings.TrimSpace(payload.IMDbRating)
	if value == "" || strings.EqualFold(value, "N/A") {
		return media.SecondaryRating{}
	}
	if _, err := strconv.ParseFloat(value, 64); err != nil {
		return media.SecondaryRating{}
	}
	votes := strings.TrimSpace(payload.IMDbVotes)
	if strings.EqualFold(votes, "N/A") {
		votes = ""
	}
	return media.SecondaryRating{Value: value, Votes: votes, SourceID: strings.TrimSpace(payload.IMDbID)}
}

func (c *Client) fail(ctx context.Context, message string, err error) error {
	wrapped := services.Wrap(services.ErrRemoteUnavailable, "omdb", "fetch_rating", message, err)
	logging.WarnWithContext(logging.WithContext(ctx, c.logger), "omdb request failed", "omdb_request_failed",
		logging.Error(wrapped),
		logging.String(logging.FieldErrorHint, "check network connectivity and omdb.api_key"),
		logging.String(logging.FieldImpact, "rating left empty"),
	)
	return wrapped
}

func redactKey(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	parsed, perr := url.Parse(urlErr.URL)
	if perr != nil {
		return err
	}
	query := parsed.Query()
	if query.Has("apikey") {
		query.Set("apikey", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return &url.Error{Op: urlErr.Op, URL: parsed.String(), Err: urlErr.Err}
}
