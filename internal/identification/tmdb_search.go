package identification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"cinelookup/internal/media"
)

// Searcher defines the catalog operations the resolver needs.
type Searcher interface {
	SearchMulti(ctx context.Context, title string, year int) ([]media.Candidate, error)
	SearchMovies(ctx context.Context, title string, year int) ([]media.Candidate, error)
	SearchSeries(ctx context.Context, title string, year int) ([]media.Candidate, error)
	FetchDetail(ctx context.Context, id int64, kind media.Kind) (*media.Detail, error)
}

type searchMode string

const (
	searchModeMovie searchMode = "movie"
	searchModeTV    searchMode = "tv"
	searchModeMulti searchMode = "multi"
)

type searchCacheEntry struct {
	results []media.Candidate
	expires time.Time
}

// cachedSearch memoizes identical searches for a short TTL and spaces
// uncached searches by a minimum interval. Details pass straight through:
// they are fetched fresh on every navigation.
type cachedSearch struct {
	client     Searcher
	cache      map[string]searchCacheEntry
	cacheTTL   time.Duration
	rateLimit  time.Duration
	mu         sync.Mutex
	lastLookup time.Time
}

var _ Searcher = (*cachedSearch)(nil)

// NewCachedSearcher wraps client with a search memo. A zero ttl disables
// caching; a zero interval disables spacing.
func NewCachedSearcher(client Searcher, ttl, interval time.Duration) Searcher {
	if client == nil {
		return &cachedSearch{}
	}
	return &cachedSearch{
		client:     client,
		cache:      make(map[string]searchCacheEntry),
		cacheTTL:   ttl,
		rateLimit:  interval,
		lastLookup: time.Unix(0, 0),
	}
}

func (s *cachedSearch) SearchMulti(ctx context.Context, title string, year int) ([]media.Candidate, error) {
	return s.search(ctx, title, year, searchModeMulti)
}

func (s *cachedSearch) SearchMovies(ctx context.Context, title string, year int) ([]media.Candidate, error) {
	return s.search(ctx, title, year, searchModeMovie)
}

func (s *cachedSearch) SearchSeries(ctx context.Context, title string, year int) ([]media.Candidate, error) {
	return s.search(ctx, title, year, searchModeTV)
}

func (s *cachedSearch) FetchDetail(ctx context.Context, id int64, kind media.Kind) (*media.Detail, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("catalog client unavailable")
	}
	return s.client.FetchDetail(ctx, id, kind)
}

func (s *cachedSearch) search(ctx context.Context, title string, year int, mode searchMode) ([]media.Candidate, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("catalog client unavailable")
	}

	key := fmt.Sprintf("%s|%s|y=%d", mode, strings.ToLower(strings.TrimSpace(title)), year)
	now := time.Now()

	s.mu.Lock()
	if entry, ok := s.cache[key]; ok && now.Before(entry.expires) {
		results := entry.results
		s.mu.Unlock()
		return results, nil
	}

	wait := s.rateLimit - now.Sub(s.lastLookup)
	if wait > 0 {
		s.mu.Unlock()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		s.mu.Lock()
	}
	s.lastLookup = time.Now()
	s.mu.Unlock()

	var (
		results []media.Candidate
		err     error
	)
	switch mode {
	case searchModeTV:
		results, err = s.client.SearchSeries(ctx, title, year)
	case searchModeMulti:
		results, err = s.client.SearchMulti(ctx, title, year)
	default:
		results, err = s.client.SearchMovies(ctx, title, year)
	}
	if err != nil {
		return nil, err
	}

	if s.cacheTTL > 0 {
		s.mu.Lock()
		s.cache[key] = searchCacheEntry{results: results, expires: time.Now().Add(s.cacheTTL)}
		s.mu.Unlock()
	}
	return results, nil
}
