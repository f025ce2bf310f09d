package identification

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"cinelookup/internal/identification/tmdb"
	"cinelookup/internal/media"
	"cinelookup/internal/services"
)

func TestLookupDirectReturnsFirstMovie(t *testing.T) {
	var captured url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		captured = r.URL.Query()
		payload := map[string]any{
			"page": 1,
			"results": []map[string]any{
				{"id": 862, "title": "Toy Story", "release_date": "1995-11-19", "popularity": 65.4},
				{"id": 863, "title": "Toy Story 2", "release_date": "1999-10-30", "popularity": 99.0},
			},
		}
		_ = json.NewEncoder(w).Encode(payload)
	}))
	defer server.Close()

	client, err := tmdb.New("key", server.URL, "en-US")
	if err != nil {
		t.Fatalf("tmdb.New failed: %v", err)
	}

	match, query, err := LookupDirect(context.Background(), client, media.KindMovie, "Toy Story (1995) [HD]")
	if err != nil {
		t.Fatalf("LookupDirect returned error: %v", err)
	}
	if match.ID != 862 || match.Kind != media.KindMovie {
		t.Fatalf("expected first result, got %+v", match)
	}
	if query.CleanedTitle != "Toy Story" || query.Year != 1995 {
		t.Fatalf("unexpected query %+v", query)
	}
	if captured.Get("query") != "Toy Story" || captured.Get("primary_release_year") != "1995" {
		t.Fatalf("unexpected query params: %v", captured)
	}
}

func TestLookupDirectNotFound(t *testing.T) {
	stub := &stubSearcher{}
	_, _, err := LookupDirect(context.Background(), stub, media.KindSeries, "Nothing")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, _, err := LookupDirect(context.Background(), stub, media.KindPerson, "Nothing"); !errors.Is(err, services.ErrInvalidQuery) {
		t.Fatalf("expected invalid query for person, got %v", err)
	}
}
