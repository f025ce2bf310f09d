package omdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"cinelookup/internal/media"
	"cinelookup/internal/services"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *[]url.Values) {
	t.Helper()
	var seen []url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.URL.Query())
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	client, err := New("secret", server.URL+"/")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return client, &seen
}

func TestFetchRatingByIMDbID(t *testing.T) {
	client, seen := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"Response":"True","imdbRating":"8.3","imdbVotes":"912,345","imdbID":"tt15398776"}`))
	})
	rating, err := client.FetchRating(context.Background(), &media.Detail{Title: "Oppenheimer", Year: 2023, Kind: media.KindMovie, IMDbID: "tt15398776"})
	if err != nil {
		t.Fatalf("FetchRating returned error: %v", err)
	}
	if rating.Value != "8.3" || rating.SourceID != "tt15398776" || rating.Votes != "912,345" {
		t.Fatalf("unexpected rating %+v", rating)
	}
	query := (*seen)[0]
	if query.Get("i") != "tt15398776" || query.Get("t") != "" || query.Get("apikey") != "secret" {
		t.Fatalf("unexpected query %v", query)
	}
}

func TestFetchRatingByTitleAndYear(t *testing.T) {
	client, seen := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"Response":"True","imdbRating":"7.9","imdbID":"tt0108778"}`))
	})
	rating, err := client.FetchRating(context.Background(), &media.Detail{Title: "Friends", Year: 1994, Kind: media.KindSeries})
	if err != nil {
		t.Fatalf("FetchRating returned error: %v", err)
	}
	if !rating.IsSet() || rating.Value != "7.9" {
		t.Fatalf("expected rating from title lookup, got %+v", rating)
	}
	query := (*seen)[0]
	if query.Get("t") != "Friends" || query.Get("y") != "1994" || query.Get("type") != "series" || query.Has("i") {
		t.Fatalf("unexpected query %v", query)
	}
}

func TestFetchRatingNotFoundIsNotAnError(t *testing.T) {
	cases := map[string]string{
		"response false": `{"Response":"False","Error":"Movie not found!"}`,
		"rating n/a":     `{"Response":"True","imdbRating":"N/A"}`,
		"rating missing": `{"Response":"True"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			detail := &media.Detail{ID: 1, Title: "Obscure", Kind: media.KindMovie}
			rating, err := client.FetchRating(context.Background(), detail)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if rating.IsSet() {
				t.Fatalf("expected unset rating, got %+v", rating)
			}
			if detail.Title != "Obscure" || detail.ID != 1 {
				t.Fatalf("detail must not be modified: %+v", detail)
			}
		})
	}
}

func TestFetchRatingRemoteFailures(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	_, err := client.FetchRating(context.Background(), &media.Detail{Title: "X"})
	if !errors.Is(err, services.ErrRemoteUnavailable) {
		t.Fatalf("expected remote unavailable, got %v", err)
	}

	client, _ = newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})
	_, err = client.FetchRating(context.Background(), &media.Detail{Title: "X"})
	if !errors.Is(err, services.ErrRemoteUnavailable) {
		t.Fatalf("expected remote unavailable for malformed body, got %v", err)
	}

	client, _ = newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	_, err = client.FetchRating(context.Background(), &media.Detail{Title: "X"})
	if !errors.Is(err, services.ErrConfigurationMissing) {
		t.Fatalf("expected configuration missing, got %v", err)
	}
}

func TestNewRequiresKey(t *testing.T) {
	if _, err := New("  ", ""); !errors.Is(err, services.ErrConfigurationMissing) {
		t.Fatalf("expected configuration missing, got %v", err)
	}
}

func TestFetchRatingRequiresTitleOrID(t *testing.T) {
	client, seen := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {})
	if _, err := client.FetchRating(context.Background(), &media.Detail{}); !errors.Is(err, services.ErrInvalidQuery) {
		t.Fatalf("expected invalid query, got %v", err)
	}
	if len(*seen) != 0 {
		t.Fatalf("expected no request, got %d", len(*seen))
	}
}
