package main

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"cinelookup/internal/services"
	"cinelookup/internal/testsupport"
)

func TestSearchShowsDetailAndPoster(t *testing.T) {
	env := setupCLITestEnv(t, catalogHandler())

	stdout, _, err := runCLI(t, []string{"search", "The Matrix (1999)"}, env.configPath)
	if err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	requireContains(t, stdout, "The Matrix")
	requireContains(t, stdout, "Year: 1999")
	requireContains(t, stdout, "Duration: 136 min")
	requireContains(t, stdout, "Director: Lana Wachowski")
	requireContains(t, stdout, "  • Keanu Reeves as Neo")
	requireContains(t, stdout, "Info loaded ✓")

	poster := filepath.Join(env.cfg.Artwork.Dir, "poster_603_matrix.jpg")
	requireContains(t, stdout, "Poster: "+poster)
	if info, err := os.Stat(poster); err != nil || info.Size() == 0 {
		t.Fatalf("expected cached poster at %s: %v", poster, err)
	}
}

func TestSearchJSONIncludesResolution(t *testing.T) {
	env := setupCLITestEnv(t, catalogHandler(), testsupport.WithArtworkDisabled())

	stdout, _, err := runCLI(t, []string{"search", "--json", "The Matrix", "--desc", "Sci-fi classic from 1999"}, env.configPath)
	if err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	var view detailView
	if err := json.Unmarshal([]byte(stdout), &view); err != nil {
		t.Fatalf("decode json: %v\n%s", err, stdout)
	}
	if view.ID != 603 || view.IMDbID != "tt0133093" {
		t.Fatalf("unexpected detail: %+v", view)
	}
	if view.Resolution == nil || view.Resolution.Tier != "year_match" || view.Resolution.Year != 1999 {
		t.Fatalf("unexpected resolution: %+v", view.Resolution)
	}
	if view.PosterFile != "" || view.Status != "Info loaded" {
		t.Fatalf("expected no poster with artwork disabled, got %+v", view)
	}
}

func TestSearchDirectKind(t *testing.T) {
	env := setupCLITestEnv(t, catalogHandler(), testsupport.WithArtworkDisabled())

	stdout, _, err := runCLI(t, []string{"search", "--kind", "movie", "--json", "Matrix"}, env.configPath)
	if err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	var view detailView
	if err := json.Unmarshal([]byte(stdout), &view); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if view.Resolution == nil || view.Resolution.Tier != "fallback_movie" {
		t.Fatalf("expected direct movie tier, got %+v", view.Resolution)
	}
}

func TestSearchNoResults(t *testing.T) {
	env := setupCLITestEnv(t, catalogHandler())

	stdout, _, err := runCLI(t, []string{"search", "Nothing Like This"}, env.configPath)
	if err != nil {
		t.Fatalf("expected no error for an empty result, got %v", err)
	}
	requireContains(t, stdout, services.NoResultsMessage)
}

func TestSearchRemoteFailureShowsNoResults(t *testing.T) {
	env := setupCLITestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	stdout, _, err := runCLI(t, []string{"search", "The Matrix"}, env.configPath)
	if err != nil {
		t.Fatalf("expected remote failure to degrade, got %v", err)
	}
	requireContains(t, stdout, services.NoResultsMessage)
}

func TestSearchMissingKeyIsActionable(t *testing.T) {
	env := setupCLITestEnv(t, catalogHandler(), testsupport.WithTMDBKey(""))

	_, _, err := runCLI(t, []string{"search", "The Matrix"}, env.configPath)
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if !services.IsUserVisible(err) {
		t.Fatalf("expected user visible error, got %v", err)
	}
	requireContains(t, services.UserMessage(err), "TMDB API key missing")
	if env.requests.Load() != 0 {
		t.Fatalf("expected no catalog requests, got %d", env.requests.Load())
	}
}

func TestSearchRecordsHistory(t *testing.T) {
	env := setupCLITestEnv(t, catalogHandler(), testsupport.WithArtworkDisabled())

	if _, _, err := runCLI(t, []string{"search", "The Matrix (1999)"}, env.configPath); err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	stdout, _, err := runCLI(t, []string{"history", "list", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("history list returned error: %v", err)
	}
	var entries []historyView
	if err := json.Unmarshal([]byte(stdout), &entries); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if len(entries) != 1 || entries[0].TMDBID != 603 || entries[0].CleanedTitle != "The Matrix" {
		t.Fatalf("unexpected history: %+v", entries)
	}

	stdout, _, err = runCLI(t, []string{"history", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("history clear returned error: %v", err)
	}
	requireContains(t, stdout, "Cleared 1 history entries")
}

func TestShowByID(t *testing.T) {
	env := setupCLITestEnv(t, catalogHandler(), testsupport.WithArtworkDisabled())

	stdout, _, err := runCLI(t, []string{"show", "movie", "603"}, env.configPath)
	if err != nil {
		t.Fatalf("show returned error: %v", err)
	}
	requireContains(t, stdout, "Genres: Action, Science Fiction")

	if _, _, err := runCLI(t, []string{"show", "person", "603"}, env.configPath); err == nil {
		t.Fatal("expected error for person kind")
	}
	if _, _, err := runCLI(t, []string{"show", "movie", "abc"}, env.configPath); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}

func TestPersonCommand(t *testing.T) {
	env := setupCLITestEnv(t, catalogHandler())

	stdout, _, err := runCLI(t, []string{"person", "Keanu", "Reeves"}, env.configPath)
	if err != nil {
		t.Fatalf("person returned error: %v", err)
	}
	requireContains(t, stdout, "Keanu Reeves")
	requireContains(t, stdout, "The Matrix")
	requireContains(t, stdout, "Photo: "+filepath.Join(env.cfg.Artwork.Dir, "person_6384_keanu.jpg"))
}

func TestListCommand(t *testing.T) {
	env := setupCLITestEnv(t, catalogHandler())

	stdout, _, err := runCLI(t, []string{"list", "popular"}, env.configPath)
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	requireContains(t, stdout, "The Matrix Reloaded")
	requireContains(t, stdout, "2003")

	if _, _, err := runCLI(t, []string{"list", "bogus"}, env.configPath); err == nil {
		t.Fatal("expected error for unknown list")
	}
}

func TestImagesCommandOrdersBestFirst(t *testing.T) {
	env := setupCLITestEnv(t, catalogHandler())

	stdout, _, err := runCLI(t, []string{"images", "movie", "603", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("images returned error: %v", err)
	}
	var manifest struct {
		Posters []struct {
			FilePath string
		} `json:"posters"`
		Backdrops []struct {
			FilePath string
		} `json:"backdrops"`
	}
	if err := json.Unmarshal([]byte(stdout), &manifest); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if len(manifest.Posters) != 2 || manifest.Posters[0].FilePath != "/high.jpg" {
		t.Fatalf("expected best poster first, got %+v", manifest.Posters)
	}
	if len(manifest.Backdrops) != 1 {
		t.Fatalf("expected one backdrop, got %+v", manifest.Backdrops)
	}
}

func TestRatingRequiresKey(t *testing.T) {
	env := setupCLITestEnv(t, catalogHandler())

	_, _, err := runCLI(t, []string{"rating", "movie", "603"}, env.configPath)
	if !services.IsUserVisible(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	requireContains(t, services.UserMessage(err), "OMDb API key missing")
}

func TestRatingCommand(t *testing.T) {
	omdbServer := testsupport.NewJSONServer(t, `{"Response":"True","imdbRating":"8.7","imdbVotes":"2,100,000","imdbID":"tt0133093"}`)
	env := setupCLITestEnv(t, catalogHandler(),
		testsupport.WithOMDbKey("omdb"),
		testsupport.WithOMDbServer(omdbServer),
	)

	stdout, _, err := runCLI(t, []string{"rating", "movie", "603"}, env.configPath)
	if err != nil {
		t.Fatalf("rating returned error: %v", err)
	}
	requireContains(t, stdout, "The Matrix (1999)")
	requireContains(t, stdout, "IMDb: 8.7/10 (2,100,000 votes)")
}
