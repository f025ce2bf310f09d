package media_test

import (
	"testing"

	"cinelookup/internal/media"
)

func TestParseKind(t *testing.T) {
	cases := map[string]media.Kind{
		"movie":  media.KindMovie,
		"TV":     media.KindSeries,
		"series": media.KindSeries,
		"person": media.KindPerson,
	}
	for input, want := range cases {
		got, ok := media.ParseKind(input)
		if !ok || got != want {
			t.Fatalf("ParseKind(%q) = %q,%v want %q", input, got, ok, want)
		}
	}
	if _, ok := media.ParseKind("album"); ok {
		t.Fatal("expected unknown kind to be rejected")
	}
	if media.KindPerson.Title() {
		t.Fatal("person must not count as a title kind")
	}
}

func TestYearFromDate(t *testing.T) {
	cases := map[string]int{
		"2023-07-19": 2023,
		"1999":       1999,
		"":           0,
		"abc":        0,
		"0000-01-01": 0,
	}
	for input, want := range cases {
		if got := media.YearFromDate(input); got != want {
			t.Fatalf("YearFromDate(%q) = %d want %d", input, got, want)
		}
	}
}

func TestImageManifestSortBestIsStable(t *testing.T) {
	manifest := &media.ImageManifest{
		Posters: []media.ImageRef{
			{FilePath: "/a.jpg", VoteAverage: 5, VoteCount: 2},  // 10
			{FilePath: "/b.jpg", VoteAverage: 8, VoteCount: 10}, // 80
			{FilePath: "/c.jpg", VoteAverage: 2, VoteCount: 5},  // 10
		},
		Backdrops: []media.ImageRef{
			{FilePath: "/x.jpg"},
			{FilePath: "/y.jpg", VoteAverage: 1, VoteCount: 1},
		},
	}
	manifest.SortBest()
	got := []string{manifest.Posters[0].FilePath, manifest.Posters[1].FilePath, manifest.Posters[2].FilePath}
	want := []string{"/b.jpg", "/a.jpg", "/c.jpg"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("poster order = %v want %v", got, want)
		}
	}
	if manifest.Backdrops[0].FilePath != "/y.jpg" {
		t.Fatalf("unexpected backdrop order: %+v", manifest.Backdrops)
	}
}

func TestDetailDirectorsAndTopCast(t *testing.T) {
	detail := &media.Detail{
		Crew: []media.CrewMember{
			{Name: "A", Job: "Director"},
			{Name: "B", Job: "Writer"},
			{Name: "A", Job: "Director"},
			{Name: "C", Job: "Director"},
			{Name: "D", Job: "Director"},
			{Name: "E", Job: "Director"},
		},
		Cast: []media.CastMember{
			{Name: "third", Order: 2},
			{Name: "first", Order: 0},
			{Name: "second", Order: 1},
		},
	}
	directors := detail.Directors(3)
	if len(directors) != 3 || directors[0] != "A" || directors[1] != "C" || directors[2] != "D" {
		t.Fatalf("unexpected directors: %v", directors)
	}
	cast := detail.TopCast(2)
	if len(cast) != 2 || cast[0].Name != "first" || cast[1].Name != "second" {
		t.Fatalf("unexpected cast: %+v", cast)
	}
	if detail.Cast[0].Name != "third" {
		t.Fatal("TopCast must not reorder the detail in place")
	}
}

func TestPersonKnownForDedupesAndRanks(t *testing.T) {
	person := &media.PersonDetail{
		MovieCredits: []media.PersonCredit{
			{Candidate: media.Candidate{ID: 1, Kind: media.KindMovie, Title: "Low", VoteAverage: 5, VoteCount: 10}},
			{Candidate: media.Candidate{ID: 2, Kind: media.KindMovie, Title: "High", VoteAverage: 8, VoteCount: 1000}},
			{Candidate: media.Candidate{ID: 2, Kind: media.KindMovie, Title: "High", VoteAverage: 8, VoteCount: 1000}},
		},
		TVCredits: []media.PersonCredit{
			{Candidate: media.Candidate{ID: 1, Kind: media.KindSeries, Title: "Show", VoteAverage: 7, VoteCount: 100}},
		},
	}
	known := person.KnownFor(0)
	if len(known) != 3 {
		t.Fatalf("expected 3 credits after dedupe, got %d", len(known))
	}
	if known[0].Title != "High" || known[1].Title != "Show" || known[2].Title != "Low" {
		t.Fatalf("unexpected order: %+v", known)
	}
	if len(person.KnownFor(1)) != 1 {
		t.Fatal("expected limit to apply")
	}
}

func TestParseCategory(t *testing.T) {
	if c, ok := media.ParseCategory("top-rated"); !ok || c != media.CategoryTopRated {
		t.Fatalf("unexpected category %q %v", c, ok)
	}
	if _, ok := media.ParseCategory("worst"); ok {
		t.Fatal("expected unknown category to be rejected")
	}
}
