package testsupport

import (
	"context"
	"testing"

	"cinelookup/internal/config"
	"cinelookup/internal/history"
)

// MustOpenHistory opens a history.Store for tests and registers cleanup.
func MustOpenHistory(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// RecordLookup inserts a matched history entry for tests.
func RecordLookup(t testing.TB, store *history.Store, raw string, id int64) history.Entry {
	t.Helper()

	entry := history.Entry{
		Token:        "token-" + raw,
		RawText:      raw,
		CleanedTitle: raw,
		Tier:         "popularity",
		TMDBID:       id,
		Title:        raw,
	}
	if err := store.Record(context.Background(), entry); err != nil {
		t.Fatalf("store.Record: %v", err)
	}
	return entry
}
