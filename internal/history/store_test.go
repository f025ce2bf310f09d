package history_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"cinelookup/internal/history"
	"cinelookup/internal/media"
	"cinelookup/internal/testsupport"
)

func TestRecordAndListNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	if err := store.Record(ctx, history.Entry{
		Token:        "a",
		RawText:      "Oppenheimer (2023) [HD]",
		CleanedTitle: "Oppenheimer",
		YearHint:     2023,
		Tier:         "year_match",
		TMDBID:       872585,
		Kind:         media.KindMovie,
		Title:        "Oppenheimer",
		Year:         2023,
		Calls:        1,
	}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := store.Record(ctx, history.Entry{Token: "b", RawText: "zzz", CleanedTitle: "zzz", Tier: "none", Calls: 3}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	entries, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Token != "b" || entries[0].Matched() {
		t.Fatalf("expected unmatched newest entry first, got %+v", entries[0])
	}
	first := entries[1]
	if !first.Matched() || first.TMDBID != 872585 || first.Kind != media.KindMovie || first.Year != 2023 || first.YearHint != 2023 {
		t.Fatalf("unexpected entry %+v", first)
	}
	if first.CreatedAt.IsZero() {
		t.Fatal("expected created timestamp")
	}

	limited, err := store.List(ctx, 1)
	if err != nil || len(limited) != 1 {
		t.Fatalf("expected 1 entry with limit, got %d err=%v", len(limited), err)
	}
}

func TestRecordPrunesToMaxEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.OpenPath(path, 3)
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	for i := 1; i <= 5; i++ {
		testsupport.RecordLookup(t, store, fmt.Sprintf("title-%d", i), int64(i))
	}
	entries, err := store.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries after prune, got %d", len(entries))
	}
	if entries[0].RawText != "title-5" || entries[2].RawText != "title-3" {
		t.Fatalf("unexpected survivors: %+v", entries)
	}
}

func TestClear(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	testsupport.RecordLookup(t, store, "a", 1)
	testsupport.RecordLookup(t, store, "b", 2)

	removed, err := store.Clear(context.Background())
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed = %d, want 2", removed)
	}
	entries, err := store.List(context.Background(), 0)
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected empty history, got %d err=%v", len(entries), err)
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	store, err := history.OpenPath(path, 0)
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	testsupport.RecordLookup(t, store, "kept", 9)
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := history.OpenPath(path, 0)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	t.Cleanup(func() { reopened.Close() })
	entries, err := reopened.List(context.Background(), 0)
	if err != nil || len(entries) != 1 || entries[0].TMDBID != 9 {
		t.Fatalf("unexpected entries after reopen: %+v err=%v", entries, err)
	}
}

func TestOpenPathRejectsEmpty(t *testing.T) {
	if _, err := history.OpenPath("  ", 0); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.OpenPath(path, 0)
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open failed: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("update version: %v", err)
	}
	db.Close()

	if _, err := history.OpenPath(path, 0); !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}
