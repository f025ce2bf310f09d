package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cinelookup/internal/media"
)

// Entry is one recorded lookup. Match fields are zero when nothing matched.
type Entry struct {
	ID           int64
	Token        string
	RawText      string
	CleanedTitle string
	YearHint     int
	Tier         string
	TMDBID       int64
	Kind         media.Kind
	Title        string
	Year         int
	Calls        int
	CreatedAt    time.Time
}

// Matched reports whether the lookup selected a catalog entry.
func (e Entry) Matched() bool { return e.TMDBID > 0 }

// Record inserts entry and prunes the oldest rows beyond the configured cap.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	_, err := s.execWithRetry(ctx,
		`INSERT INTO lookups (
            token, raw_text, cleaned_title, year_hint, tier,
            tmdb_id, kind, title, year, calls, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Token,
		entry.RawText,
		entry.CleanedTitle,
		entry.YearHint,
		entry.Tier,
		nullableInt64(entry.TMDBID),
		nullableString(string(entry.Kind)),
		nullableString(entry.Title),
		nullableInt64(int64(entry.Year)),
		entry.Calls,
		entry.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert lookup: %w", err)
	}
	return s.prune(ctx)
}

func (s *Store) prune(ctx context.Context) error {
	if s.maxEntries <= 0 {
		return nil
	}
	_, err := s.execWithRetry(ctx,
		`DELETE FROM lookups WHERE id NOT IN (
            SELECT id FROM lookups ORDER BY id DESC LIMIT ?
        )`, s.maxEntries)
	if err != nil {
		return fmt.Errorf("prune lookups: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first. limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, token, raw_text, cleaned_title, year_hint, tier,
            tmdb_id, kind, title, year, calls, created_at
        FROM lookups ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lookups: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lookups: %w", err)
	}
	return entries, nil
}

// Clear removes every entry and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, "DELETE FROM lookups")
	if err != nil {
		return 0, fmt.Errorf("clear lookups: %w", err)
	}
	return res.RowsAffected()
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		entry   Entry
		tmdbID  sql.NullInt64
		kind    sql.NullString
		title   sql.NullString
		year    sql.NullInt64
		created string
	)
	if err := rows.Scan(
		&entry.ID,
		&entry.Token,
		&entry.RawText,
		&entry.CleanedTitle,
		&entry.YearHint,
		&entry.Tier,
		&tmdbID,
		&kind,
		&title,
		&year,
		&entry.Calls,
		&created,
	); err != nil {
		return Entry{}, fmt.Errorf("scan lookup: %w", err)
	}
	entry.TMDBID = tmdbID.Int64
	entry.Kind = media.Kind(kind.String)
	entry.Title = title.String
	entry.Year = int(year.Int64)
	if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
		entry.CreatedAt = ts
	}
	return entry, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableInt64(value int64) any {
	if value == 0 {
		return nil
	}
	return value
}
