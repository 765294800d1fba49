// Package history reads the table in which generated scripts record applied
// migrations. The compiler itself never consults it; it backs the status
// report of the command line.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"schemer/internal/dialect"
)

// Entry is one row of the history table.
type Entry struct {
	Name      string
	AppliedOn time.Time
}

// Querier is the part of *sql.DB the reader needs.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Read returns the recorded migrations, oldest first. A history table that
// does not exist yet means nothing was applied.
func Read(ctx context.Context, db Querier, d dialect.Dialect, h dialect.HistoryTable) ([]Entry, error) {
	var count int
	if err := db.QueryRowContext(ctx, d.HistoryExistsQuery(), h.Schema, h.Name).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to check history table %s.%s: %w", h.Schema, h.Name, err)
	}
	if count == 0 {
		return []Entry{}, nil
	}

	rows, err := db.QueryContext(ctx, d.AppliedQuery(h))
	if err != nil {
		return nil, fmt.Errorf("failed to query history table: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			name      sql.NullString
			appliedOn any
		)
		if err := rows.Scan(&name, &appliedOn); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if !name.Valid {
			continue
		}
		ts, err := parseTime(appliedOn)
		if err != nil {
			return nil, fmt.Errorf("history row %q: %w", name.String, err)
		}
		entries = append(entries, Entry{Name: name.String, AppliedOn: ts})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", err)
	}

	return entries, nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.9999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTime accepts what drivers return for a DATETIME2 column: a time.Time
// from go-mssqldb, text or bytes from drivers without type information.
func parseTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case nil:
		return time.Time{}, nil
	case []byte:
		return parseTimeString(string(t))
	case string:
		return parseTimeString(t)
	default:
		return time.Time{}, fmt.Errorf("unsupported AppliedOn value of type %T", v)
	}
}

func parseTimeString(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable AppliedOn value %q", s)
}
