package history_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"schemer/internal/dialect"
	"schemer/internal/history"
)

// sqliteDialect swaps the introspection queries for ones SQLite understands.
type sqliteDialect struct {
	dialect.MSSQLDialect
}

func (sqliteDialect) HistoryExistsQuery() string {
	return `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?2 AND ?1 IS NOT NULL`
}

func (sqliteDialect) AppliedQuery(h dialect.HistoryTable) string {
	return `SELECT MigrationName, AppliedOn FROM "` + h.Name + `" ORDER BY AppliedOn, MigrationName`
}

var table = dialect.HistoryTable{Schema: "dbo", Name: "__SchemerMigrationsHistory"} // nolint:gochecknoglobals

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRead_MissingTable(t *testing.T) {
	db := openDB(t)

	entries, err := history.Read(context.Background(), db, &sqliteDialect{}, table)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestRead_Entries(t *testing.T) {
	db := openDB(t)

	_, err := db.Exec(`CREATE TABLE "__SchemerMigrationsHistory" (MigrationName TEXT NOT NULL PRIMARY KEY, AppliedOn TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO "__SchemerMigrationsHistory" VALUES
		('2_CreateAuthor', '2024-01-02 09:30:00'),
		('1_CreateBook', '2024-01-02 09:00:00')`)
	require.NoError(t, err)

	entries, err := history.Read(context.Background(), db, &sqliteDialect{}, table)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "1_CreateBook", entries[0].Name)
	assert.True(t, time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC).Equal(entries[0].AppliedOn), entries[0].AppliedOn)
	assert.Equal(t, "2_CreateAuthor", entries[1].Name)
}

func TestRead_BadTimestamp(t *testing.T) {
	db := openDB(t)

	_, err := db.Exec(`CREATE TABLE "__SchemerMigrationsHistory" (MigrationName TEXT NOT NULL, AppliedOn TEXT NOT NULL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO "__SchemerMigrationsHistory" VALUES ('1_CreateBook', 'yesterday')`)
	require.NoError(t, err)

	_, err = history.Read(context.Background(), db, &sqliteDialect{}, table)
	assert.ErrorContains(t, err, "1_CreateBook")
}
