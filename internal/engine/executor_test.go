package engine_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"schemer/internal/engine"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// -- testing double for the database ----------

type execerMock struct {
	queries []string
	err     error
}

func (m *execerMock) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	m.queries = append(m.queries, query)
	return nil, m.err
}

func TestExecute_SendsScriptOnce(t *testing.T) {
	db := &execerMock{}
	err := engine.Execute(context.Background(), db, createBookScript, discardLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{createBookScript}, db.queries)
}

func TestExecute_BlankScript(t *testing.T) {
	db := &execerMock{}
	err := engine.Execute(context.Background(), db, " \n", discardLogger())
	assert.ErrorIs(t, err, engine.ErrNoMigrations)
	assert.Empty(t, db.queries)
}

func TestExecute_WrapsDatabaseError(t *testing.T) {
	errBoom := errors.New("boom")
	err := engine.Execute(context.Background(), &execerMock{err: errBoom}, "SELECT 1;", nil)
	assert.ErrorIs(t, err, errBoom)
}

func TestExecute_AgainstDatabase(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	db.SetMaxOpenConns(1)

	script := "CREATE TABLE Book (Id INTEGER PRIMARY KEY, Name TEXT NOT NULL);\n" +
		"INSERT INTO Book (Name) VALUES ('Dune');\n" +
		"INSERT INTO Book (Name) VALUES ('Emma');\n"
	require.NoError(t, engine.Execute(context.Background(), db, script, discardLogger()))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM Book").Scan(&count))
	assert.Equal(t, 2, count)
}
