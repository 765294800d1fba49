package engine

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"schemer/internal/dialect"
	"schemer/internal/migration"
)

// Execer is the part of *sql.DB the executor needs.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Compiler ties selection and assembly together for a fixed configuration.
type Compiler struct {
	Dialect       dialect.Dialect
	History       dialect.HistoryTable
	DefaultSchema string
	Ordering      migration.Ordering
	OnProgress    func(name string)
}

// Compile selects the migrations between the markers and returns the script
// for them along with the selection it was built from.
func (c *Compiler) Compile(defs []migration.Definition, from, to string) (string, *Selection, error) {
	sel, err := NewSelector(WithOrdering(c.Ordering), WithProgress(c.OnProgress)).Select(defs, from, to)
	if err != nil {
		return "", nil, err
	}
	script, err := NewAssembler(c.Dialect, c.History, c.DefaultSchema).AssembleSelection(sel)
	if err != nil {
		return "", sel, err
	}
	return script, sel, nil
}

// Execute sends script to the database as one batch. The script opens and
// commits its own transaction, so nothing is wrapped here.
func Execute(ctx context.Context, db Execer, script string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(script) == "" {
		return fmt.Errorf("execute script: %w", ErrNoMigrations)
	}

	start := time.Now()
	logger.Info("executing migration script", "bytes", len(script))

	if _, err := db.ExecContext(ctx, script); err != nil {
		return fmt.Errorf("execute script: %w", err)
	}

	logger.Info("migration script executed", "elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}
