package engine

import (
	"fmt"
	"strings"

	"schemer/internal/dialect"
	"schemer/internal/migration"
	"schemer/internal/schema"
)

const (
	DefaultSchema       = "dbo"
	DefaultHistoryTable = "__SchemerMigrationsHistory"
)

// Assembler joins compiled migrations into one script that runs in a single
// transaction and skips migrations the history table says are already in
// the requested state.
type Assembler struct {
	dialect       dialect.Dialect
	history       dialect.HistoryTable
	defaultSchema string
}

// NewAssembler returns an Assembler. defaultSchema is used for migrations
// that do not declare a schema; it is passed to the dialect as is, so a
// blank value fails generation of the first such migration.
func NewAssembler(d dialect.Dialect, history dialect.HistoryTable, defaultSchema string) *Assembler {
	return &Assembler{
		dialect:       d,
		history:       history,
		defaultSchema: defaultSchema,
	}
}

// AssembleSelection assembles sel in its own direction.
func (a *Assembler) AssembleSelection(sel *Selection) (string, error) {
	return a.Assemble(sel.Migrations, sel.Direction == migration.Up)
}

// Assemble renders migrations in the order given. In up mode each block
// runs only if the migration is not recorded yet and records it; otherwise
// each block runs only if it is recorded and erases the record. A migration
// without statements still gets its block so the record stays consistent.
func (a *Assembler) Assemble(migrations []migration.Compiled, up bool) (string, error) {
	if len(migrations) == 0 {
		return "", ErrNoMigrations
	}

	blocks := make([]string, 0, len(migrations))
	for _, m := range migrations {
		block, err := a.block(m, up)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, block)
	}

	parts := []string{
		a.dialect.Preamble(),
		a.dialect.EnsureHistoryTable(a.history),
		a.dialect.BeginTransaction(),
	}
	parts = append(parts, blocks...)
	parts = append(parts, a.dialect.CommitTransaction())

	return strings.Join(parts, "\n\n") + "\n", nil
}

func (a *Assembler) block(m migration.Compiled, up bool) (string, error) {
	fallback := m.Schema
	if fallback == "" {
		fallback = a.defaultSchema
	}

	var sb strings.Builder
	if up {
		sb.WriteString(a.dialect.GuardNotApplied(a.history, m.Name))
	} else {
		sb.WriteString(a.dialect.GuardApplied(a.history, m.Name))
	}
	sb.WriteString("\n")

	for i, stmt := range m.Statements {
		sql, err := a.dialect.Generate(stmt, fallback)
		if err != nil {
			return "", fmt.Errorf("migration %q statement %d: %w", m.Name, i+1, err)
		}
		sb.WriteString(indentStatement(stmt, sql))
		sb.WriteString("\n")
	}

	var record string
	if up {
		record = a.dialect.RecordApplied(a.history, m.Name)
	} else {
		record = a.dialect.EraseApplied(a.history, m.Name)
	}
	sb.WriteString(dialect.Indent(record, blockIndent))
	sb.WriteString("\n")
	sb.WriteString(a.dialect.EndGuard())

	return sb.String(), nil
}

const blockIndent = "    "

// indentStatement indents generated SQL into its guard block. Raw SQL and
// index filters are written by the migration author and must reach the
// script byte for byte, so only their first line is prefixed.
func indentStatement(stmt schema.Statement, sql string) string {
	switch s := stmt.(type) {
	case *schema.RawSQL:
		return blockIndent + sql
	case *schema.CreateIndex:
		if s.Filter != "" {
			return blockIndent + sql
		}
	}
	return dialect.Indent(sql, blockIndent)
}
