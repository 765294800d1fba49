package dialect

import "schemer/internal/schema"

// HistoryTable locates the table that records applied migrations.
type HistoryTable struct {
	Schema string
	Name   string
}

// Dialect turns statements into SQL text for one database engine and
// supplies the fragments the script assembler stitches around them.
type Dialect interface {
	Name() string

	// Statement Generation
	Generate(stmt schema.Statement, fallbackSchema string) (string, error)

	// Script Fragments
	Preamble() string
	EnsureHistoryTable(h HistoryTable) string
	BeginTransaction() string
	CommitTransaction() string
	GuardNotApplied(h HistoryTable, migration string) string
	GuardApplied(h HistoryTable, migration string) string
	EndGuard() string
	RecordApplied(h HistoryTable, migration string) string
	EraseApplied(h HistoryTable, migration string) string

	// History Introspection
	HistoryExistsQuery() string
	AppliedQuery(h HistoryTable) string

	// Helpers
	QuoteIdent(name string) string
	QuoteString(s string) string
}
