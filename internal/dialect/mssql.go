package dialect

import (
	"fmt"
	"strings"

	"schemer/internal/schema"
)

type MSSQLDialect struct{}

func (d *MSSQLDialect) Name() string {
	return "sqlserver"
}

// Generate renders one statement. The fallback schema is used for every
// object whose statement does not name its own; it must not be blank.
// Completeness is checked before any value is range-checked or mapped.
func (d *MSSQLDialect) Generate(stmt schema.Statement, fallbackSchema string) (string, error) {
	if strings.TrimSpace(fallbackSchema) == "" {
		return "", ErrBlankSchema
	}
	if err := checkComplete(stmt); err != nil {
		return "", err
	}

	switch s := stmt.(type) {
	case *schema.CreateTable:
		return d.createTable(s, fallbackSchema)
	case *schema.AlterTable:
		return d.alterTable(s, fallbackSchema)
	case *schema.DropTable:
		return fmt.Sprintf("DROP TABLE %s;", qualified(resolveSchema(s.Schema, fallbackSchema), s.Name)), nil
	case *schema.RenameTable:
		return fmt.Sprintf("EXEC sp_rename %s, %s;",
			quoteString(qualified(resolveSchema(s.Schema, fallbackSchema), s.Name)),
			quoteString(s.NewName)), nil
	case *schema.RenameColumn:
		return d.renameInTable(s.Schema, fallbackSchema, s.Table, s.Name, s.NewName, "COLUMN"), nil
	case *schema.RenameIndex:
		return d.renameInTable(s.Schema, fallbackSchema, s.Table, s.Name, s.NewName, "INDEX"), nil
	case *schema.CreateIndex:
		return d.createIndex(s, fallbackSchema), nil
	case *schema.DropIndex:
		return fmt.Sprintf("DROP INDEX %s ON %s;",
			quoteIdent(s.Name), qualified(resolveSchema(s.Schema, fallbackSchema), s.Table)), nil
	case *schema.CreatePrimaryKey:
		return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s PRIMARY KEY (%s);",
			qualified(resolveSchema(s.Schema, fallbackSchema), s.Table),
			quoteIdent(s.Name),
			joinIdents(s.Columns)), nil
	case *schema.CreateForeignKey:
		return d.createForeignKey(s, fallbackSchema)
	case *schema.DropConstraint:
		return fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s;",
			qualified(resolveSchema(s.Schema, fallbackSchema), s.Table), quoteIdent(s.Name)), nil
	case *schema.RawSQL:
		return s.Text, nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnknownStatement, stmt)
	}
}

func (d *MSSQLDialect) createTable(s *schema.CreateTable, fallback string) (string, error) {
	if identityCount(s.Columns) > 1 {
		return "", fmt.Errorf("table %q: %w", s.Name, ErrMultipleIdentity)
	}

	defs := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		def, err := columnDefinition(c, true)
		if err != nil {
			return "", fmt.Errorf("table %q: %w", s.Name, err)
		}
		defs = append(defs, "    "+def)
	}

	return fmt.Sprintf("CREATE TABLE %s (\n%s\n);",
		qualified(resolveSchema(s.Schema, fallback), s.Name),
		strings.Join(defs, ",\n")), nil
}

// alterTable batches contiguous ADD and DROP COLUMN runs into one statement
// each. ALTER COLUMN is emitted once per column because SQL Server only
// accepts a single column per ALTER COLUMN.
func (d *MSSQLDialect) alterTable(s *schema.AlterTable, fallback string) (string, error) {
	var added []*schema.Column
	for _, ch := range s.Changes {
		switch ch.Kind {
		case schema.ChangeAdd:
			added = append(added, ch.Column)
		case schema.ChangeAlter:
			if ch.Column.Identity {
				return "", fmt.Errorf("table %q column %q: %w", s.Name, ch.Column.Name, ErrIdentityAlter)
			}
		}
	}
	if identityCount(added) > 1 {
		return "", fmt.Errorf("table %q: %w", s.Name, ErrMultipleIdentity)
	}

	table := qualified(resolveSchema(s.Schema, fallback), s.Name)
	var (
		out  []string
		run  []string
		kind schema.ChangeKind
	)
	flush := func() {
		if len(run) == 0 {
			return
		}
		switch kind {
		case schema.ChangeAdd:
			out = append(out, fmt.Sprintf("ALTER TABLE %s ADD %s;", table, strings.Join(run, ", ")))
		case schema.ChangeDrop:
			out = append(out, fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s;", table, strings.Join(run, ", ")))
		}
		run = run[:0]
	}

	for _, ch := range s.Changes {
		if ch.Kind != kind {
			flush()
			kind = ch.Kind
		}
		switch ch.Kind {
		case schema.ChangeAdd:
			def, err := columnDefinition(ch.Column, true)
			if err != nil {
				return "", fmt.Errorf("table %q: %w", s.Name, err)
			}
			run = append(run, def)
		case schema.ChangeDrop:
			run = append(run, quoteIdent(ch.Column.Name))
		case schema.ChangeAlter:
			def, err := columnDefinition(ch.Column, false)
			if err != nil {
				return "", fmt.Errorf("table %q: %w", s.Name, err)
			}
			out = append(out, fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s;", table, def))
		}
	}
	flush()

	return strings.Join(out, "\n"), nil
}

func (d *MSSQLDialect) createIndex(s *schema.CreateIndex, fallback string) string {
	cols := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		dir := "ASC"
		if c.Direction == schema.Descending {
			dir = "DESC"
		}
		cols[i] = quoteIdent(c.Name) + " " + dir
	}

	var sb strings.Builder
	sb.WriteString("CREATE ")
	if s.Unique {
		sb.WriteString("UNIQUE ")
	}
	fmt.Fprintf(&sb, "INDEX %s ON %s (%s)",
		quoteIdent(s.Name),
		qualified(resolveSchema(s.Schema, fallback), s.Table),
		strings.Join(cols, ", "))
	if s.Filter != "" {
		sb.WriteString(" WHERE ")
		sb.WriteString(s.Filter)
	}
	sb.WriteString(";")
	return sb.String()
}

func (d *MSSQLDialect) createForeignKey(s *schema.CreateForeignKey, fallback string) (string, error) {
	if len(s.Columns) != len(s.ReferencedColumns) {
		return "", fmt.Errorf("foreign key %q (%d vs %d): %w",
			s.Name, len(s.Columns), len(s.ReferencedColumns), ErrColumnCountMismatch)
	}

	var action string
	switch s.OnDelete {
	case schema.Cascade:
		action = "CASCADE"
	case schema.Restrict:
		action = "NO ACTION"
	case schema.SetNull:
		action = "SET NULL"
	default:
		return "", fmt.Errorf("foreign key %q: %w: %d", s.Name, ErrInvalidOnDelete, s.OnDelete)
	}

	return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s) ON DELETE %s;",
		qualified(resolveSchema(s.Schema, fallback), s.Table),
		quoteIdent(s.Name),
		joinIdents(s.Columns),
		qualified(resolveSchema(s.ReferencedSchema, fallback), s.ReferencedTable),
		joinIdents(s.ReferencedColumns),
		action), nil
}

func (d *MSSQLDialect) renameInTable(own, fallback, table, name, newName, kind string) string {
	object := qualified(resolveSchema(own, fallback), table) + "." + quoteIdent(name)
	return fmt.Sprintf("EXEC sp_rename %s, %s, %s;", quoteString(object), quoteString(newName), quoteString(kind))
}

// columnDefinition renders "[name] TYPE [NOT ]NULL[ IDENTITY(1,1)]".
func columnDefinition(c *schema.Column, allowIdentity bool) (string, error) {
	sqlType, err := MapColumnType(c)
	if err != nil {
		return "", fmt.Errorf("column %q: %w", c.Name, err)
	}
	def := quoteIdent(c.Name) + " " + sqlType
	if c.Nullability == schema.NotNullable {
		def += " NOT NULL"
	} else {
		def += " NULL"
	}
	if allowIdentity && c.Identity {
		def += " IDENTITY(1,1)"
	}
	return def, nil
}

func identityCount(cols []*schema.Column) int {
	n := 0
	for _, c := range cols {
		if c.Identity {
			n++
		}
	}
	return n
}

// ---------------------------------------------------------------------
// Script fragments
// ---------------------------------------------------------------------

// Preamble makes any runtime error abort and roll back the transaction.
func (d *MSSQLDialect) Preamble() string {
	return "SET XACT_ABORT ON;"
}

func (d *MSSQLDialect) EnsureHistoryTable(h HistoryTable) string {
	table := qualified(h.Schema, h.Name)
	return fmt.Sprintf(`IF OBJECT_ID(%s, N'U') IS NULL
BEGIN
    CREATE TABLE %s (
        [MigrationName] NVARCHAR(150) NOT NULL,
        [AppliedOn] DATETIME2 NOT NULL,
        CONSTRAINT %s PRIMARY KEY ([MigrationName])
    );
END;`, quoteString(table), table, quoteIdent("PK_"+h.Name))
}

func (d *MSSQLDialect) BeginTransaction() string {
	return "BEGIN TRANSACTION;"
}

func (d *MSSQLDialect) CommitTransaction() string {
	return "COMMIT TRANSACTION;"
}

func (d *MSSQLDialect) GuardNotApplied(h HistoryTable, migration string) string {
	return "IF NOT EXISTS (" + d.lookup(h, migration) + ")\nBEGIN"
}

func (d *MSSQLDialect) GuardApplied(h HistoryTable, migration string) string {
	return "IF EXISTS (" + d.lookup(h, migration) + ")\nBEGIN"
}

func (d *MSSQLDialect) EndGuard() string {
	return "END;"
}

func (d *MSSQLDialect) lookup(h HistoryTable, migration string) string {
	return fmt.Sprintf("SELECT 1 FROM %s WHERE [MigrationName] = %s", qualified(h.Schema, h.Name), quoteString(migration))
}

// RecordApplied stamps the row with the server's UTC clock.
func (d *MSSQLDialect) RecordApplied(h HistoryTable, migration string) string {
	return fmt.Sprintf("INSERT INTO %s ([MigrationName], [AppliedOn]) VALUES (%s, SYSUTCDATETIME());",
		qualified(h.Schema, h.Name), quoteString(migration))
}

func (d *MSSQLDialect) EraseApplied(h HistoryTable, migration string) string {
	return fmt.Sprintf("DELETE FROM %s WHERE [MigrationName] = %s;",
		qualified(h.Schema, h.Name), quoteString(migration))
}

// HistoryExistsQuery takes the schema as @p1 and the table name as @p2.
func (d *MSSQLDialect) HistoryExistsQuery() string {
	return `SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = @p1 AND TABLE_NAME = @p2 AND TABLE_TYPE = 'BASE TABLE'`
}

func (d *MSSQLDialect) AppliedQuery(h HistoryTable) string {
	return fmt.Sprintf("SELECT [MigrationName], [AppliedOn] FROM %s ORDER BY [AppliedOn], [MigrationName]", qualified(h.Schema, h.Name))
}

func (d *MSSQLDialect) QuoteIdent(name string) string {
	return quoteIdent(name)
}

func (d *MSSQLDialect) QuoteString(s string) string {
	return quoteString(s)
}
