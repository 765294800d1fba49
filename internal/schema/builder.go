package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBlankIdentifier = errors.New("identifier must not be blank")
	ErrColumnExists    = errors.New("column already exists")
)

// Builder collects the statements of one Up or Down invocation.
//
// Every entry point appends its statement immediately and returns the first
// stage of a fluent chain. Each stage only exposes the calls that are valid
// at that point, so a chain cannot skip a required step or repeat one out of
// order. A chain that is abandoned early leaves an incomplete statement
// behind, which is reported when SQL is generated for it.
//
// Blank identifiers and duplicate column names are detected on the spot: the
// first such error is kept and returned by Err, and the offending value is
// not assigned.
type Builder struct {
	statements []Statement
	err        error
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Statements returns the statements in the order they were started.
func (b *Builder) Statements() []Statement {
	out := make([]Statement, len(b.statements))
	copy(out, b.statements)
	return out
}

// Err returns the first construction error, if any.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Builder) add(s Statement) {
	b.statements = append(b.statements, s)
}

// checkIdent records ErrBlankIdentifier when value is blank.
func (b *Builder) checkIdent(what, value string) bool {
	if strings.TrimSpace(value) == "" {
		b.fail(fmt.Errorf("%s: %w", what, ErrBlankIdentifier))
		return false
	}
	return true
}

// checkUnique records ErrColumnExists when name is already in names.
// Comparison is case-insensitive, matching the default SQL Server collation.
func (b *Builder) checkUnique(owner, name string, names []string) bool {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			b.fail(fmt.Errorf("%s: %q: %w", owner, name, ErrColumnExists))
			return false
		}
	}
	return true
}

// SchemaStage is the terminal, optional schema step of drop statements.
type SchemaStage struct {
	b   *Builder
	set func(string)
}

func (s SchemaStage) InSchema(schema string) {
	if s.b.checkIdent("schema", schema) {
		s.set(schema)
	}
}

// ---------------------------------------------------------------------
// Tables
// ---------------------------------------------------------------------

type CreateTableStage struct {
	CreateTableColumnStage
}

type CreateTableColumnStage struct {
	b    *Builder
	stmt *CreateTable
}

func (b *Builder) CreateTable(name string) CreateTableStage {
	stmt := &CreateTable{}
	if b.checkIdent("table name", name) {
		stmt.Name = name
	}
	b.add(stmt)
	return CreateTableStage{CreateTableColumnStage{b: b, stmt: stmt}}
}

func (s CreateTableStage) InSchema(schema string) CreateTableColumnStage {
	if s.b.checkIdent("schema", schema) {
		s.stmt.Schema = schema
	}
	return s.CreateTableColumnStage
}

// Column starts the definition of the next column.
func (s CreateTableColumnStage) Column(name string) ColumnTypeStage[CreateTableColumnStage] {
	col := &Column{}
	if s.b.checkIdent("column name", name) && s.b.checkUnique("table "+s.stmt.Name, name, s.names()) {
		col.Name = name
		s.stmt.Columns = append(s.stmt.Columns, col)
	}
	return ColumnTypeStage[CreateTableColumnStage]{col: col, next: s}
}

func (s CreateTableColumnStage) names() []string {
	names := make([]string, 0, len(s.stmt.Columns))
	for _, c := range s.stmt.Columns {
		names = append(names, c.Name)
	}
	return names
}

type AlterTableStage struct {
	AlterTableChangeStage
}

type AlterTableChangeStage struct {
	b    *Builder
	stmt *AlterTable
}

func (b *Builder) AlterTable(name string) AlterTableStage {
	stmt := &AlterTable{}
	if b.checkIdent("table name", name) {
		stmt.Name = name
	}
	b.add(stmt)
	return AlterTableStage{AlterTableChangeStage{b: b, stmt: stmt}}
}

func (s AlterTableStage) InSchema(schema string) AlterTableChangeStage {
	if s.b.checkIdent("schema", schema) {
		s.stmt.Schema = schema
	}
	return s.AlterTableChangeStage
}

func (s AlterTableChangeStage) AddColumn(name string) ColumnTypeStage[AlterTableChangeStage] {
	return s.change(ChangeAdd, name)
}

func (s AlterTableChangeStage) AlterColumn(name string) ColumnTypeStage[AlterTableChangeStage] {
	return s.change(ChangeAlter, name)
}

func (s AlterTableChangeStage) DropColumn(name string) AlterTableChangeStage {
	s.change(ChangeDrop, name)
	return s
}

func (s AlterTableChangeStage) change(kind ChangeKind, name string) ColumnTypeStage[AlterTableChangeStage] {
	col := &Column{}
	if s.b.checkIdent("column name", name) && s.b.checkUnique("alter table "+s.stmt.Name, name, s.names()) {
		col.Name = name
		s.stmt.Changes = append(s.stmt.Changes, ColumnChange{Kind: kind, Column: col})
	}
	return ColumnTypeStage[AlterTableChangeStage]{col: col, next: s}
}

func (s AlterTableChangeStage) names() []string {
	names := make([]string, 0, len(s.stmt.Changes))
	for _, c := range s.stmt.Changes {
		names = append(names, c.Column.Name)
	}
	return names
}

func (b *Builder) DropTable(name string) SchemaStage {
	stmt := &DropTable{}
	if b.checkIdent("table name", name) {
		stmt.Name = name
	}
	b.add(stmt)
	return SchemaStage{b: b, set: func(s string) { stmt.Schema = s }}
}

// ---------------------------------------------------------------------
// Renames
// ---------------------------------------------------------------------

type RenameStage struct {
	RenameTargetStage
	setSchema func(string)
}

type RenameTargetStage struct {
	b      *Builder
	setNew func(string)
}

func (s RenameStage) InSchema(schema string) RenameTargetStage {
	if s.b.checkIdent("schema", schema) {
		s.setSchema(schema)
	}
	return s.RenameTargetStage
}

func (s RenameTargetStage) To(newName string) {
	if s.b.checkIdent("new name", newName) {
		s.setNew(newName)
	}
}

func (b *Builder) RenameTable(name string) RenameStage {
	stmt := &RenameTable{}
	if b.checkIdent("table name", name) {
		stmt.Name = name
	}
	b.add(stmt)
	return RenameStage{
		RenameTargetStage: RenameTargetStage{b: b, setNew: func(n string) { stmt.NewName = n }},
		setSchema:         func(s string) { stmt.Schema = s },
	}
}

// RenameOnTableStage asks for the table that owns the renamed object.
type RenameOnTableStage struct {
	b        *Builder
	setTable func(string)
	next     RenameStage
}

func (s RenameOnTableStage) OnTable(table string) RenameStage {
	if s.b.checkIdent("table name", table) {
		s.setTable(table)
	}
	return s.next
}

func (b *Builder) RenameColumn(name string) RenameOnTableStage {
	stmt := &RenameColumn{}
	if b.checkIdent("column name", name) {
		stmt.Name = name
	}
	b.add(stmt)
	return RenameOnTableStage{
		b:        b,
		setTable: func(t string) { stmt.Table = t },
		next: RenameStage{
			RenameTargetStage: RenameTargetStage{b: b, setNew: func(n string) { stmt.NewName = n }},
			setSchema:         func(s string) { stmt.Schema = s },
		},
	}
}

func (b *Builder) RenameIndex(name string) RenameOnTableStage {
	stmt := &RenameIndex{}
	if b.checkIdent("index name", name) {
		stmt.Name = name
	}
	b.add(stmt)
	return RenameOnTableStage{
		b:        b,
		setTable: func(t string) { stmt.Table = t },
		next: RenameStage{
			RenameTargetStage: RenameTargetStage{b: b, setNew: func(n string) { stmt.NewName = n }},
			setSchema:         func(s string) { stmt.Schema = s },
		},
	}
}

// ---------------------------------------------------------------------
// Drops scoped to a table
// ---------------------------------------------------------------------

type DropOnTableStage struct {
	b         *Builder
	setTable  func(string)
	setSchema func(string)
}

func (s DropOnTableStage) OnTable(table string) SchemaStage {
	if s.b.checkIdent("table name", table) {
		s.setTable(table)
	}
	return SchemaStage{b: s.b, set: s.setSchema}
}

func (b *Builder) DropIndex(name string) DropOnTableStage {
	stmt := &DropIndex{}
	if b.checkIdent("index name", name) {
		stmt.Name = name
	}
	b.add(stmt)
	return DropOnTableStage{
		b:         b,
		setTable:  func(t string) { stmt.Table = t },
		setSchema: func(s string) { stmt.Schema = s },
	}
}

func (b *Builder) DropConstraint(name string) DropOnTableStage {
	stmt := &DropConstraint{}
	if b.checkIdent("constraint name", name) {
		stmt.Name = name
	}
	b.add(stmt)
	return DropOnTableStage{
		b:         b,
		setTable:  func(t string) { stmt.Table = t },
		setSchema: func(s string) { stmt.Schema = s },
	}
}

// SQL appends a statement that is copied into the script verbatim.
func (b *Builder) SQL(text string) {
	stmt := &RawSQL{}
	if b.checkIdent("sql", text) {
		stmt.Text = text
	}
	b.add(stmt)
}
