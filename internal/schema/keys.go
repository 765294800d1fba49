package schema

// ---------------------------------------------------------------------
// Indexes
// ---------------------------------------------------------------------

type IndexTableStage struct {
	b    *Builder
	stmt *CreateIndex
}

type IndexOnTableStage struct {
	IndexUniqueStage
}

type IndexUniqueStage struct {
	IndexColumnStage
}

type IndexColumnStage struct {
	b    *Builder
	stmt *CreateIndex
}

type IndexDirectionStage struct {
	col  *IndexColumn
	next IndexNextStage
}

// IndexNextStage follows a fully described index column: add another one
// or finish with a filter.
type IndexNextStage struct {
	IndexColumnStage
}

func (b *Builder) CreateIndex(name string) IndexTableStage {
	stmt := &CreateIndex{}
	if b.checkIdent("index name", name) {
		stmt.Name = name
	}
	b.add(stmt)
	return IndexTableStage{b: b, stmt: stmt}
}

func (s IndexTableStage) OnTable(table string) IndexOnTableStage {
	if s.b.checkIdent("table name", table) {
		s.stmt.Table = table
	}
	return IndexOnTableStage{IndexUniqueStage{IndexColumnStage{b: s.b, stmt: s.stmt}}}
}

func (s IndexOnTableStage) InSchema(schema string) IndexUniqueStage {
	if s.b.checkIdent("schema", schema) {
		s.stmt.Schema = schema
	}
	return s.IndexUniqueStage
}

func (s IndexUniqueStage) Unique() IndexColumnStage {
	s.stmt.Unique = true
	return s.IndexColumnStage
}

func (s IndexColumnStage) Column(name string) IndexDirectionStage {
	col := &IndexColumn{}
	if s.b.checkIdent("index column", name) && s.b.checkUnique("index "+s.stmt.Name, name, s.names()) {
		col.Name = name
		s.stmt.Columns = append(s.stmt.Columns, col)
	}
	return IndexDirectionStage{col: col, next: IndexNextStage{s}}
}

func (s IndexColumnStage) names() []string {
	names := make([]string, 0, len(s.stmt.Columns))
	for _, c := range s.stmt.Columns {
		names = append(names, c.Name)
	}
	return names
}

func (s IndexDirectionStage) Ascending() IndexNextStage {
	s.col.Direction = Ascending
	return s.next
}

func (s IndexDirectionStage) Descending() IndexNextStage {
	s.col.Direction = Descending
	return s.next
}

// Where turns the index into a filtered index.
func (s IndexNextStage) Where(filter string) {
	if s.b.checkIdent("index filter", filter) {
		s.stmt.Filter = filter
	}
}

// ---------------------------------------------------------------------
// Primary keys
// ---------------------------------------------------------------------

type PrimaryKeyTableStage struct {
	b    *Builder
	stmt *CreatePrimaryKey
}

type PrimaryKeyOnTableStage struct {
	PrimaryKeyColumnStage
}

type PrimaryKeyColumnStage struct {
	b    *Builder
	stmt *CreatePrimaryKey
}

func (b *Builder) CreatePrimaryKey(name string) PrimaryKeyTableStage {
	stmt := &CreatePrimaryKey{}
	if b.checkIdent("primary key name", name) {
		stmt.Name = name
	}
	b.add(stmt)
	return PrimaryKeyTableStage{b: b, stmt: stmt}
}

func (s PrimaryKeyTableStage) OnTable(table string) PrimaryKeyOnTableStage {
	if s.b.checkIdent("table name", table) {
		s.stmt.Table = table
	}
	return PrimaryKeyOnTableStage{PrimaryKeyColumnStage(s)}
}

func (s PrimaryKeyOnTableStage) InSchema(schema string) PrimaryKeyColumnStage {
	if s.b.checkIdent("schema", schema) {
		s.stmt.Schema = schema
	}
	return s.PrimaryKeyColumnStage
}

func (s PrimaryKeyColumnStage) Column(name string) PrimaryKeyColumnStage {
	if s.b.checkIdent("primary key column", name) && s.b.checkUnique("primary key "+s.stmt.Name, name, s.stmt.Columns) {
		s.stmt.Columns = append(s.stmt.Columns, name)
	}
	return s
}

// ---------------------------------------------------------------------
// Foreign keys
// ---------------------------------------------------------------------

type ForeignKeyFromStage struct {
	b    *Builder
	stmt *CreateForeignKey
}

type ForeignKeySourceStage struct {
	ForeignKeySourceColumnStage
}

type ForeignKeySourceColumnStage struct {
	b    *Builder
	stmt *CreateForeignKey
}

// ForeignKeySourceNextStage follows at least one referencing column.
type ForeignKeySourceNextStage struct {
	ForeignKeySourceColumnStage
}

type ForeignKeyTargetStage struct {
	ForeignKeyTargetColumnStage
}

type ForeignKeyTargetColumnStage struct {
	b    *Builder
	stmt *CreateForeignKey
}

// ForeignKeyTargetNextStage follows at least one referenced column.
type ForeignKeyTargetNextStage struct {
	ForeignKeyTargetColumnStage
}

func (b *Builder) CreateForeignKey(name string) ForeignKeyFromStage {
	stmt := &CreateForeignKey{}
	if b.checkIdent("foreign key name", name) {
		stmt.Name = name
	}
	b.add(stmt)
	return ForeignKeyFromStage{b: b, stmt: stmt}
}

// FromTable names the referencing table.
func (s ForeignKeyFromStage) FromTable(table string) ForeignKeySourceStage {
	if s.b.checkIdent("table name", table) {
		s.stmt.Table = table
	}
	return ForeignKeySourceStage{ForeignKeySourceColumnStage(s)}
}

func (s ForeignKeySourceStage) InSchema(schema string) ForeignKeySourceColumnStage {
	if s.b.checkIdent("schema", schema) {
		s.stmt.Schema = schema
	}
	return s.ForeignKeySourceColumnStage
}

func (s ForeignKeySourceColumnStage) Column(name string) ForeignKeySourceNextStage {
	if s.b.checkIdent("foreign key column", name) && s.b.checkUnique("foreign key "+s.stmt.Name, name, s.stmt.Columns) {
		s.stmt.Columns = append(s.stmt.Columns, name)
	}
	return ForeignKeySourceNextStage{s}
}

// ToTable names the referenced table.
func (s ForeignKeySourceNextStage) ToTable(table string) ForeignKeyTargetStage {
	if s.b.checkIdent("referenced table name", table) {
		s.stmt.ReferencedTable = table
	}
	return ForeignKeyTargetStage{ForeignKeyTargetColumnStage(s.ForeignKeySourceColumnStage)}
}

func (s ForeignKeyTargetStage) InSchema(schema string) ForeignKeyTargetColumnStage {
	if s.b.checkIdent("referenced schema", schema) {
		s.stmt.ReferencedSchema = schema
	}
	return s.ForeignKeyTargetColumnStage
}

func (s ForeignKeyTargetColumnStage) Column(name string) ForeignKeyTargetNextStage {
	if s.b.checkIdent("referenced column", name) && s.b.checkUnique("foreign key "+s.stmt.Name, name, s.stmt.ReferencedColumns) {
		s.stmt.ReferencedColumns = append(s.stmt.ReferencedColumns, name)
	}
	return ForeignKeyTargetNextStage{s}
}

func (s ForeignKeyTargetNextStage) OnDelete(action OnDelete) {
	s.stmt.OnDelete = action
}
