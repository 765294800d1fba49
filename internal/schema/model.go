package schema

// ColumnType is the semantic type of a column, independent of any dialect.
type ColumnType int

const (
	TypeUnset ColumnType = iota
	TypeBoolean
	TypeInt16
	TypeInt32
	TypeInt64
	TypeDouble
	TypeDecimal
	TypeString
	TypeGuid
	TypeDate
	TypeTime
	TypeDateTime
	TypeDateTimeOffset
)

var columnTypeNames = map[ColumnType]string{
	TypeUnset:          "unset",
	TypeBoolean:        "boolean",
	TypeInt16:          "int16",
	TypeInt32:          "int32",
	TypeInt64:          "int64",
	TypeDouble:         "double",
	TypeDecimal:        "decimal",
	TypeString:         "string",
	TypeGuid:           "guid",
	TypeDate:           "date",
	TypeTime:           "time",
	TypeDateTime:       "datetime",
	TypeDateTimeOffset: "datetimeoffset",
}

func (t ColumnType) String() string {
	if n, ok := columnTypeNames[t]; ok {
		return n
	}
	return "unknown"
}

// Nullability is tri-state so that "never chosen" can be told apart from false.
type Nullability int

const (
	NullabilityUnset Nullability = iota
	Nullable
	NotNullable
)

type SortDirection int

const (
	DirectionUnset SortDirection = iota
	Ascending
	Descending
)

// OnDelete is the referential action of a foreign key.
type OnDelete int

const (
	OnDeleteUnset OnDelete = iota
	Cascade
	Restrict
	SetNull
)

// Column describes one table column as assigned by the builder.
// FixedLength and MaxLength are never both set.
type Column struct {
	Name        string
	Type        ColumnType
	Nullability Nullability
	Precision   *int
	Scale       *int
	FixedLength *int
	MaxLength   *int
	Identity    bool
}

type IndexColumn struct {
	Name      string
	Direction SortDirection
}

type ChangeKind int

const (
	ChangeAdd ChangeKind = iota + 1
	ChangeAlter
	ChangeDrop
)

// ColumnChange is one entry of an ALTER TABLE change list. Drop changes
// only carry the column name.
type ColumnChange struct {
	Kind   ChangeKind
	Column *Column
}

// Statement is one schema change. The set of implementations is closed.
type Statement interface {
	// ObjectName is the declared name of the object the statement is about.
	ObjectName() string
	isStatement()
}

type CreateTable struct {
	Schema  string
	Name    string
	Columns []*Column
}

type AlterTable struct {
	Schema  string
	Name    string
	Changes []ColumnChange
}

type DropTable struct {
	Schema string
	Name   string
}

type RenameTable struct {
	Schema  string
	Name    string
	NewName string
}

type RenameColumn struct {
	Schema  string
	Table   string
	Name    string
	NewName string
}

type CreateIndex struct {
	Schema  string
	Table   string
	Name    string
	Unique  bool
	Columns []*IndexColumn
	Filter  string
}

type DropIndex struct {
	Schema string
	Table  string
	Name   string
}

type RenameIndex struct {
	Schema  string
	Table   string
	Name    string
	NewName string
}

type CreatePrimaryKey struct {
	Schema  string
	Table   string
	Name    string
	Columns []string
}

type CreateForeignKey struct {
	Name              string
	Schema            string
	Table             string
	Columns           []string
	ReferencedSchema  string
	ReferencedTable   string
	ReferencedColumns []string
	OnDelete          OnDelete
}

// DropConstraint drops a primary or foreign key (or any named constraint).
type DropConstraint struct {
	Schema string
	Table  string
	Name   string
}

// RawSQL is passed through to the script untouched.
type RawSQL struct {
	Text string
}

func (s *CreateTable) ObjectName() string      { return s.Name }
func (s *AlterTable) ObjectName() string       { return s.Name }
func (s *DropTable) ObjectName() string        { return s.Name }
func (s *RenameTable) ObjectName() string      { return s.Name }
func (s *RenameColumn) ObjectName() string     { return s.Name }
func (s *CreateIndex) ObjectName() string      { return s.Name }
func (s *DropIndex) ObjectName() string        { return s.Name }
func (s *RenameIndex) ObjectName() string      { return s.Name }
func (s *CreatePrimaryKey) ObjectName() string { return s.Name }
func (s *CreateForeignKey) ObjectName() string { return s.Name }
func (s *DropConstraint) ObjectName() string   { return s.Name }
func (s *RawSQL) ObjectName() string           { return "raw sql" }

func (*CreateTable) isStatement()      {}
func (*AlterTable) isStatement()       {}
func (*DropTable) isStatement()        {}
func (*RenameTable) isStatement()      {}
func (*RenameColumn) isStatement()     {}
func (*CreateIndex) isStatement()      {}
func (*DropIndex) isStatement()        {}
func (*RenameIndex) isStatement()      {}
func (*CreatePrimaryKey) isStatement() {}
func (*CreateForeignKey) isStatement() {}
func (*DropConstraint) isStatement()   {}
func (*RawSQL) isStatement()           {}
