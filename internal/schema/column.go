package schema

// The column stages are generic over N, the stage a finished column returns
// to. CREATE TABLE and ALTER TABLE share the same column grammar this way.

// ColumnTypeStage picks the semantic type of a column.
type ColumnTypeStage[N any] struct {
	col  *Column
	next N
}

func (s ColumnTypeStage[N]) Boolean() NullabilityStage[N]        { return s.plain(TypeBoolean) }
func (s ColumnTypeStage[N]) Double() NullabilityStage[N]         { return s.plain(TypeDouble) }
func (s ColumnTypeStage[N]) Guid() NullabilityStage[N]           { return s.plain(TypeGuid) }
func (s ColumnTypeStage[N]) Date() NullabilityStage[N]           { return s.plain(TypeDate) }
func (s ColumnTypeStage[N]) Time() NullabilityStage[N]           { return s.plain(TypeTime) }
func (s ColumnTypeStage[N]) DateTime() NullabilityStage[N]       { return s.plain(TypeDateTime) }
func (s ColumnTypeStage[N]) DateTimeOffset() NullabilityStage[N] { return s.plain(TypeDateTimeOffset) }

func (s ColumnTypeStage[N]) Int16() IntegerStage[N] { return IntegerStage[N]{s.plain(TypeInt16)} }
func (s ColumnTypeStage[N]) Int32() IntegerStage[N] { return IntegerStage[N]{s.plain(TypeInt32)} }
func (s ColumnTypeStage[N]) Int64() IntegerStage[N] { return IntegerStage[N]{s.plain(TypeInt64)} }

// Decimal leaves precision and scale to the next stage. Skipping them
// produces an incomplete column.
func (s ColumnTypeStage[N]) Decimal() DecimalStage[N] {
	return DecimalStage[N]{s.plain(TypeDecimal)}
}

// Text is an NVARCHAR/NCHAR column; without a length it is unbounded.
func (s ColumnTypeStage[N]) Text() TextStage[N] {
	return TextStage[N]{s.plain(TypeString)}
}

func (s ColumnTypeStage[N]) plain(t ColumnType) NullabilityStage[N] {
	s.col.Type = t
	return NullabilityStage[N]{col: s.col, next: s.next}
}

// NullabilityStage is the last step of every column definition.
type NullabilityStage[N any] struct {
	col  *Column
	next N
}

func (s NullabilityStage[N]) Null() N {
	s.col.Nullability = Nullable
	return s.next
}

func (s NullabilityStage[N]) NotNull() N {
	s.col.Nullability = NotNullable
	return s.next
}

type IntegerStage[N any] struct {
	NullabilityStage[N]
}

// Identity marks the column as IDENTITY(1,1). A table may have one.
func (s IntegerStage[N]) Identity() NullabilityStage[N] {
	s.col.Identity = true
	return s.NullabilityStage
}

type DecimalStage[N any] struct {
	NullabilityStage[N]
}

func (s DecimalStage[N]) Precision(precision int) DecimalScaleStage[N] {
	s.col.Precision = &precision
	return DecimalScaleStage[N](s)
}

type DecimalScaleStage[N any] struct {
	NullabilityStage[N]
}

func (s DecimalScaleStage[N]) Scale(scale int) NullabilityStage[N] {
	s.col.Scale = &scale
	return s.NullabilityStage
}

type TextStage[N any] struct {
	NullabilityStage[N]
}

// FixedLength makes the column NCHAR(length).
func (s TextStage[N]) FixedLength(length int) NullabilityStage[N] {
	s.col.FixedLength = &length
	return s.NullabilityStage
}

// MaxLength makes the column NVARCHAR(length).
func (s TextStage[N]) MaxLength(length int) NullabilityStage[N] {
	s.col.MaxLength = &length
	return s.NullabilityStage
}
