package dialect

import (
	"fmt"
	"strings"

	"schemer/internal/schema"
)

// checkComplete reports the first required field stmt lacks. It never looks
// at value ranges; those are domain errors raised afterwards.
func checkComplete(stmt schema.Statement) error {
	switch s := stmt.(type) {
	case *schema.CreateTable:
		const kind = "create table"
		if s.Name == "" {
			return incomplete(kind, s.Name, "table name not set")
		}
		if len(s.Columns) == 0 {
			return incomplete(kind, s.Name, "no columns")
		}
		for _, c := range s.Columns {
			if err := checkColumn(kind, s.Name, c); err != nil {
				return err
			}
		}
	case *schema.AlterTable:
		const kind = "alter table"
		if s.Name == "" {
			return incomplete(kind, s.Name, "table name not set")
		}
		if len(s.Changes) == 0 {
			return incomplete(kind, s.Name, "no column changes")
		}
		for _, ch := range s.Changes {
			if ch.Kind == schema.ChangeDrop {
				continue
			}
			if err := checkColumn(kind, s.Name, ch.Column); err != nil {
				return err
			}
		}
	case *schema.DropTable:
		if s.Name == "" {
			return incomplete("drop table", s.Name, "table name not set")
		}
	case *schema.RenameTable:
		return requireAll("rename table", s.Name, []field{
			{"table name", s.Name},
			{"new name", s.NewName},
		})
	case *schema.RenameColumn:
		return requireAll("rename column", s.Name, []field{
			{"column name", s.Name},
			{"table name", s.Table},
			{"new name", s.NewName},
		})
	case *schema.RenameIndex:
		return requireAll("rename index", s.Name, []field{
			{"index name", s.Name},
			{"table name", s.Table},
			{"new name", s.NewName},
		})
	case *schema.CreateIndex:
		const kind = "create index"
		if err := requireAll(kind, s.Name, []field{
			{"index name", s.Name},
			{"table name", s.Table},
		}); err != nil {
			return err
		}
		if len(s.Columns) == 0 {
			return incomplete(kind, s.Name, "no columns")
		}
		for _, c := range s.Columns {
			if c.Name == "" {
				return incomplete(kind, s.Name, "column name not set")
			}
			if c.Direction == schema.DirectionUnset {
				return incomplete(kind, s.Name, "no sort direction for column %q", c.Name)
			}
		}
	case *schema.DropIndex:
		return requireAll("drop index", s.Name, []field{
			{"index name", s.Name},
			{"table name", s.Table},
		})
	case *schema.CreatePrimaryKey:
		const kind = "create primary key"
		if err := requireAll(kind, s.Name, []field{
			{"key name", s.Name},
			{"table name", s.Table},
		}); err != nil {
			return err
		}
		if len(s.Columns) == 0 {
			return incomplete(kind, s.Name, "no columns")
		}
	case *schema.CreateForeignKey:
		const kind = "create foreign key"
		if err := requireAll(kind, s.Name, []field{
			{"key name", s.Name},
			{"table name", s.Table},
			{"referenced table name", s.ReferencedTable},
		}); err != nil {
			return err
		}
		if len(s.Columns) == 0 {
			return incomplete(kind, s.Name, "no referencing columns")
		}
		if len(s.ReferencedColumns) == 0 {
			return incomplete(kind, s.Name, "no referenced columns")
		}
		if s.OnDelete == schema.OnDeleteUnset {
			return incomplete(kind, s.Name, "on delete action not set")
		}
	case *schema.DropConstraint:
		return requireAll("drop constraint", s.Name, []field{
			{"constraint name", s.Name},
			{"table name", s.Table},
		})
	case *schema.RawSQL:
		if strings.TrimSpace(s.Text) == "" {
			return incomplete("raw sql", "", "no text")
		}
	default:
		return fmt.Errorf("%w: %T", ErrUnknownStatement, stmt)
	}
	return nil
}

// checkColumn requires a name, a type, a nullability and, for decimals,
// both precision and scale.
func checkColumn(kind, object string, c *schema.Column) error {
	switch {
	case c.Name == "":
		return incomplete(kind, object, "column name not set")
	case c.Type == schema.TypeUnset:
		return incomplete(kind, object, "no type for column %q", c.Name)
	case c.Nullability == schema.NullabilityUnset:
		return incomplete(kind, object, "no nullability for column %q", c.Name)
	case c.Type == schema.TypeDecimal && (c.Precision == nil || c.Scale == nil):
		return incomplete(kind, object, "no precision and scale for decimal column %q", c.Name)
	}
	return nil
}

type field struct {
	name  string
	value string
}

// requireAll reports the first field without a value.
func requireAll(kind, object string, fields []field) error {
	for _, f := range fields {
		if f.value == "" {
			return incomplete(kind, object, "%s not set", f.name)
		}
	}
	return nil
}
