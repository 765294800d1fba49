package dialect

import (
	"fmt"

	"schemer/internal/schema"
)

const (
	MinPrecision    = 1
	MaxPrecision    = 38
	MinStringLength = 1
	MaxStringLength = 4000
)

// MapColumnType returns the SQL Server type of col. Plain datetime is
// DATETIME2.
func MapColumnType(col *schema.Column) (string, error) {
	switch col.Type {
	case schema.TypeBoolean:
		return "BIT", nil
	case schema.TypeInt16:
		return "SMALLINT", nil
	case schema.TypeInt32:
		return "INT", nil
	case schema.TypeInt64:
		return "BIGINT", nil
	case schema.TypeDouble:
		return "FLOAT(53)", nil
	case schema.TypeDecimal:
		return decimalType(col.Precision, col.Scale)
	case schema.TypeString:
		return stringType(col.FixedLength, col.MaxLength)
	case schema.TypeGuid:
		return "UNIQUEIDENTIFIER", nil
	case schema.TypeDate:
		return "DATE", nil
	case schema.TypeTime:
		return "TIME", nil
	case schema.TypeDateTime:
		return "DATETIME2", nil
	case schema.TypeDateTimeOffset:
		return "DATETIMEOFFSET", nil
	default:
		return "", fmt.Errorf("column %q: no SQL type for %s", col.Name, col.Type)
	}
}

func decimalType(precision, scale *int) (string, error) {
	if precision == nil {
		if scale != nil && (*scale < 0 || *scale > MaxPrecision) {
			return "", fmt.Errorf("%w: scale %d is outside [0, %d] (precision not set)", ErrInvalidScale, *scale, MaxPrecision)
		}
		return "", fmt.Errorf("%w: precision not set", ErrInvalidPrecision)
	}
	p := *precision
	if p < MinPrecision || p > MaxPrecision {
		return "", fmt.Errorf("%w: precision %d is outside [%d, %d]", ErrInvalidPrecision, p, MinPrecision, MaxPrecision)
	}
	if scale == nil {
		return "", fmt.Errorf("%w: scale not set for precision %d", ErrInvalidScale, p)
	}
	s := *scale
	if s < 0 || s > p {
		return "", fmt.Errorf("%w: scale %d is outside [0, %d] for precision %d", ErrInvalidScale, s, p, p)
	}
	return fmt.Sprintf("DECIMAL(%d,%d)", p, s), nil
}

func stringType(fixed, max *int) (string, error) {
	switch {
	case fixed != nil && max != nil:
		return "", fmt.Errorf("%w: both fixed and maximum length are set", ErrInvalidStringLength)
	case fixed != nil:
		if err := checkLength(*fixed); err != nil {
			return "", err
		}
		return fmt.Sprintf("NCHAR(%d)", *fixed), nil
	case max != nil:
		if err := checkLength(*max); err != nil {
			return "", err
		}
		return fmt.Sprintf("NVARCHAR(%d)", *max), nil
	default:
		return "NVARCHAR(MAX)", nil
	}
}

func checkLength(n int) error {
	if n < MinStringLength || n > MaxStringLength {
		return fmt.Errorf("%w: %d is outside [%d, %d]", ErrInvalidStringLength, n, MinStringLength, MaxStringLength)
	}
	return nil
}
