package dialect

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnsupportedDialect = errors.New("unsupported dialect")

// GetDialect returns the Dialect for a database/sql driver name.
func GetDialect(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlserver", "mssql", "":
		return &MSSQLDialect{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDialect, driver)
	}
}

// Ensure interface implementation
var _ Dialect = (*MSSQLDialect)(nil)
