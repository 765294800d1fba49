// Package migration defines hand-written, named units of schema change and
// the registry the host fills with them.
package migration

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"schemer/internal/schema"
)

// MaxNameLength matches the width of the MigrationName history column.
const MaxNameLength = 150

var (
	ErrBlankName      = errors.New("migration name must not be blank")
	ErrNameTooLong    = fmt.Errorf("migration name exceeds %d characters", MaxNameLength)
	ErrDuplicateName  = errors.New("migration name already registered")
	ErrMissingFactory = errors.New("migration has no constructor")
)

// Migration appends statements to the builder it is given. Up applies the
// change, Down reverts it. Either may leave the builder empty.
type Migration interface {
	Up(b *schema.Builder)
	Down(b *schema.Builder)
}

// Definition registers one migration type under its name.
type Definition struct {
	Name string
	// Schema is the default schema of statements that do not name one.
	// Blank means the compiler-wide default.
	Schema string
	// New returns a fresh instance. Instances are never reused.
	New func() Migration
}

// ValidateName reports whether name can be recorded in the history table.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrBlankName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("%q: %w", name, ErrNameTooLong)
	}
	return nil
}

type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// Compiled is a migration after one Up or Down invocation.
type Compiled struct {
	Name       string
	Schema     string
	Statements []schema.Statement
}
