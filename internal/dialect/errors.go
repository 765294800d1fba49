package dialect

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompleteStatement is wrapped by every *IncompleteError.
	ErrIncompleteStatement = errors.New("incomplete statement")
	// ErrBlankSchema means the caller gave no usable fallback schema.
	ErrBlankSchema = errors.New("fallback schema must not be blank")

	ErrInvalidPrecision    = errors.New("invalid decimal precision")
	ErrInvalidScale        = errors.New("invalid decimal scale")
	ErrInvalidStringLength = errors.New("invalid string length")
	ErrMultipleIdentity    = errors.New("more than one identity column")
	ErrIdentityAlter       = errors.New("identity cannot be set by ALTER COLUMN")
	ErrColumnCountMismatch = errors.New("referencing and referenced column counts differ")
	ErrInvalidOnDelete     = errors.New("invalid on delete action")
	ErrUnknownStatement    = errors.New("unknown statement kind")
)

// IncompleteError reports a statement that lacks a required field.
type IncompleteError struct {
	Kind   string
	Object string
	Reason string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%s: %s %q: %s", ErrIncompleteStatement, e.Kind, e.Object, e.Reason)
}

func (e *IncompleteError) Unwrap() error {
	return ErrIncompleteStatement
}

func incomplete(kind, object, reason string, args ...any) error {
	return &IncompleteError{Kind: kind, Object: object, Reason: fmt.Sprintf(reason, args...)}
}
