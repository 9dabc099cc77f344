package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Schema errors (fatal at load time)
	ErrSchema           = errors.New("dataset schema error")
	ErrMissingColumn    = fmt.Errorf("%w: required column missing", ErrSchema)
	ErrDuplicateColumn  = fmt.Errorf("%w: duplicate column after normalization", ErrSchema)
	ErrUnknownGroupCode = fmt.Errorf("%w: unmapped socioeconomic group code", ErrSchema)
	ErrInvalidScore     = fmt.Errorf("%w: invalid score", ErrSchema)
	ErrEmptyDataset     = fmt.Errorf("%w: no data rows", ErrSchema)

	// Source errors
	ErrUnsupportedSource = errors.New("unsupported dataset source")

	// Lookup errors
	ErrNotFound        = errors.New("resource not found")
	ErrSessionNotFound = fmt.Errorf("%w: session", ErrNotFound)
	ErrUnknownColumn   = errors.New("unknown categorical column")
)

// NewMissingColumnError names the column that is absent after normalization.
func NewMissingColumnError(column string) error {
	return fmt.Errorf("%w: %s", ErrMissingColumn, column)
}

// NewUnknownGroupCodeError reports a group code outside the fixed mapping.
func NewUnknownGroupCodeError(row int, code string) error {
	return fmt.Errorf("%w: row %d has %q", ErrUnknownGroupCode, row, code)
}

// NewInvalidScoreError reports a score cell that is not a number in [0,100].
func NewInvalidScoreError(row int, column, value string) error {
	return fmt.Errorf("%w: row %d column %s value %q", ErrInvalidScore, row, column, value)
}

// IsSchemaError reports whether err is any load-time schema failure.
func IsSchemaError(err error) bool {
	return errors.Is(err, ErrSchema)
}

// IsNotFoundError reports whether err is a failed lookup.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
