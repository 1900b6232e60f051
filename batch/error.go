package batch

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrNoColumns is returned when a batch has nothing to generate.
	ErrNoColumns = errors.New("batch: no columns")

	// ErrEmptyName indicates a column without a name.
	ErrEmptyName = errors.New("empty column name")

	// ErrDuplicateColumn indicates two columns with the same name.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrEmptyExclude indicates an empty exclusion string, which every value
	// would contain.
	ErrEmptyExclude = errors.New("empty exclusion string")

	// ErrExcludeExhausted indicates that every attempt at a value contained
	// an excluded string.
	ErrExcludeExhausted = errors.New("all attempts produced excluded values")
)

// CompileError identifies the column whose definition failed to compile.
// A batch with any invalid column generates nothing.
type CompileError struct {
	Column string
	Index  int
	Err    error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("batch: column %d (%q): %v", e.Index, e.Column, e.Err)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// GenerateError identifies the cell that could not be generated.
type GenerateError struct {
	Column string
	Row    int
	Err    error
}

// Error implements the error interface.
func (e *GenerateError) Error() string {
	return fmt.Sprintf("batch: row %d, column %q: %v", e.Row, e.Column, e.Err)
}

// Unwrap returns the underlying error.
func (e *GenerateError) Unwrap() error {
	return e.Err
}
