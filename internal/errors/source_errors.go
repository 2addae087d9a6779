package errors

import (
	"fmt"
)

// MissingSourceError reports that no usable source tables were found.
// It is fatal: with zero sources there is nothing to integrate.
type MissingSourceError struct {
	Dir string
}

// Error implements the error interface
func (e *MissingSourceError) Error() string {
	if e.Dir != "" {
		return fmt.Sprintf("no data files found in %s: generate synthetic data or provide CSV files", e.Dir)
	}
	return "no data files found: generate synthetic data or provide CSV files"
}

// SchemaError reports that a loaded source lacks a required key column.
// It is fatal for the run: downstream joins assume the column's presence,
// so aborting beats silently dropping the source.
type SchemaError struct {
	Source string
	Column string
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	return fmt.Sprintf("source %s is missing required column %q", e.Source, e.Column)
}

// NewMissingSourceError creates a missing source error for a directory.
func NewMissingSourceError(dir string) *MissingSourceError {
	return &MissingSourceError{Dir: dir}
}

// NewSchemaError creates a schema error naming the offending source.
func NewSchemaError(source, column string) *SchemaError {
	return &SchemaError{Source: source, Column: column}
}
