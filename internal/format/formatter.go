// Package format provides output formatting for the application history.
package format

import (
	"io"

	"github.com/cristianoliveira/courtside/internal/domain"
)

// Formatter writes application records.
type Formatter interface {
	FormatRecords(records []domain.ApplicationRecord, writer io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypeSimple displays one line per record.
	FormatterTypeSimple FormatterType = "simple"

	// FormatterTypeTable displays records in a table with headers.
	FormatterTypeTable FormatterType = "table"

	// FormatterTypeJSON displays records as a JSON array.
	FormatterTypeJSON FormatterType = "json"
)

// NewFormatter creates a new formatter of the specified type.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeTable:
		return NewTableFormatter()
	case FormatterTypeJSON:
		return NewJSONFormatter()
	default:
		return NewSimpleFormatter()
	}
}

// IsValidType reports whether name is a known formatter type.
func IsValidType(name string) bool {
	switch FormatterType(name) {
	case FormatterTypeSimple, FormatterTypeTable, FormatterTypeJSON:
		return true
	default:
		return false
	}
}
