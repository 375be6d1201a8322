// Package search filters application history records by a query.
// Substring and regex strategies share the Provider interface so the CLI can
// pick one from a flag.
package search

import (
	"strconv"

	"github.com/cristianoliveira/courtside/internal/domain"
)

// Provider matches application records against a query.
type Provider interface {
	// Match returns true if the record matches the search query.
	Match(rec domain.ApplicationRecord, query string) bool

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Options holds configuration options for creating search providers.
type Options struct {
	CaseInsensitive bool     // If true, searches ignore case sensitivity
	Fields          []string // Fields to search in (default: title, message)
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{
		CaseInsensitive: false,
		Fields:          []string{"title", "message"},
	}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive search.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

// WithFields sets the fields to search in.
// Valid fields: "title", "message", "kind", "outcome", "slot".
func WithFields(fields []string) Option {
	return func(o *Options) {
		o.Fields = fields
	}
}

func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// fieldValue returns the searchable text of one record field.
func fieldValue(rec domain.ApplicationRecord, field string) string {
	switch field {
	case "title":
		return rec.Title
	case "message":
		return rec.Message
	case "kind":
		return string(rec.Kind)
	case "outcome":
		return string(rec.Outcome)
	case "slot":
		return strconv.FormatInt(rec.SlotID, 10)
	default:
		return ""
	}
}

// Filter returns the records p matches, keeping their order.
func Filter(p Provider, records []domain.ApplicationRecord, query string) []domain.ApplicationRecord {
	if query == "" {
		return records
	}
	out := make([]domain.ApplicationRecord, 0, len(records))
	for _, rec := range records {
		if p.Match(rec, query) {
			out = append(out, rec)
		}
	}
	return out
}
