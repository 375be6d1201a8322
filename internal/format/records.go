package format

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/cristianoliveira/courtside/internal/domain"
)

const dateLayout = "2006-01-02 15:04"

// SimpleFormatter formats records as "id  date  outcome  kind  title".
type SimpleFormatter struct{}

// NewSimpleFormatter creates a new SimpleFormatter.
func NewSimpleFormatter() *SimpleFormatter {
	return &SimpleFormatter{}
}

// FormatRecords formats records in simple format.
func (f *SimpleFormatter) FormatRecords(records []domain.ApplicationRecord, writer io.Writer) error {
	for _, r := range records {
		_, err := fmt.Fprintf(writer, "%-4d  %s  %-9s  %-8s  %s\n",
			r.ID, r.CreatedAt.Local().Format(dateLayout), r.Outcome, r.Kind, truncateString(r.Title, 48))
		if err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter formats records as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type recordJSON struct {
	ID        int64     `json:"id"`
	SlotID    int64     `json:"slot_id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Outcome   string    `json:"outcome"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FormatRecords writes records as an indented JSON array.
func (f *JSONFormatter) FormatRecords(records []domain.ApplicationRecord, writer io.Writer) error {
	out := make([]recordJSON, 0, len(records))
	for _, r := range records {
		out = append(out, recordJSON{
			ID:        r.ID,
			SlotID:    r.SlotID,
			Kind:      string(r.Kind),
			Title:     r.Title,
			Outcome:   string(r.Outcome),
			Message:   r.Message,
			CreatedAt: r.CreatedAt.UTC(),
		})
	}
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
