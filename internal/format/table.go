package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cristianoliveira/courtside/internal/colors"
	"github.com/cristianoliveira/courtside/internal/domain"
)

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	// ShowHeaders determines whether to show column headers.
	ShowHeaders bool

	// HeaderColor is the color to use for headers.
	HeaderColor string

	// ColumnWidths defines the width for each column.
	ColumnWidths map[string]int

	// ColumnAlignments defines the alignment for each column (left, right, center).
	ColumnAlignments map[string]string
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		ShowHeaders: true,
		HeaderColor: colors.Blue,
		ColumnWidths: map[string]int{
			"ID":      4,
			"Date":    16,
			"Kind":    8,
			"Slot":    5,
			"Outcome": 9,
			"Title":   32,
		},
		ColumnAlignments: map[string]string{
			"ID":   "right",
			"Slot": "right",
		},
	}
}

// TableColumn represents a column in a table.
type TableColumn struct {
	// Name is the column name displayed in the header.
	Name string

	// Width is the column width in characters.
	Width int

	// Extractor extracts the cell value from a record.
	Extractor func(domain.ApplicationRecord) string
}

// TableFormatter formats records as an aligned table.
type TableFormatter struct {
	config  *TableConfig
	columns []TableColumn
}

// NewTableFormatter creates a TableFormatter with the default columns.
func NewTableFormatter() *TableFormatter {
	config := DefaultTableConfig()
	cell := func(name string, value func(domain.ApplicationRecord) string) TableColumn {
		width := config.ColumnWidths[name]
		align := config.ColumnAlignments[name]
		return TableColumn{
			Name:  name,
			Width: width,
			Extractor: func(r domain.ApplicationRecord) string {
				return formatString(value(r), width, align)
			},
		}
	}
	columns := []TableColumn{
		cell("ID", func(r domain.ApplicationRecord) string { return strconv.FormatInt(r.ID, 10) }),
		cell("Date", func(r domain.ApplicationRecord) string { return r.CreatedAt.Local().Format(dateLayout) }),
		cell("Kind", func(r domain.ApplicationRecord) string { return r.Kind.String() }),
		cell("Slot", func(r domain.ApplicationRecord) string { return strconv.FormatInt(r.SlotID, 10) }),
		cell("Outcome", func(r domain.ApplicationRecord) string { return r.Outcome.String() }),
		{
			Name:  "Title",
			Width: config.ColumnWidths["Title"],
			Extractor: func(r domain.ApplicationRecord) string {
				return truncateString(r.Title, config.ColumnWidths["Title"])
			},
		},
	}
	return &TableFormatter{config: config, columns: columns}
}

// WithColumns adds custom columns to the formatter.
func (f *TableFormatter) WithColumns(columns ...TableColumn) *TableFormatter {
	f.columns = append(f.columns, columns...)
	return f
}

// FormatRecords formats records as a table. Nothing is written for an empty list.
func (f *TableFormatter) FormatRecords(records []domain.ApplicationRecord, writer io.Writer) error {
	if len(records) == 0 {
		return nil
	}

	if f.config.ShowHeaders {
		if err := f.writeLine(writer, true, func(col TableColumn) string {
			return formatString(col.Name, col.Width, "left")
		}); err != nil {
			return err
		}
		if err := f.writeLine(writer, true, func(col TableColumn) string {
			return strings.Repeat("-", col.Width)
		}); err != nil {
			return err
		}
	}

	for _, r := range records {
		if err := f.writeLine(writer, false, func(col TableColumn) string {
			return col.Extractor(r)
		}); err != nil {
			return err
		}
	}
	return nil
}

// writeLine writes one row. Header rows are wrapped in the header color.
func (f *TableFormatter) writeLine(writer io.Writer, header bool, cell func(TableColumn) string) error {
	parts := make([]string, len(f.columns))
	for i, col := range f.columns {
		parts[i] = cell(col)
	}
	line := strings.Join(parts, "  ")
	if header {
		line = f.config.HeaderColor + line + colors.Reset
	}
	_, err := fmt.Fprintln(writer, strings.TrimRight(line, " "))
	return err
}

// formatString pads or cuts s to width runes with the given alignment.
func formatString(s string, width int, alignment string) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return string([]rune(s)[:width])
	}

	switch alignment {
	case "right":
		return strings.Repeat(" ", width-n) + s
	case "center":
		left := (width - n) / 2
		right := width - n - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default: // left
		return s + strings.Repeat(" ", width-n)
	}
}

// truncateString cuts s to width runes, adding "..." if truncated.
func truncateString(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width < 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
