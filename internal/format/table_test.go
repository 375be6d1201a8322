package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cristianoliveira/courtside/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableConfig(t *testing.T) {
	config := DefaultTableConfig()

	assert.True(t, config.ShowHeaders)
	assert.Equal(t, "\x1b[0;34m", config.HeaderColor)
	assert.Equal(t, 4, config.ColumnWidths["ID"])
	assert.Equal(t, 32, config.ColumnWidths["Title"])
	assert.Equal(t, "right", config.ColumnAlignments["ID"])
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter().FormatRecords(sampleRecords(), &buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	for _, name := range []string{"ID", "Date", "Kind", "Slot", "Outcome", "Title"} {
		assert.Contains(t, lines[0], name)
	}
	assert.Contains(t, lines[1], "----")
	assert.True(t, strings.HasPrefix(lines[2], "   2  "), lines[2])
	assert.Contains(t, lines[2], "Saturday doubles")
	assert.Contains(t, lines[3], "duplicate")
}

func TestTableFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter().FormatRecords([]domain.ApplicationRecord{}, &buf))
	assert.Empty(t, buf.String())
}

func TestTableFormatterWithColumns(t *testing.T) {
	f := NewTableFormatter().WithColumns(TableColumn{
		Name:      "Msg",
		Width:     10,
		Extractor: func(r domain.ApplicationRecord) string { return truncateString(r.Message, 10) },
	})
	var buf bytes.Buffer
	require.NoError(t, f.FormatRecords(sampleRecords(), &buf))
	assert.Contains(t, buf.String(), "Msg")
	assert.Contains(t, buf.String(), "이미 신청한 ...")
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "ab   ", formatString("ab", 5, "left"))
	assert.Equal(t, "   ab", formatString("ab", 5, "right"))
	assert.Equal(t, " ab  ", formatString("ab", 5, "center"))
	assert.Equal(t, "abc", formatString("abcdef", 3, "left"))
	assert.Equal(t, "코트  ", formatString("코트", 4, "left"))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcdefg...", truncateString("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncateString("abcdef", 2))
	assert.Equal(t, "테니스...", truncateString("테니스코트예약", 6))
}
