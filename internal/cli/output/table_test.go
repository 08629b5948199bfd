package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableData(t *testing.T) {
	table := NewTableData("Run", "Seed")

	assert.Equal(t, []string{"Run", "Seed"}, table.Headers())
	assert.Empty(t, table.Rows())

	table.AddRow("1", "42")
	table.AddRow("2", "43")

	rows := table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "42"}, rows[0])
	assert.Equal(t, []string{"2", "43"}, rows[1])
}

func TestPrintTable(t *testing.T) {
	table := NewTableData("Field", "Value")
	table.AddRow("Degree", "128")
	table.AddRow("Load factor", "0.750")

	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, table))

	out := buf.String()
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "VALUE")
	assert.Contains(t, out, "Degree")
	assert.Contains(t, out, "128")
	assert.Contains(t, out, "Load factor")
	assert.Contains(t, out, "0.750")
}

func TestPrintKeyValues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintKeyValues(&buf, [][2]string{
		{"Version", "1.0.0"},
		{"Commit", "abc123"},
	}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Version:"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Commit:"), lines[1])

	// Values start in the same column.
	assert.Equal(t, strings.Index(lines[0], "1.0.0"), strings.Index(lines[1], "abc123"))
}
