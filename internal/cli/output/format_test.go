package output

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{name: "table", input: "table", want: FormatTable},
		{name: "empty defaults to table", input: "", want: FormatTable},
		{name: "json", input: "json", want: FormatJSON},
		{name: "JSON uppercase", input: "JSON", want: FormatJSON},
		{name: "yaml", input: "yaml", want: FormatYAML},
		{name: "yml alias", input: "yml", want: FormatYAML},
		{name: "whitespace trimmed", input: "  table  ", want: FormatTable},
		{name: "invalid format", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrinter_StatusLines(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, FormatTable, false)

	printer.Success("all runs passed")
	printer.Warning("slow run")
	printer.Error("run 3 diverged")

	assert.Equal(t, "all runs passed\nslow run\nrun 3 diverged\n", buf.String())
}

func TestPrinter_ColoredStatusLines(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, FormatTable, true)

	printer.Error("boom")
	assert.Equal(t, "\033[31mboom\033[0m\n", buf.String())
}

func TestPrinter_PrintTableRenderer(t *testing.T) {
	var buf bytes.Buffer
	table := NewTableData("Op", "Count")
	table.AddRow("append", "12")

	require.NoError(t, NewPrinter(&buf, FormatTable, false).Print(table))
	assert.Contains(t, buf.String(), "OP")
	assert.Contains(t, buf.String(), "append")
}

func TestPrinter_TableFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPrinter(&buf, FormatTable, false).Print(map[string]int{"size": 3}))
	assert.Contains(t, buf.String(), `"size": 3`)
}

func TestPrinter_Structured(t *testing.T) {
	assert.False(t, NewPrinter(nil, FormatTable, false).Structured())
	assert.True(t, NewPrinter(nil, FormatJSON, false).Structured())
	assert.True(t, NewPrinter(nil, FormatYAML, false).Structured())
}

func TestNewAutoPrinter(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, NewAutoPrinter(&buf, FormatTable).ColorEnabled(), "buffers are never colored")
	assert.Equal(t, FormatJSON, NewAutoPrinter(&buf, FormatJSON).Format())

	t.Setenv("NO_COLOR", "1")
	assert.False(t, NewAutoPrinter(os.Stdout, FormatTable).ColorEnabled())
}
