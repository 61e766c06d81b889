package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plusk0/periodic-table/src/periodic"
)

type counterIDs struct{ n int }

func (c *counterIDs) NewID() string {
	c.n++
	return fmt.Sprintf("gen-%d", c.n)
}

var sample = []periodic.Element{
	{ID: "h", Position: 1, Name: "Hydrogen", Weight: 1.0079, Symbol: "H"},
	{ID: "he", Position: 2, Name: "Helium", Weight: 4.0026, Symbol: "He"},
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, formatYAML, formatFor("out.yaml"))
	assert.Equal(t, formatYAML, formatFor("OUT.YML"))
	assert.Equal(t, formatJSON, formatFor("out.json"))
	assert.Equal(t, formatJSON, formatFor("out"))
}

func TestExportImportBothFormats(t *testing.T) {
	for _, name := range []string{"t.json", "t.yaml"} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeExport(&buf, formatFor(name), sample, "he"))

			got, err := readImport(&buf, formatFor(name), &counterIDs{})

			require.NoError(t, err)
			assert.Equal(t, sample, got)
		})
	}
}

func TestImportAcceptsBareList(t *testing.T) {
	tests := []struct {
		name   string
		format fileFormat
		input  string
	}{
		{"json", formatJSON, `[{"position": 3, "name": "Lithium", "weight": 6.941, "symbol": "Li"}]`},
		{"yaml", formatYAML, "- position: 3\n  name: Lithium\n  weight: 6.941\n  symbol: Li\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readImport(strings.NewReader(tt.input), tt.format, &counterIDs{})

			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, periodic.Element{ID: "gen-1", Position: 3, Name: "Lithium", Weight: 6.941, Symbol: "Li"}, got[0])
		})
	}
}

func TestImportReassignsDuplicateIDs(t *testing.T) {
	input := `{"elements": [{"id": "x", "position": 1}, {"id": "x", "position": 2}]}`

	got, err := readImport(strings.NewReader(input), formatJSON, &counterIDs{})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "x", got[0].ID)
	assert.Equal(t, "gen-1", got[1].ID)
}

func TestImportRejectsGarbage(t *testing.T) {
	_, err := readImport(strings.NewReader(`"just a string"`), formatJSON, &counterIDs{})
	assert.Error(t, err)

	_, err = readImport(strings.NewReader("{"), formatJSON, &counterIDs{})
	assert.Error(t, err)

	_, err = readImport(strings.NewReader("just a scalar"), formatYAML, &counterIDs{})
	assert.Error(t, err)
}
