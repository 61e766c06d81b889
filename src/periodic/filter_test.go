package periodic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	oxygen := Element{ID: "o", Position: 8, Name: "Oxygen", Weight: 15.9994, Symbol: "O"}

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"empty matches all", "", true},
		{"name substring", "xyg", true},
		{"name ignores case", "OXY", true},
		{"symbol", "o", true},
		{"position", "8", true},
		{"weight digits", "15.99", true},
		{"weight fraction", ".9994", true},
		{"no match", "neon", false},
		{"position is not padded", "08", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(oxygen, tt.query))
		})
	}
}

func TestFormatWeight(t *testing.T) {
	assert.Equal(t, "4", FormatWeight(4))
	assert.Equal(t, "1.0079", FormatWeight(1.0079))
	assert.Equal(t, "0.5", FormatWeight(0.5))
}

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "he", NormalizeQuery("  He\t"))
	assert.Equal(t, "", NormalizeQuery("   "))
}

func TestFilterElementsKeepsOrder(t *testing.T) {
	elements := seedElements(&seqIDs{})

	got := filterElements(elements, "n")

	var names []string
	for _, e := range got {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Hydrogen", "Boron", "Carbon", "Nitrogen", "Oxygen", "Fluorine", "Neon"}, names)
}
