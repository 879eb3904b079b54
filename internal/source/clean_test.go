package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanNumeric(t *testing.T) {
	tests := []struct {
		cell string
		want float64
		ok   bool
	}{
		{"82,655", 82655, true},
		{"0.961", 0.961, true},
		{"114,581.3", 114581.3, true},
		{"$1,234", 1234, true},
		{"7.74 (2024)", 7.74, true},
		{"-2.5", -2.5, true},
		{"1 234", 1234, true}, // nbsp separator
		{"—", 0, false},
		{"n/a", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := CleanNumeric(tt.cell)
		assert.Equal(t, tt.ok, ok, "cell %q", tt.cell)
		if tt.ok {
			assert.InDelta(t, tt.want, got, 1e-9, "cell %q", tt.cell)
		}
	}
}

func TestUsableCountryCell(t *testing.T) {
	assert.True(t, usableCountryCell("Norway"))
	assert.True(t, usableCountryCell(" Ireland "))
	assert.False(t, usableCountryCell(""))
	assert.False(t, usableCountryCell("World"))
	assert.False(t, usableCountryCell("European Union"))
}

func TestFindColumn(t *testing.T) {
	header := []string{"Rank", "Country/Territory", "IMF Estimate", "World Bank"}
	assert.Equal(t, 1, findColumn(header, "country"))
	assert.Equal(t, 2, findColumn(header, "imf"))
	assert.Equal(t, -1, findColumn(header, "happiness"))
	assert.Equal(t, -1, findColumn(nil, "country"))
}
