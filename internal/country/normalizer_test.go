package country

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"passthrough", "Norway", "norway"},
		{"whitespace", "  Norway \t", "norway"},
		{"alias long form", "United States of America", "united states"},
		{"alias acronym", "USA", "united states"},
		{"world bank comma form", "Korea, Rep.", "south korea"},
		{"diacritics plus alias", "Côte d'Ivoire", "ivory coast"},
		{"turkish rename", "Türkiye", "turkey"},
		{"footnote marker", "China[a]", "china"},
		{"parenthetical", "Iran (Islamic Republic of)", "iran"},
		{"hyphenated congo", "Congo-Kinshasa", "dr congo"},
		{"leading article", "The Gambia", "gambia"},
		{"sar suffix", "Hong Kong SAR, China", "hong kong"},
		{"nbsp", "New\u00a0Zealand", "new zealand"},
		{"empty", "", ""},
		{"only punctuation", "—†*", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"United States of America",
		"Korea, Rep.",
		"Côte d'Ivoire",
		"Congo-Kinshasa",
		"Czech Republic",
		"some unknown place",
	}
	for _, raw := range inputs {
		once := Normalize(raw)
		assert.Equal(t, once, Normalize(once), "normalize must be idempotent for %q", raw)
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "United States", DisplayName("united states"))
	assert.Equal(t, "Ivory Coast", DisplayName("ivory coast"))
}
