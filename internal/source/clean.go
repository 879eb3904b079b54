package source

import (
	"regexp"
	"strconv"
	"strings"
)

var numericPattern = regexp.MustCompile(`[-+]?\d[\d,]*\.?\d*`)

// CleanNumeric extracts a float from a scraped table cell. Thousands
// separators, thin/non-breaking spaces, footnote daggers, and surrounding
// text are tolerated. ok is false when the cell holds no number.
func CleanNumeric(cell string) (float64, bool) {
	s := strings.NewReplacer("\u00a0", "", "\u2009", "", "\u202f", "").Replace(cell)
	match := numericPattern.FindString(s)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// skipCountryCells are aggregate rows that must not enter reconciliation.
var skipCountryCells = map[string]bool{
	"world":          true,
	"world average":  true,
	"world total":    true,
	"european union": true,
}

// usableCountryCell reports whether a country cell names an actual country.
func usableCountryCell(cell string) bool {
	c := strings.ToLower(strings.TrimSpace(cell))
	if c == "" {
		return false
	}
	return !skipCountryCells[c]
}

// findColumn returns the index of the first header cell containing any of the
// given lowercase terms, or -1.
func findColumn(header []string, terms ...string) int {
	for i, cell := range header {
		lower := strings.ToLower(cell)
		for _, term := range terms {
			if strings.Contains(lower, term) {
				return i
			}
		}
	}
	return -1
}
