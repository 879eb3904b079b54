// Package rank produces ordered top-N / bottom-N country lists from
// reconciled indicator values.
package rank

import (
	"sort"

	"github.com/sells-group/econ-intel/internal/model"
)

// Rank sorts reconciled values and returns the top and bottom ends of the
// list. Ranks are dense 1..N within each direction. Ties break on canonical
// country name so identical input always yields identical output. When fewer
// countries exist than requested, all available entries are returned.
func Rank(reconciled map[string]model.ReconciledIndicator, topN, bottomN int) (top, bottom []model.RankedEntry) {
	type pair struct {
		country string
		value   float64
	}
	pairs := make([]pair, 0, len(reconciled))
	for key, entry := range reconciled {
		pairs = append(pairs, pair{country: key, value: entry.Value})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].value != pairs[j].value {
			return pairs[i].value > pairs[j].value
		}
		return pairs[i].country < pairs[j].country
	})

	if topN > len(pairs) {
		topN = len(pairs)
	}
	if bottomN > len(pairs) {
		bottomN = len(pairs)
	}
	if topN < 0 {
		topN = 0
	}
	if bottomN < 0 {
		bottomN = 0
	}

	top = make([]model.RankedEntry, 0, topN)
	for i := 0; i < topN; i++ {
		top = append(top, model.RankedEntry{
			Country:   pairs[i].country,
			Value:     pairs[i].value,
			Rank:      i + 1,
			Direction: model.DirectionTop,
		})
	}

	// Bottom is sorted ascending with the same lexicographic tie-break, not
	// just the tail of the descending list, so tied names keep stable order.
	asc := make([]pair, len(pairs))
	copy(asc, pairs)
	sort.Slice(asc, func(i, j int) bool {
		if asc[i].value != asc[j].value {
			return asc[i].value < asc[j].value
		}
		return asc[i].country < asc[j].country
	})

	bottom = make([]model.RankedEntry, 0, bottomN)
	for i := 0; i < bottomN; i++ {
		bottom = append(bottom, model.RankedEntry{
			Country:   asc[i].country,
			Value:     asc[i].value,
			Rank:      i + 1,
			Direction: model.DirectionBottom,
		})
	}

	return top, bottom
}
