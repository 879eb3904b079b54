package rank

import "sort"

// Quartiles holds the quartile cutoffs of a value distribution.
type Quartiles struct {
	Q1     float64
	Median float64
	Q3     float64
}

// ComputeQuartiles returns the quartile cutoffs using linear interpolation
// between closest ranks. ok is false when the input is empty.
func ComputeQuartiles(values []float64) (q Quartiles, ok bool) {
	if len(values) == 0 {
		return Quartiles{}, false
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Quartiles{
		Q1:     percentile(sorted, 0.25),
		Median: percentile(sorted, 0.50),
		Q3:     percentile(sorted, 0.75),
	}, true
}

// percentile expects sorted input and p in [0,1].
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(pos)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
