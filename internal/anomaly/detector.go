// Package anomaly cross-references reconciled indicators pairwise and flags
// countries whose indicator combinations contradict the usual correlation.
package anomaly

import (
	"fmt"
	"math"
	"sort"

	"github.com/sells-group/econ-intel/internal/country"
	"github.com/sells-group/econ-intel/internal/model"
	"github.com/sells-group/econ-intel/internal/rank"
)

// cutoffs holds the distribution cutoffs for one indicator pair, computed
// over the countries present in both indicators.
type cutoffs struct {
	firstQ1, firstMedian, firstQ3    float64
	secondQ1, secondMedian, secondQ3 float64
	firstSpan, secondSpan            float64
}

// Rule flags one cross-indicator pattern. Rules are independent and evaluated
// per country over its pair of reconciled values.
type Rule struct {
	ID         string
	Indicators [2]model.IndicatorID
	// Trigger reports whether (first, second) crosses the rule's cutoffs and,
	// if so, how far beyond them the pair sits (normalized, >= 0).
	Trigger func(first, second float64, c cutoffs) (float64, bool)
	// Narrative renders the report line for a triggered country.
	Narrative func(display string) string
}

// Detector evaluates a fixed rule list against reconciled indicator values.
type Detector struct {
	rules []Rule
}

// NewDetector creates a Detector with the built-in rule set.
func NewDetector() *Detector {
	return &Detector{rules: builtinRules()}
}

// builtinRules returns the rule list in declaration order; output grouping
// follows this order.
func builtinRules() []Rule {
	return []Rule{
		{
			ID:         "high-gdp-low-happiness",
			Indicators: [2]model.IndicatorID{model.IndicatorGDPPerCapitaPPP, model.IndicatorHappiness},
			Trigger: func(gdp, happiness float64, c cutoffs) (float64, bool) {
				if gdp >= c.firstQ3 && happiness <= c.secondQ1 {
					return normDist(gdp, c.firstQ3, c.firstSpan) + normDist(c.secondQ1, happiness, c.secondSpan), true
				}
				return 0, false
			},
			Narrative: func(display string) string {
				return fmt.Sprintf("%s ranks among the richest economies yet reports bottom-quartile happiness.", display)
			},
		},
		{
			ID:         "high-hdi-low-gdp",
			Indicators: [2]model.IndicatorID{model.IndicatorHDI, model.IndicatorGDPPerCapitaPPP},
			Trigger: func(hdi, gdp float64, c cutoffs) (float64, bool) {
				if hdi >= c.firstQ3 && gdp <= c.secondMedian {
					return normDist(hdi, c.firstQ3, c.firstSpan) + normDist(c.secondMedian, gdp, c.secondSpan), true
				}
				return 0, false
			},
			Narrative: func(display string) string {
				return fmt.Sprintf("%s sustains top-quartile human development on a below-median income.", display)
			},
		},
		{
			ID:         "high-happiness-low-gdp",
			Indicators: [2]model.IndicatorID{model.IndicatorHappiness, model.IndicatorGDPPerCapitaPPP},
			Trigger: func(happiness, gdp float64, c cutoffs) (float64, bool) {
				if happiness >= c.firstQ3 && gdp <= c.secondMedian {
					return normDist(happiness, c.firstQ3, c.firstSpan) + normDist(c.secondMedian, gdp, c.secondSpan), true
				}
				return 0, false
			},
			Narrative: func(display string) string {
				return fmt.Sprintf("%s reports top-quartile happiness despite below-median GDP per capita.", display)
			},
		},
		{
			// Inverse framing of the previous rule: triggered from the GDP
			// side, with its own narrative.
			ID:         "low-gdp-high-happiness",
			Indicators: [2]model.IndicatorID{model.IndicatorGDPPerCapitaPPP, model.IndicatorHappiness},
			Trigger: func(gdp, happiness float64, c cutoffs) (float64, bool) {
				if gdp <= c.firstQ1 && happiness >= c.secondQ3 {
					return normDist(c.firstQ1, gdp, c.firstSpan) + normDist(happiness, c.secondQ3, c.secondSpan), true
				}
				return 0, false
			},
			Narrative: func(display string) string {
				return fmt.Sprintf("%s is poor on paper but its population reports top-quartile life satisfaction.", display)
			},
		},
	}
}

// Find evaluates every rule against the reconciled values and returns the
// anomalies grouped by rule declaration order, magnitude descending within a
// rule. A country missing either indicator of a pair is skipped silently.
func (d *Detector) Find(values map[model.IndicatorID]map[string]model.ReconciledIndicator) []model.Anomaly {
	var out []model.Anomaly

	for _, rule := range d.rules {
		first := values[rule.Indicators[0]]
		second := values[rule.Indicators[1]]
		if len(first) == 0 || len(second) == 0 {
			continue
		}

		// Cutoffs are computed over countries with both indicators reconciled.
		var firstVals, secondVals []float64
		var common []string
		for key, f := range first {
			s, ok := second[key]
			if !ok {
				continue
			}
			common = append(common, key)
			firstVals = append(firstVals, f.Value)
			secondVals = append(secondVals, s.Value)
		}
		if len(common) == 0 {
			continue
		}
		sort.Strings(common)

		fq, _ := rank.ComputeQuartiles(firstVals)
		sq, _ := rank.ComputeQuartiles(secondVals)
		c := cutoffs{
			firstQ1: fq.Q1, firstMedian: fq.Median, firstQ3: fq.Q3,
			secondQ1: sq.Q1, secondMedian: sq.Median, secondQ3: sq.Q3,
			firstSpan:  span(firstVals),
			secondSpan: span(secondVals),
		}

		var triggered []model.Anomaly
		for _, key := range common {
			magnitude, ok := rule.Trigger(first[key].Value, second[key].Value, c)
			if !ok {
				continue
			}
			triggered = append(triggered, model.Anomaly{
				Country:    key,
				RuleID:     rule.ID,
				Indicators: rule.Indicators,
				Magnitude:  magnitude,
				Narrative:  rule.Narrative(country.DisplayName(key)),
			})
		}

		sort.SliceStable(triggered, func(i, j int) bool {
			return triggered[i].Magnitude > triggered[j].Magnitude
		})
		out = append(out, triggered...)
	}

	return out
}

// normDist is the distance past a cutoff, normalized by the distribution span.
func normDist(a, b, span float64) float64 {
	if span <= 0 {
		return 0
	}
	return math.Max(0, a-b) / span
}

func span(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return hi - lo
}
