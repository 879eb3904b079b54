// Package reconcile merges per-indicator readings from independent sources
// into a single value per country with an agreement signal.
package reconcile

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/econ-intel/internal/country"
	"github.com/sells-group/econ-intel/internal/model"
)

// similarityEpsilon guards the similarity denominator when both values are
// near zero.
const similarityEpsilon = 1e-9

// comparisonTolerance absorbs float rounding when comparing an agreement
// score against the configured threshold.
const comparisonTolerance = 1e-9

// Policy selects which value wins when multiple sources contribute.
type Policy string

const (
	// PolicyMean reconciles to the mean of all contributing sources.
	PolicyMean Policy = "mean"
	// PolicyPrimary reconciles to the first-listed source's value.
	PolicyPrimary Policy = "primary"
)

// Options configures reconciliation behavior.
type Options struct {
	// MinSources is the number of sources required before a value counts as
	// cross-validated. Below it the entry is always flagged.
	MinSources int
	// Threshold is the inclusive agreement-score floor for "validated".
	Threshold float64
	// Policy picks the reconciled value on multi-source entries.
	Policy Policy
}

// DefaultOptions mirrors the documented configuration defaults.
func DefaultOptions() Options {
	return Options{MinSources: 2, Threshold: 0.95, Policy: PolicyMean}
}

// Warning records a non-fatal data-quality event for transparency reporting.
type Warning struct {
	Indicator model.IndicatorID
	Country   string
	SourceID  string
	Message   string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s (%s): %s", w.Indicator, w.Country, w.SourceID, w.Message)
}

// Reconciler groups readings by canonical country and merges them.
type Reconciler struct {
	opts Options
}

// New creates a Reconciler with the given options.
func New(opts Options) *Reconciler {
	if opts.MinSources < 2 {
		opts.MinSources = 2
	}
	return &Reconciler{opts: opts}
}

// Reconcile merges readings for one indicator into a country-keyed mapping.
// Data-quality problems never fail the call: malformed readings are dropped
// with a warning, disagreement and single-source entries are flagged.
// Countries with no usable readings are absent from the result.
func (r *Reconciler) Reconcile(indicator model.IndicatorID, readings []model.IndicatorReading) (map[string]model.ReconciledIndicator, []Warning) {
	var warnings []Warning

	// Group readings by canonical country, one value per source. A source
	// reporting the same country twice keeps its first reading.
	type observation struct {
		sourceID string
		value    float64
	}
	groups := make(map[string][]observation)
	seen := make(map[string]map[string]bool)
	for _, reading := range readings {
		key := country.Normalize(reading.CountryRaw)
		if key == "" {
			warnings = append(warnings, Warning{
				Indicator: indicator,
				Country:   reading.CountryRaw,
				SourceID:  reading.SourceID,
				Message:   "unusable country name, reading dropped",
			})
			continue
		}
		if math.IsNaN(reading.Value) || math.IsInf(reading.Value, 0) {
			warnings = append(warnings, Warning{
				Indicator: indicator,
				Country:   key,
				SourceID:  reading.SourceID,
				Message:   "non-numeric value, reading dropped",
			})
			continue
		}
		if seen[key] == nil {
			seen[key] = make(map[string]bool)
		}
		if seen[key][reading.SourceID] {
			continue
		}
		seen[key][reading.SourceID] = true
		groups[key] = append(groups[key], observation{sourceID: reading.SourceID, value: reading.Value})
	}

	result := make(map[string]model.ReconciledIndicator, len(groups))
	for key, obs := range groups {
		entry := model.ReconciledIndicator{Country: key}
		for _, o := range obs {
			entry.Sources = append(entry.Sources, o.sourceID)
		}

		if len(obs) < r.opts.MinSources {
			// Single source: accept as-is, unverified.
			entry.Value = obs[0].value
			entry.Flagged = true
			result[key] = entry
			continue
		}

		values := make([]float64, len(obs))
		for i, o := range obs {
			values[i] = o.value
		}
		score := agreementScore(values)
		entry.AgreementScore = &score
		// Inclusive boundary with float tolerance: 100 vs 95 must validate
		// at threshold 0.95 even though 1-5/100 rounds just below it.
		entry.Flagged = r.opts.Threshold-score > comparisonTolerance

		switch r.opts.Policy {
		case PolicyPrimary:
			entry.Value = obs[0].value
		default:
			entry.Value = mean(values)
		}

		if entry.Flagged {
			warnings = append(warnings, Warning{
				Indicator: indicator,
				Country:   key,
				SourceID:  entry.Sources[0],
				Message: fmt.Sprintf("source disagreement: agreement %.3f below threshold %.3f, values %v",
					score, r.opts.Threshold, values),
			})
			zap.L().Warn("reconcile: low agreement",
				zap.String("indicator", string(indicator)),
				zap.String("country", key),
				zap.Float64("agreement", score),
				zap.Float64s("values", values),
			)
		}
		result[key] = entry
	}

	return result, warnings
}

// agreementScore averages pairwise similarities across all contributing
// values. Similarity is 1 - |a-b| / max(|a|, |b|, eps).
func agreementScore(values []float64) float64 {
	var total float64
	var pairs int
	for i := 0; i < len(values); i++ {
		for j := i + 1; j < len(values); j++ {
			total += similarity(values[i], values[j])
			pairs++
		}
	}
	if pairs == 0 {
		return 0
	}
	return total / float64(pairs)
}

func similarity(a, b float64) float64 {
	denom := math.Max(math.Max(math.Abs(a), math.Abs(b)), similarityEpsilon)
	sim := 1 - math.Abs(a-b)/denom
	return math.Max(0, math.Min(1, sim))
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Countries returns the sorted canonical keys of a reconciled mapping.
func Countries(m map[string]model.ReconciledIndicator) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
