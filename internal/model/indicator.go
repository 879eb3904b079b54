// Package model defines the data types shared across the intelligence pipeline.
package model

import "github.com/rotisserie/eris"

// IndicatorID identifies one economic metric tracked by the pipeline.
type IndicatorID string

const (
	IndicatorGDPPerCapitaPPP IndicatorID = "gdp_ppp"
	IndicatorHDI             IndicatorID = "hdi"
	IndicatorHappiness       IndicatorID = "happiness"
	IndicatorCostOfLiving    IndicatorID = "cost_of_living"
)

// Indicators lists all known indicators in pipeline order.
var Indicators = []IndicatorID{
	IndicatorGDPPerCapitaPPP,
	IndicatorHDI,
	IndicatorHappiness,
	IndicatorCostOfLiving,
}

// ParseIndicator validates an indicator identifier. An unknown identifier is a
// configuration error, not a data-quality issue.
func ParseIndicator(s string) (IndicatorID, error) {
	id := IndicatorID(s)
	for _, known := range Indicators {
		if id == known {
			return id, nil
		}
	}
	return "", eris.Errorf("model: unknown indicator %q", s)
}

// Label returns a human-readable name for reports.
func (id IndicatorID) Label() string {
	switch id {
	case IndicatorGDPPerCapitaPPP:
		return "GDP per capita (PPP)"
	case IndicatorHDI:
		return "Human Development Index"
	case IndicatorHappiness:
		return "Happiness score"
	case IndicatorCostOfLiving:
		return "Cost of living index"
	}
	return string(id)
}

// IndicatorReading is one raw country/value observation from a single source.
// Readings are immutable once fetched.
type IndicatorReading struct {
	SourceID   string  `json:"source_id"`
	CountryRaw string  `json:"country_raw"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit,omitempty"`
	Year       int     `json:"year,omitempty"`
}

// ReconciledIndicator is the merged view of one country's value for one
// indicator. AgreementScore is nil when fewer than two sources contributed.
type ReconciledIndicator struct {
	Country        string   `json:"country"`
	Value          float64  `json:"value"`
	Sources        []string `json:"sources"`
	AgreementScore *float64 `json:"agreement_score,omitempty"`
	Flagged        bool     `json:"flagged"`
}

// Direction indicates which end of a ranking an entry belongs to.
type Direction string

const (
	DirectionTop    Direction = "top"
	DirectionBottom Direction = "bottom"
)

// RankedEntry is one row of a top-N or bottom-N list. Rank is 1-based and
// dense within a direction.
type RankedEntry struct {
	Country   string    `json:"country"`
	Value     float64   `json:"value"`
	Rank      int       `json:"rank"`
	Direction Direction `json:"direction"`
}

// Ranking holds both ends of a ranked list for one indicator.
type Ranking struct {
	Indicator IndicatorID   `json:"indicator"`
	Top       []RankedEntry `json:"top"`
	Bottom    []RankedEntry `json:"bottom"`
}

// Anomaly is a cross-indicator pattern that contradicts the naive expectation
// that indicators move together.
type Anomaly struct {
	Country    string         `json:"country"`
	RuleID     string         `json:"rule_id"`
	Indicators [2]IndicatorID `json:"indicators"`
	Magnitude  float64        `json:"magnitude"`
	Narrative  string         `json:"narrative"`
}

// CoverageReason explains why a country/indicator pair has no reconciled value.
type CoverageReason string

const (
	CoverageNoSourceData   CoverageReason = "no_source_data"
	CoverageBelowThreshold CoverageReason = "below_validation_threshold"
)

// MissingCoverage records an accountable gap for transparency reporting.
type MissingCoverage struct {
	Country   string         `json:"country"`
	Indicator IndicatorID    `json:"indicator"`
	Reason    CoverageReason `json:"reason"`
}
