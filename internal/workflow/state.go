// Package workflow drives an intelligence run through its stages: fetch the
// three headline indicators concurrently, rank, align cost of living to the
// GDP top ten, then scan for cross-indicator anomalies.
package workflow

import "github.com/sells-group/econ-intel/internal/model"

// Stage names one state of the run state machine. The fetch stages have no
// data dependency on each other and run concurrently; everything from
// StageRank onward waits for all three.
type Stage string

const (
	StageFetchGDP          Stage = "fetch_gdp"
	StageFetchHDI          Stage = "fetch_hdi"
	StageFetchHappiness    Stage = "fetch_happiness"
	StageRank              Stage = "rank"
	StageAlignCostOfLiving Stage = "align_cost_of_living"
	StageDetectAnomalies   Stage = "detect_anomalies"
	StageDone              Stage = "done"
	StageError             Stage = "error"
)

// fetchStages maps the concurrent fetch stages to their indicators.
var fetchStages = map[Stage]model.IndicatorID{
	StageFetchGDP:       model.IndicatorGDPPerCapitaPPP,
	StageFetchHDI:       model.IndicatorHDI,
	StageFetchHappiness: model.IndicatorHappiness,
}

// fetchOrder fixes the fold order for fetch outcomes so run-state contents
// are deterministic regardless of goroutine completion order.
var fetchOrder = []Stage{StageFetchGDP, StageFetchHDI, StageFetchHappiness}
