package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/econ-intel/internal/model"
)

func sampleRun() *model.Run {
	score := 0.99
	return &model.Run{
		ID:        "run-123",
		Status:    model.RunStatusComplete,
		CreatedAt: time.Now().UTC(),
		Result: &model.RunResult{
			Reconciled: map[model.IndicatorID]map[string]model.ReconciledIndicator{
				model.IndicatorGDPPerCapitaPPP: {
					"norway":  {Country: "norway", Value: 82655, Sources: []string{"a", "b"}, AgreementScore: &score},
					"ireland": {Country: "ireland", Value: 114581, Sources: []string{"a"}, Flagged: true},
				},
			},
			Rankings: map[model.IndicatorID]model.Ranking{
				model.IndicatorGDPPerCapitaPPP: {
					Indicator: model.IndicatorGDPPerCapitaPPP,
					Top: []model.RankedEntry{
						{Country: "ireland", Value: 114581, Rank: 1, Direction: model.DirectionTop},
						{Country: "norway", Value: 82655, Rank: 2, Direction: model.DirectionTop},
					},
				},
			},
			CostOfLivingTop: []model.RankedEntry{
				{Country: "norway", Value: 101.4, Rank: 2, Direction: model.DirectionTop},
			},
			Anomalies: []model.Anomaly{{
				Country:    "ireland",
				RuleID:     "high-gdp-low-happiness",
				Indicators: [2]model.IndicatorID{model.IndicatorGDPPerCapitaPPP, model.IndicatorHappiness},
				Magnitude:  0.8,
				Narrative:  "high GDP per capita but low happiness",
			}},
			Missing: []model.MissingCoverage{{
				Country:   "ireland",
				Indicator: model.IndicatorCostOfLiving,
				Reason:    model.CoverageNoSourceData,
			}},
			Warnings: []string{"[hdi] source undp unavailable: timeout"},
			Stages: []model.StageResult{
				{Name: "fetch_gdp", Status: model.StageStatusComplete, Duration: 120},
				{Name: "rank", Status: model.StageStatusComplete, Duration: 2},
			},
		},
	}
}

func TestFormatMarkdown(t *testing.T) {
	out := FormatMarkdown(sampleRun())

	assert.Contains(t, out, "Run: run-123")
	assert.Contains(t, out, "Status: complete")
	assert.Contains(t, out, "GDP per capita (PPP): 2 countries reconciled")
	assert.Contains(t, out, "| 1 | Ireland | 114581.00 | a | n/a | unverified |")
	assert.Contains(t, out, "| 2 | Norway | 82655.00 | a, b | 0.990 |")
	assert.Contains(t, out, "## Cost of Living (GDP Top 10)")
	assert.Contains(t, out, "| 2 | Norway | 101.4 |")
	assert.Contains(t, out, "Ireland / GDP per capita (PPP): single source (a), unverified")
	assert.Contains(t, out, "Ireland / Cost of living index: no_source_data")
	assert.Contains(t, out, "**Ireland** [high-gdp-low-happiness, magnitude 0.80]")
	assert.Contains(t, out, "fetch_gdp: complete (120ms)")
	assert.Contains(t, out, "source undp unavailable")
}

func TestFormatMarkdown_NoResult(t *testing.T) {
	run := &model.Run{ID: "run-err", Status: model.RunStatusFailed}
	out := FormatMarkdown(run)
	assert.Contains(t, out, "No results recorded")
	assert.NotContains(t, out, "## Summary")
}

func TestFormatMarkdown_NoDiscrepancies(t *testing.T) {
	run := sampleRun()
	rec := run.Result.Reconciled[model.IndicatorGDPPerCapitaPPP]["ireland"]
	rec.Flagged = false
	run.Result.Reconciled[model.IndicatorGDPPerCapitaPPP]["ireland"] = rec

	out := FormatMarkdown(run)
	assert.Contains(t, out, "All reconciled values are cross-validated.")
}

func TestFormatMarkdown_FailedStage(t *testing.T) {
	run := sampleRun()
	run.Result.Stages = append(run.Result.Stages, model.StageResult{
		Name: "align_cost_of_living", Status: model.StageStatusFailed, Error: "boom",
	})

	out := FormatMarkdown(run)
	assert.Contains(t, out, "align_cost_of_living: failed")
	assert.Contains(t, out, "Error: boom")
}

func TestFormatMarkdown_PartialNote(t *testing.T) {
	run := sampleRun()
	run.Result.Partial = true
	assert.True(t, strings.Contains(FormatMarkdown(run), "**Partial run**"))
}
