package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/econ-intel/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleResult() *model.RunResult {
	score := 0.99
	return &model.RunResult{
		Reconciled: map[model.IndicatorID]map[string]model.ReconciledIndicator{
			model.IndicatorGDPPerCapitaPPP: {
				"norway": {Country: "norway", Value: 80000, Sources: []string{"a", "b"}, AgreementScore: &score},
			},
		},
		Rankings: map[model.IndicatorID]model.Ranking{
			model.IndicatorGDPPerCapitaPPP: {
				Indicator: model.IndicatorGDPPerCapitaPPP,
				Top:       []model.RankedEntry{{Country: "norway", Value: 80000, Rank: 1, Direction: model.DirectionTop}},
			},
		},
		Missing: []model.MissingCoverage{
			{Country: "ireland", Indicator: model.IndicatorCostOfLiving, Reason: model.CoverageNoSourceData},
		},
		Warnings: []string{"something degraded"},
	}
}

func TestSQLiteStore_RunLifecycle(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusQueued, run.Status)

	require.NoError(t, s.UpdateRunStatus(ctx, run.ID, model.RunStatusFetching))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusFetching, got.Status)
	assert.Nil(t, got.Result)

	require.NoError(t, s.UpdateRunResult(ctx, run.ID, sampleResult(), model.RunStatusComplete))

	got, err = s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, got.Status)
	require.NotNil(t, got.Result)
	entry := got.Result.Reconciled[model.IndicatorGDPPerCapitaPPP]["norway"]
	assert.Equal(t, 80000.0, entry.Value)
	require.NotNil(t, entry.AgreementScore)
	assert.Equal(t, 0.99, *entry.AgreementScore)
	require.Len(t, got.Result.Missing, 1)
	assert.Equal(t, model.CoverageNoSourceData, got.Result.Missing[0].Reason)
}

func TestSQLiteStore_GetRun_NotFound(t *testing.T) {
	s := newTestSQLiteStore(t)

	_, err := s.GetRun(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteStore_UpdateMissingRun(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	err := s.UpdateRunStatus(ctx, "nonexistent", model.RunStatusFailed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = s.UpdateRunResult(ctx, "nonexistent", sampleResult(), model.RunStatusComplete)
	require.Error(t, err)
}

func TestSQLiteStore_ListRuns(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	first, err := s.CreateRun(ctx)
	require.NoError(t, err)
	second, err := s.CreateRun(ctx)
	require.NoError(t, err)
	require.NoError(t, s.UpdateRunStatus(ctx, second.ID, model.RunStatusComplete))

	all, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	queued, err := s.ListRuns(ctx, RunFilter{Status: model.RunStatusQueued})
	require.NoError(t, err)
	require.Len(t, queued, 1)
	assert.Equal(t, first.ID, queued[0].ID)

	limited, err := s.ListRuns(ctx, RunFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLiteStore_Stages(t *testing.T) {
	s := newTestSQLiteStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx)
	require.NoError(t, err)

	stage, err := s.CreateStage(ctx, run.ID, "fetch_gdp")
	require.NoError(t, err)
	assert.Equal(t, model.StageStatusRunning, stage.Status)

	err = s.CompleteStage(ctx, stage.ID, &model.StageResult{
		Name:     "fetch_gdp",
		Status:   model.StageStatusDegraded,
		Duration: 42,
	})
	require.NoError(t, err)

	err = s.CompleteStage(ctx, "nonexistent", &model.StageResult{Status: model.StageStatusComplete})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
