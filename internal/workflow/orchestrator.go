package workflow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/econ-intel/internal/anomaly"
	"github.com/sells-group/econ-intel/internal/config"
	"github.com/sells-group/econ-intel/internal/country"
	"github.com/sells-group/econ-intel/internal/model"
	"github.com/sells-group/econ-intel/internal/rank"
	"github.com/sells-group/econ-intel/internal/reconcile"
	"github.com/sells-group/econ-intel/internal/source"
	"github.com/sells-group/econ-intel/internal/store"
)

// costOfLivingUniverse is the number of GDP-ranked countries the alignment
// stage covers.
const costOfLivingUniverse = 10

// Orchestrator executes intelligence runs. Construct once, reuse across runs;
// every run is independent given the same upstream content.
type Orchestrator struct {
	cfg        *config.Config
	registry   *source.Registry
	store      store.Store
	reconciler *reconcile.Reconciler
	detector   *anomaly.Detector
}

// New creates an Orchestrator.
func New(cfg *config.Config, registry *source.Registry, st store.Store) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		registry: registry,
		store:    st,
		reconciler: reconcile.New(reconcile.Options{
			MinSources: cfg.Validation.MinSources,
			Threshold:  cfg.Validation.Threshold,
			Policy:     reconcile.Policy(cfg.Validation.Policy),
		}),
		detector: anomaly.NewDetector(),
	}
}

// fetchOutcome carries one fetch stage's output to the fold after the join.
type fetchOutcome struct {
	indicator  model.IndicatorID
	raw        []model.IndicatorReading
	reconciled map[string]model.ReconciledIndicator
	warnings   []string
	allFailed  bool
}

// Run executes the full workflow once and returns the persisted run record
// with its result attached. Data-quality problems degrade into warnings,
// flags, and coverage entries; only configuration and persistence failures
// return an error.
func (o *Orchestrator) Run(ctx context.Context) (*model.Run, error) {
	log := zap.L()
	log.Info("workflow: starting run")

	run, err := o.store.CreateRun(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "workflow: create run")
	}

	setStatus := func(status model.RunStatus) {
		if statusErr := o.store.UpdateRunStatus(ctx, run.ID, status); statusErr != nil {
			log.Warn("workflow: failed to update status", zap.Error(statusErr))
		}
	}

	// Stage tracking helper with mutex for the concurrent fetch stages.
	var stagesMu sync.Mutex
	var stages []model.StageResult
	trackStage := func(stage Stage, fn func() (*model.StageResult, error)) error {
		name := string(stage)
		rec, recErr := o.store.CreateStage(ctx, run.ID, name)
		if recErr != nil {
			log.Warn("workflow: failed to create stage", zap.String("stage", name), zap.Error(recErr))
		}

		start := time.Now()
		stageResult, fnErr := fn()
		duration := time.Since(start).Milliseconds()

		if stageResult == nil {
			stageResult = &model.StageResult{}
		}
		stageResult.Name = name
		stageResult.Duration = duration

		switch {
		case fnErr != nil:
			stageResult.Status = model.StageStatusFailed
			stageResult.Error = fnErr.Error()
			log.Error("workflow: stage failed",
				zap.String("stage", name),
				zap.Int64("duration_ms", duration),
				zap.Error(fnErr),
			)
		case stageResult.Status == "":
			stageResult.Status = model.StageStatusComplete
			fallthrough
		default:
			log.Info("workflow: stage finished",
				zap.String("stage", name),
				zap.String("status", string(stageResult.Status)),
				zap.Int64("duration_ms", duration),
			)
		}

		if rec != nil {
			_ = o.store.CompleteStage(ctx, rec.ID, stageResult)
		}
		stagesMu.Lock()
		stages = append(stages, *stageResult)
		stagesMu.Unlock()
		return fnErr
	}

	state := NewRunState()

	// Abort transitions to the error state: persist whatever prior stages
	// committed, mark the run failed, and surface the cause.
	abort := func(cause error) (*model.Run, error) {
		result := o.buildResult(state, stages)
		result.Error = cause.Error()
		if updateErr := o.store.UpdateRunResult(ctx, run.ID, result, model.RunStatusFailed); updateErr != nil {
			log.Warn("workflow: failed to persist failed run", zap.Error(updateErr))
		}
		run.Status = model.RunStatusFailed
		run.Result = result
		return run, cause
	}

	// Fetch stages fan out; each writes a disjoint outcome slot and the fold
	// below applies them in fixed order.
	setStatus(model.RunStatusFetching)
	outcomes := make(map[Stage]*fetchOutcome, len(fetchStages))
	g, gCtx := errgroup.WithContext(ctx)
	var outcomesMu sync.Mutex
	for stage, indicator := range fetchStages {
		g.Go(func() error {
			return trackStage(stage, func() (*model.StageResult, error) {
				outcome, fetchErr := o.fetchIndicator(gCtx, indicator)
				if fetchErr != nil {
					return nil, fetchErr
				}
				outcomesMu.Lock()
				outcomes[stage] = outcome
				outcomesMu.Unlock()

				sr := &model.StageResult{
					Metadata: map[string]any{
						"readings":  len(outcome.raw),
						"countries": len(outcome.reconciled),
						"warnings":  len(outcome.warnings),
					},
				}
				if outcome.allFailed || len(outcome.warnings) > 0 {
					sr.Status = model.StageStatusDegraded
				}
				return sr, nil
			})
		})
	}
	if err := g.Wait(); err != nil {
		setStatus(model.RunStatusFailed)
		return abort(err)
	}
	for _, stage := range fetchOrder {
		outcome := outcomes[stage]
		if outcome == nil {
			continue
		}
		state = state.WithIndicator(outcome.indicator, outcome.raw, outcome.reconciled, outcome.warnings, outcome.allFailed)
	}

	// Rank waits on the join above.
	setStatus(model.RunStatusRanking)
	rankErr := trackStage(StageRank, func() (*model.StageResult, error) {
		rankings := make(map[model.IndicatorID]model.Ranking, len(fetchStages))
		for _, stage := range fetchOrder {
			id := fetchStages[stage]
			top, bottom := rank.Rank(state.Reconciled[id], o.cfg.Rank.TopN, o.cfg.Rank.BottomN)
			rankings[id] = model.Ranking{Indicator: id, Top: top, Bottom: bottom}
		}
		state = state.WithRankings(rankings)
		return nil, nil
	})
	if rankErr != nil {
		setStatus(model.RunStatusFailed)
		return abort(rankErr)
	}

	// Cost-of-living alignment covers exactly the GDP top ten.
	setStatus(model.RunStatusAligning)
	alignErr := trackStage(StageAlignCostOfLiving, func() (*model.StageResult, error) {
		gdpTop, _ := rank.Rank(state.Reconciled[model.IndicatorGDPPerCapitaPPP], costOfLivingUniverse, 0)
		if len(gdpTop) == 0 {
			state = state.WithCostOfLiving(nil, nil)
			return &model.StageResult{
				Status:   model.StageStatusSkipped,
				Metadata: map[string]any{"reason": "no GDP ranking available"},
			}, nil
		}

		outcome, fetchErr := o.fetchIndicator(ctx, model.IndicatorCostOfLiving)
		if fetchErr != nil {
			return nil, fetchErr
		}

		aligned, missing, reconciled := o.alignCostOfLiving(gdpTop, outcome)
		state = state.WithIndicator(model.IndicatorCostOfLiving, outcome.raw, reconciled, outcome.warnings, outcome.allFailed)
		state = state.WithCostOfLiving(aligned, missing)

		sr := &model.StageResult{
			Metadata: map[string]any{
				"aligned": len(aligned),
				"missing": len(missing),
			},
		}
		if outcome.allFailed || len(missing) > 0 {
			sr.Status = model.StageStatusDegraded
		}
		return sr, nil
	})
	if alignErr != nil {
		setStatus(model.RunStatusFailed)
		return abort(alignErr)
	}

	// Anomaly scan.
	setStatus(model.RunStatusDetecting)
	detectErr := trackStage(StageDetectAnomalies, func() (*model.StageResult, error) {
		found := o.detector.Find(state.Reconciled)
		state = state.WithAnomalies(found)
		return &model.StageResult{
			Metadata: map[string]any{"anomalies": len(found)},
		}, nil
	})
	if detectErr != nil {
		setStatus(model.RunStatusFailed)
		return abort(detectErr)
	}

	// Done.
	result := o.buildResult(state, stages)
	finalStatus := model.RunStatusComplete
	if result.Partial {
		finalStatus = model.RunStatusIncomplete
	}
	if err := o.store.UpdateRunResult(ctx, run.ID, result, finalStatus); err != nil {
		return nil, eris.Wrap(err, "workflow: persist result")
	}
	run.Status = finalStatus
	run.Result = result

	log.Info("workflow: run finished",
		zap.String("run_id", run.ID),
		zap.String("status", string(finalStatus)),
		zap.Int("anomalies", len(result.Anomalies)),
		zap.Int("warnings", len(result.Warnings)),
	)
	return run, nil
}

// fetchIndicator pulls every registered source for one indicator
// concurrently, then reconciles once all have returned. A failed source is a
// warning, not an error; only a misconfigured registry aborts the run.
func (o *Orchestrator) fetchIndicator(ctx context.Context, indicator model.IndicatorID) (*fetchOutcome, error) {
	sources, err := o.registry.ForIndicator(indicator)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	var readings []model.IndicatorReading
	var warnings []string
	failed := 0

	g, gCtx := errgroup.WithContext(ctx)
	for _, src := range sources {
		g.Go(func() error {
			rs, fetchErr := src.Fetch(gCtx)
			mu.Lock()
			defer mu.Unlock()
			if fetchErr != nil {
				failed++
				warnings = append(warnings, fmt.Sprintf("[%s] source %s unavailable: %v", indicator, src.ID(), fetchErr))
				zap.L().Warn("workflow: source failed",
					zap.String("indicator", string(indicator)),
					zap.String("source", src.ID()),
					zap.Error(fetchErr),
				)
				return nil
			}
			readings = append(readings, rs...)
			return nil
		})
	}
	_ = g.Wait()

	// Reconciliation is deferred until every source has returned or failed.
	reconciled, reconcileWarnings := o.reconciler.Reconcile(indicator, readings)
	for _, w := range reconcileWarnings {
		warnings = append(warnings, w.String())
	}

	return &fetchOutcome{
		indicator:  indicator,
		raw:        readings,
		reconciled: reconciled,
		warnings:   warnings,
		allFailed:  failed == len(sources),
	}, nil
}

// alignCostOfLiving restricts the cost-of-living universe to the GDP top ten.
// A top-ten country with no source data, or whose value failed validation,
// goes into the coverage list instead of silently vanishing; the restricted
// reconciled mapping is returned for the report's discrepancy section.
func (o *Orchestrator) alignCostOfLiving(gdpTop []model.RankedEntry, outcome *fetchOutcome) ([]model.RankedEntry, []model.MissingCoverage, map[string]model.ReconciledIndicator) {
	universe := make(map[string]bool, len(gdpTop))
	for _, entry := range gdpTop {
		universe[entry.Country] = true
	}

	restricted := make(map[string]model.ReconciledIndicator, len(universe))
	for key, entry := range outcome.reconciled {
		if universe[country.Normalize(key)] {
			restricted[key] = entry
		}
	}

	var aligned []model.RankedEntry
	var missing []model.MissingCoverage
	for _, gdpEntry := range gdpTop {
		col, ok := restricted[gdpEntry.Country]
		switch {
		case !ok:
			missing = append(missing, model.MissingCoverage{
				Country:   gdpEntry.Country,
				Indicator: model.IndicatorCostOfLiving,
				Reason:    model.CoverageNoSourceData,
			})
		case col.Flagged:
			missing = append(missing, model.MissingCoverage{
				Country:   gdpEntry.Country,
				Indicator: model.IndicatorCostOfLiving,
				Reason:    model.CoverageBelowThreshold,
			})
		default:
			aligned = append(aligned, model.RankedEntry{
				Country:   gdpEntry.Country,
				Value:     col.Value,
				Rank:      gdpEntry.Rank,
				Direction: model.DirectionTop,
			})
		}
	}
	return aligned, missing, restricted
}

// buildResult snapshots the run state into the persisted result record.
func (o *Orchestrator) buildResult(state RunState, stages []model.StageResult) *model.RunResult {
	return &model.RunResult{
		Reconciled:      state.Reconciled,
		Rankings:        state.Rankings,
		CostOfLivingTop: state.CostOfLivingTop,
		Anomalies:       state.Anomalies,
		Missing:         state.Missing,
		Warnings:        state.Warnings,
		Stages:          stages,
		Partial:         state.Partial,
	}
}
