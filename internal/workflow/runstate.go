package workflow

import "github.com/sells-group/econ-intel/internal/model"

// RunState is the append-only record handed from stage to stage. Stages never
// mutate the state they received; each With helper returns a copy with one
// slot filled, so a stage's inputs are frozen the moment it starts.
type RunState struct {
	Raw             map[model.IndicatorID][]model.IndicatorReading
	Reconciled      map[model.IndicatorID]map[string]model.ReconciledIndicator
	Rankings        map[model.IndicatorID]model.Ranking
	CostOfLivingTop []model.RankedEntry
	Missing         []model.MissingCoverage
	Anomalies       []model.Anomaly
	Warnings        []string
	Partial         bool
}

// NewRunState returns an empty state.
func NewRunState() RunState {
	return RunState{
		Raw:        map[model.IndicatorID][]model.IndicatorReading{},
		Reconciled: map[model.IndicatorID]map[string]model.ReconciledIndicator{},
		Rankings:   map[model.IndicatorID]model.Ranking{},
	}
}

func (s RunState) clone() RunState {
	next := s
	next.Raw = make(map[model.IndicatorID][]model.IndicatorReading, len(s.Raw)+1)
	for k, v := range s.Raw {
		next.Raw[k] = v
	}
	next.Reconciled = make(map[model.IndicatorID]map[string]model.ReconciledIndicator, len(s.Reconciled)+1)
	for k, v := range s.Reconciled {
		next.Reconciled[k] = v
	}
	next.Rankings = make(map[model.IndicatorID]model.Ranking, len(s.Rankings)+1)
	for k, v := range s.Rankings {
		next.Rankings[k] = v
	}
	return next
}

// WithIndicator fills one indicator's raw and reconciled slots.
func (s RunState) WithIndicator(id model.IndicatorID, raw []model.IndicatorReading, reconciled map[string]model.ReconciledIndicator, warnings []string, partial bool) RunState {
	next := s.clone()
	next.Raw[id] = raw
	if reconciled == nil {
		reconciled = map[string]model.ReconciledIndicator{}
	}
	next.Reconciled[id] = reconciled
	next.Warnings = append(next.Warnings[:len(next.Warnings):len(next.Warnings)], warnings...)
	next.Partial = next.Partial || partial
	return next
}

// WithRankings fills the ranked-list slot.
func (s RunState) WithRankings(rankings map[model.IndicatorID]model.Ranking) RunState {
	next := s.clone()
	next.Rankings = rankings
	return next
}

// WithCostOfLiving fills the alignment slots.
func (s RunState) WithCostOfLiving(top []model.RankedEntry, missing []model.MissingCoverage) RunState {
	next := s.clone()
	next.CostOfLivingTop = top
	next.Missing = append(next.Missing[:len(next.Missing):len(next.Missing)], missing...)
	return next
}

// WithAnomalies fills the anomaly slot.
func (s RunState) WithAnomalies(anomalies []model.Anomaly) RunState {
	next := s.clone()
	next.Anomalies = anomalies
	return next
}
