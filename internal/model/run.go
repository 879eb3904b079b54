package model

import "time"

// RunStatus represents the current state of an intelligence run.
type RunStatus string

const (
	RunStatusQueued     RunStatus = "queued"
	RunStatusFetching   RunStatus = "fetching"
	RunStatusRanking    RunStatus = "ranking"
	RunStatusAligning   RunStatus = "aligning"
	RunStatusDetecting  RunStatus = "detecting"
	RunStatusComplete   RunStatus = "complete"
	RunStatusIncomplete RunStatus = "incomplete"
	RunStatusFailed     RunStatus = "failed"
)

// Run represents a single execution of the intelligence workflow.
type Run struct {
	ID        string     `json:"id"`
	Status    RunStatus  `json:"status"`
	Result    *RunResult `json:"result,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// StageStatus represents the state of one workflow stage.
type StageStatus string

const (
	StageStatusRunning  StageStatus = "running"
	StageStatusComplete StageStatus = "complete"
	StageStatusDegraded StageStatus = "degraded"
	StageStatusFailed   StageStatus = "failed"
	StageStatusSkipped  StageStatus = "skipped"
)

// RunStage is the persisted record of a workflow stage.
type RunStage struct {
	ID        string       `json:"id"`
	RunID     string       `json:"run_id"`
	Name      string       `json:"name"`
	Status    StageStatus  `json:"status"`
	Result    *StageResult `json:"result,omitempty"`
	StartedAt time.Time    `json:"started_at"`
}

// StageResult holds the outcome of one workflow stage.
type StageResult struct {
	Name     string         `json:"name"`
	Status   StageStatus    `json:"status"`
	Duration int64          `json:"duration_ms"`
	Error    string         `json:"error,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// RunResult is the final output of a run, handed to the report generator.
type RunResult struct {
	Reconciled      map[IndicatorID]map[string]ReconciledIndicator `json:"reconciled"`
	Rankings        map[IndicatorID]Ranking                        `json:"rankings"`
	CostOfLivingTop []RankedEntry                                  `json:"cost_of_living_top,omitempty"`
	Anomalies       []Anomaly                                      `json:"anomalies"`
	Missing         []MissingCoverage                              `json:"missing"`
	Warnings        []string                                       `json:"warnings,omitempty"`
	Stages          []StageResult                                  `json:"stages"`
	Partial         bool                                           `json:"partial"`
	Error           string                                         `json:"error,omitempty"`
}
