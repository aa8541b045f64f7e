// Package metrics defines the observability contracts for optimization
// runs. Sinks observe trials and run summaries; they are never an
// authoritative store of results.
package metrics

import (
	"time"

	"ridepricer/core/model"
)

// TrialResult is one evaluated candidate of a search run.
type TrialResult struct {
	RunID    string
	Trial    int
	Score    float64
	Best     float64 // best score observed so far in the run
	Feasible bool
	Decision model.Decision
	Time     time.Time
}

// RunSummary captures the outcome of a finished run.
type RunSummary struct {
	RunID          string
	Trials         int
	ExpectedProfit float64
	Best           model.Decision
	Breakdown      model.ProfitBreakdown
	Duration       time.Duration
	Time           time.Time
}

// MetricsSink records search progress for observability purposes.
type MetricsSink interface {
	RecordTrial(results []TrialResult) error
	RecordRunSummary(summary RunSummary) error
}

// NopSink discards every record.
type NopSink struct{}

func (NopSink) RecordTrial([]TrialResult) error   { return nil }
func (NopSink) RecordRunSummary(RunSummary) error { return nil }
