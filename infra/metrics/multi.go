package metrics

import coremetrics "ridepricer/core/metrics"

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordTrial forwards the records to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordTrial(results []coremetrics.TrialResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordTrial(results); err != nil {
			return err
		}
	}
	return nil
}

// RecordRunSummary forwards the summary to all sinks.
func (m *MultiSink) RecordRunSummary(sum coremetrics.RunSummary) error {
	for _, s := range m.Sinks {
		if err := s.RecordRunSummary(sum); err != nil {
			return err
		}
	}
	return nil
}
