package metrics

import (
	"errors"
	"testing"

	coremetrics "ridepricer/core/metrics"
)

type recordingSink struct {
	trials    int
	summaries int
	err       error
}

func (s *recordingSink) RecordTrial(results []coremetrics.TrialResult) error {
	if s.err != nil {
		return s.err
	}
	s.trials += len(results)
	return nil
}

func (s *recordingSink) RecordRunSummary(coremetrics.RunSummary) error {
	if s.err != nil {
		return s.err
	}
	s.summaries++
	return nil
}

func TestMultiSink_Forwards(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{}
	m := NewMultiSink(a, b)
	if err := m.RecordTrial([]coremetrics.TrialResult{{Trial: 1}, {Trial: 2}}); err != nil {
		t.Fatalf("record trial: %v", err)
	}
	if err := m.RecordRunSummary(coremetrics.RunSummary{}); err != nil {
		t.Fatalf("record summary: %v", err)
	}
	if a.trials != 2 || b.trials != 2 {
		t.Fatalf("trials not forwarded to all sinks: %d, %d", a.trials, b.trials)
	}
	if a.summaries != 1 || b.summaries != 1 {
		t.Fatalf("summaries not forwarded to all sinks: %d, %d", a.summaries, b.summaries)
	}
}

func TestMultiSink_FirstError(t *testing.T) {
	boom := errors.New("boom")
	a := &recordingSink{err: boom}
	b := &recordingSink{}
	m := NewMultiSink(a, b)
	if err := m.RecordTrial([]coremetrics.TrialResult{{Trial: 1}}); !errors.Is(err, boom) {
		t.Fatalf("expected first sink error, got %v", err)
	}
}

func TestNopSink(t *testing.T) {
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if err := sink.RecordTrial(nil); err != nil {
		t.Fatalf("nop trial: %v", err)
	}
	if err := sink.RecordRunSummary(coremetrics.RunSummary{}); err != nil {
		t.Fatalf("nop summary: %v", err)
	}
}
