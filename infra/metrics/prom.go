package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "ridepricer/core/metrics"
)

// PromSink records search progress in Prometheus metrics.
type PromSink struct {
	trials    *prometheus.CounterVec
	scores    prometheus.Histogram
	bestScore prometheus.Gauge
	profit    prometheus.Gauge
}

// NewPromSink registers run metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	trials := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_search_trials_total",
		Help: "Total number of evaluated search trials",
	}, []string{"feasible"})
	scores := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pricing_search_trial_score",
		Help:    "Objective scores of feasible trials (negated profit)",
		Buckets: prometheus.ExponentialBuckets(1, 10, 10),
	})
	bestScore := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pricing_search_best_score",
		Help: "Best objective score observed so far",
	})
	profit := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pricing_run_expected_profit",
		Help: "Expected profit of the last finished run",
	})

	if err := reg.Register(trials); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			trials = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(scores); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			scores = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(bestScore); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			bestScore = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(profit); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			profit = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	return &PromSink{trials: trials, scores: scores, bestScore: bestScore, profit: profit}, nil
}

// RecordTrial updates the counters for each trial result.
func (s *PromSink) RecordTrial(results []coremetrics.TrialResult) error {
	for _, r := range results {
		s.trials.WithLabelValues(strconv.FormatBool(r.Feasible)).Inc()
		if r.Feasible {
			s.scores.Observe(r.Score)
		}
		s.bestScore.Set(r.Best)
	}
	return nil
}

// RecordRunSummary publishes the finished run's expected profit.
func (s *PromSink) RecordRunSummary(sum coremetrics.RunSummary) error {
	s.profit.Set(sum.ExpectedProfit)
	s.bestScore.Set(-sum.ExpectedProfit)
	return nil
}
