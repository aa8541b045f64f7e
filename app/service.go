// Package app wires configuration, data, surrogates, evaluator, search
// driver and observability into one optimization run.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ridepricer/config"
	"ridepricer/core/demand"
	"ridepricer/core/logger"
	coremetrics "ridepricer/core/metrics"
	"ridepricer/core/model"
	"ridepricer/core/panel"
	"ridepricer/core/pricing"
	"ridepricer/core/search"
	infralogger "ridepricer/infra/logger"
	"ridepricer/infra/metrics"
	"ridepricer/internal/eventbus"
)

// Service orchestrates one pricing optimization run.
type Service struct {
	cfg         *config.Config
	log         logger.Logger
	sink        coremetrics.MetricsSink
	bus         *eventbus.Bus
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := infralogger.New("service")

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	return &Service{
		cfg:         cfg,
		log:         logg,
		sink:        sink,
		bus:         eventbus.New(),
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}, nil
}

// Run executes the full pipeline: panel, surrogate fit, search, report.
// Cancelling the context stops the search early but still returns the best
// decision observed up to that point.
func (s *Service) Run(ctx context.Context) (model.RunResult, error) {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	rows, err := s.loadPanel()
	if err != nil {
		return model.RunResult{}, err
	}
	s.log.Infof("panel ready: %d rows", len(rows))

	surrogates, err := demand.FitAll(rows)
	if err != nil {
		return model.RunResult{}, fmt.Errorf("fit surrogates: %w", err)
	}

	eval := &pricing.Evaluator{
		Surrogates:  surrogates,
		Costs:       s.cfg.Pricing.Costs(),
		Constraints: s.cfg.Pricing.Constraints(),
		Ctx:         s.cfg.Pricing.RunContext(),
		Log:         s.log,
	}
	spaceCfg := s.cfg.Pricing.SpaceConfig()
	space, err := spaceCfg.Space(eval.Constraints)
	if err != nil {
		return model.RunResult{}, fmt.Errorf("search space: %w", err)
	}

	opt, err := search.NewOptimizer(space, s.cfg.Search.Seed)
	if err != nil {
		return model.RunResult{}, err
	}
	opt.Startup = s.cfg.Search.Startup
	opt.Gamma = s.cfg.Search.Gamma
	opt.Candidates = s.cfg.Search.Candidates
	opt.Log = s.log

	runID := uuid.NewString()
	opt.Observer = func(trial int, cand search.Candidate, score, best float64) {
		feasible := score < pricing.PenaltyScore
		s.bus.Publish(eventbus.TrialEvent{RunID: runID, Trial: trial, Score: score, Best: best, Feasible: feasible})
		rec := coremetrics.TrialResult{
			RunID:    runID,
			Trial:    trial,
			Score:    score,
			Best:     best,
			Feasible: feasible,
			Decision: spaceCfg.Decode(cand),
			Time:     time.Now(),
		}
		if err := s.sink.RecordTrial([]coremetrics.TrialResult{rec}); err != nil {
			s.log.Warnf("record trial: %v", err)
		}
	}

	stopProgress := s.watchProgress()
	defer stopProgress()

	searchCtx := ctx
	if s.cfg.Search.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		searchCtx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.Search.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	start := time.Now()
	s.log.Infof("run %s: searching %d trials", runID, s.cfg.Search.Trials)
	res, err := opt.Minimize(searchCtx, spaceCfg.Objective(eval), s.cfg.Search.Trials)
	if err != nil {
		return model.RunResult{}, fmt.Errorf("search: %w", err)
	}

	best := spaceCfg.Decode(res.Best)
	breakdown, _ := eval.Breakdown(best)
	result := model.RunResult{
		RunID:     runID,
		Best:      best,
		Breakdown: breakdown,
		Score:     res.Score,
		Trials:    res.Trials,
	}
	s.report(result, time.Since(start))
	return result, nil
}

func (s *Service) loadPanel() ([]model.PanelRow, error) {
	if s.cfg.Data.TripsPath == "" {
		s.log.Infof("no trips file configured, fitting on synthetic panel")
		return panel.GeneratePanel(s.cfg.Data.WeatherSeed, s.cfg.Data.SyntheticBuckets), nil
	}
	trips, err := panel.LoadTrips(s.cfg.Data.TripsPath)
	if err != nil {
		return nil, err
	}
	weather := panel.SyntheticWeather(s.cfg.Data.WeatherSeed)
	return panel.Build(trips, weather), nil
}

// watchProgress logs a heartbeat from the trial event stream.
func (s *Service) watchProgress() func() {
	sub := s.bus.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range sub {
			te, ok := e.(eventbus.TrialEvent)
			if !ok {
				continue
			}
			if te.Trial%50 == 0 {
				s.log.Infof("trial %d: score %.2f best %.2f", te.Trial, te.Score, te.Best)
			}
		}
	}()
	return func() {
		s.bus.Unsubscribe(sub)
		<-done
	}
}

func (s *Service) report(r model.RunResult, elapsed time.Duration) {
	fields := map[string]any{
		"run_id":            r.RunID,
		"trials":            r.Trials,
		"expected_profit":   -r.Score,
		"revenue":           r.Breakdown.Revenue,
		"operating_cost":    r.Breakdown.OperatingCost,
		"depreciation_cost": r.Breakdown.DepreciationCost,
	}
	for _, t := range model.VehicleTypes {
		fields["fleet_"+t.String()] = r.Best.Fleet(t)
		for _, seg := range model.Segments {
			fields[fmt.Sprintf("price_%s_%s", t, seg)] = r.Best.Price(t, seg)
		}
	}
	s.log.Debugw("run finished", fields)
	s.log.Infof("run %s: expected profit %.2f after %d trials (%.1fs)",
		r.RunID, -r.Score, r.Trials, elapsed.Seconds())

	sum := coremetrics.RunSummary{
		RunID:          r.RunID,
		Trials:         r.Trials,
		ExpectedProfit: -r.Score,
		Best:           r.Best,
		Breakdown:      r.Breakdown,
		Duration:       elapsed,
		Time:           time.Now(),
	}
	if err := s.sink.RecordRunSummary(sum); err != nil {
		s.log.Warnf("record run summary: %v", err)
	}
	s.bus.Publish(eventbus.RunFinishedEvent{RunID: r.RunID, Trials: r.Trials, ExpectedProfit: -r.Score})
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	return nil
}
