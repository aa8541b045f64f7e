package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"ridepricer/core/logger"
	coremetrics "ridepricer/core/metrics"
	"ridepricer/core/model"
	infralogger "ridepricer/infra/logger"
)

// InfluxSink writes search progress to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg coremetrics.Config) *InfluxSink {
	client := influxdb2.NewClientWithOptions(cfg.InfluxURL, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      infralogger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordTrial writes each trial as a point tagged by run and feasibility.
func (s *InfluxSink) RecordTrial(results []coremetrics.TrialResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, r := range results {
		p := write.NewPointWithMeasurement("pricing_trial").
			AddTag("run_id", r.RunID).
			AddTag("feasible", strconv.FormatBool(r.Feasible)).
			AddField("trial", r.Trial).
			AddField("score", round3(r.Score)).
			AddField("best", round3(r.Best)).
			SetTime(r.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordRunSummary writes the decision and financials of a finished run.
func (s *InfluxSink) RecordRunSummary(sum coremetrics.RunSummary) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("pricing_run").
		AddTag("run_id", sum.RunID).
		AddField("trials", sum.Trials).
		AddField("expected_profit", round3(sum.ExpectedProfit)).
		AddField("revenue", round3(sum.Breakdown.Revenue)).
		AddField("operating_cost", round3(sum.Breakdown.OperatingCost)).
		AddField("depreciation_cost", round3(sum.Breakdown.DepreciationCost)).
		AddField("duration_ms", sum.Duration.Milliseconds()).
		SetTime(sum.Time)
	for _, t := range model.VehicleTypes {
		p.AddField("fleet_"+t.String(), sum.Best.Fleet(t))
		for _, seg := range model.Segments {
			p.AddField("price_"+t.String()+"_"+seg.String(), round3(sum.Best.Price(t, seg)))
		}
	}
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
