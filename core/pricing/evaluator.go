package pricing

import (
	"math"

	"ridepricer/core/allocate"
	"ridepricer/core/demand"
	"ridepricer/core/logger"
	"ridepricer/core/model"
)

// PenaltyScore is the sentinel returned for infeasible decisions. It is a
// flat constant rather than a shortfall-proportional barrier; the search
// simply learns to avoid the region.
const PenaltyScore = 1e9

// Evaluator scores one decision against the fitted surrogates and the
// run's cost and constraint parameters. It holds no hidden state: the same
// decision always produces the same score.
type Evaluator struct {
	Surrogates  map[model.VehicleType]demand.Surrogate
	Costs       CostParams
	Constraints model.Constraints
	Ctx         RunContext
	Log         logger.Logger
}

// Evaluate returns the score of the decision: the sentinel penalty when it
// is infeasible, otherwise the negated profit (the driver minimizes).
func (e *Evaluator) Evaluate(d model.Decision) float64 {
	if !e.Constraints.Feasible(d) {
		return PenaltyScore
	}
	b, _ := e.breakdown(d)
	return -b.Profit
}

// Breakdown recomputes the financial decomposition and per-pair served
// counts for a decision. Infeasible decisions still get a breakdown so
// callers can report on the boundary; Evaluate is the scoring authority.
func (e *Evaluator) Breakdown(d model.Decision) (model.ProfitBreakdown, map[model.VehicleType]map[model.Segment]float64) {
	return e.breakdown(d)
}

func (e *Evaluator) breakdown(d model.Decision) (model.ProfitBreakdown, map[model.VehicleType]map[model.Segment]float64) {
	var b model.ProfitBreakdown
	served := make(map[model.VehicleType]map[model.Segment]float64, len(model.VehicleTypes))
	for _, t := range model.VehicleTypes {
		demands := make([]float64, len(model.Segments))
		for i, s := range model.Segments {
			demands[i] = e.predict(t, model.FeatureVector{
				Price:         d.Price(t, s),
				WeatherFactor: e.Ctx.WeatherFactor,
				Hour:          e.Ctx.Hour,
				Segment:       s.Indicator(),
			})
		}
		alloc := allocate.Split(demands, float64(d.Fleet(t)))
		served[t] = make(map[model.Segment]float64, len(model.Segments))
		for i, s := range model.Segments {
			served[t][s] = alloc.Served[i]
			b.Revenue += d.Price(t, s) * alloc.Served[i]
		}
		b.OperatingCost += e.Costs.OperatingPerRide[t] * alloc.Total
		b.DepreciationCost += e.Costs.DepreciationUnit[t] * float64(d.Fleet(t))
	}
	b.Profit = b.Revenue - b.OperatingCost - b.DepreciationCost
	return b, served
}

// predict queries the type's surrogate and absorbs degenerate output: a
// negative or non-finite prediction becomes zero demand with a warning,
// never an aborted run.
func (e *Evaluator) predict(t model.VehicleType, f model.FeatureVector) float64 {
	p := e.Surrogates[t].Predict(f)
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		if e.Log != nil {
			e.Log.Warnf("degenerate demand prediction for %s at price %.2f, clamped to zero", t, f.Price)
		}
		return 0
	}
	return p
}
