package model

import "fmt"

// Decision is one candidate pricing and fleet deployment plan: a price per
// (vehicle type, segment) pair and an integer fleet size per vehicle type.
type Decision struct {
	Prices map[VehicleType]map[Segment]float64
	Fleets map[VehicleType]int
}

// NewDecision allocates an empty decision with all price buckets present.
func NewDecision() Decision {
	prices := make(map[VehicleType]map[Segment]float64, len(VehicleTypes))
	for _, t := range VehicleTypes {
		prices[t] = make(map[Segment]float64, len(Segments))
	}
	return Decision{Prices: prices, Fleets: make(map[VehicleType]int, len(VehicleTypes))}
}

// Price returns the price for the given pair.
func (d Decision) Price(t VehicleType, s Segment) float64 { return d.Prices[t][s] }

// Fleet returns the deployed fleet size for the type.
func (d Decision) Fleet(t VehicleType) int { return d.Fleets[t] }

// TotalFleet sums deployed units across vehicle types.
func (d Decision) TotalFleet() int {
	total := 0
	for _, q := range d.Fleets {
		total += q
	}
	return total
}

// Clone returns a deep copy. Decisions travel by value through the search
// loop, but the maps underneath must not be shared with the caller.
func (d Decision) Clone() Decision {
	cp := NewDecision()
	for t, bySeg := range d.Prices {
		for s, p := range bySeg {
			cp.Prices[t][s] = p
		}
	}
	for t, q := range d.Fleets {
		cp.Fleets[t] = q
	}
	return cp
}

// Constraints bounds the feasible region of the search.
type Constraints struct {
	MaxFleet    map[VehicleType]int
	SLAMinFleet int
}

// Feasible reports whether the decision satisfies the SLA floor and the
// per-type fleet maxima.
func (c Constraints) Feasible(d Decision) bool {
	for _, t := range VehicleTypes {
		q := d.Fleet(t)
		if q < 0 || q > c.MaxFleet[t] {
			return false
		}
	}
	return d.TotalFleet() >= c.SLAMinFleet
}

// Validate checks the constraint set itself.
func (c Constraints) Validate() error {
	maxTotal := 0
	for _, t := range VehicleTypes {
		m, ok := c.MaxFleet[t]
		if !ok || m < 0 {
			return fmt.Errorf("max fleet for %s must be set and non-negative", t)
		}
		maxTotal += m
	}
	if c.SLAMinFleet < 0 {
		return fmt.Errorf("sla minimum fleet must be non-negative")
	}
	if c.SLAMinFleet > maxTotal {
		return fmt.Errorf("sla minimum fleet %d exceeds total capacity %d", c.SLAMinFleet, maxTotal)
	}
	return nil
}

// ProfitBreakdown is the financial decomposition of one evaluated decision.
// It is derived state, recomputed per evaluation and never persisted.
type ProfitBreakdown struct {
	Revenue          float64
	OperatingCost    float64
	DepreciationCost float64
	Profit           float64
}

// RunResult is the outcome of one optimization run.
type RunResult struct {
	RunID     string
	Best      Decision
	Breakdown ProfitBreakdown
	Score     float64 // objective value of Best (negated profit or penalty)
	Trials    int
}
