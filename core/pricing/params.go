// Package pricing scores pricing and fleet-deployment decisions and binds
// them to the black-box search space.
package pricing

import (
	"fmt"

	"ridepricer/core/model"
)

// CostParams carries the per-vehicle-type financial parameters of one run.
type CostParams struct {
	OperatingPerRide map[model.VehicleType]float64 // variable cost per served ride
	DepreciationUnit map[model.VehicleType]float64 // daily cost per deployed unit
}

// Validate rejects missing or negative cost entries.
func (p CostParams) Validate() error {
	for _, t := range model.VehicleTypes {
		if c, ok := p.OperatingPerRide[t]; !ok || c < 0 {
			return fmt.Errorf("operating cost for %s must be set and non-negative", t)
		}
		if c, ok := p.DepreciationUnit[t]; !ok || c < 0 {
			return fmt.Errorf("depreciation cost for %s must be set and non-negative", t)
		}
	}
	return nil
}

// PriceRange bounds one (vehicle type, segment) price variable.
type PriceRange struct {
	Min  float64
	Max  float64
	Step float64
}

// RunContext fixes the environment the decision is evaluated under.
type RunContext struct {
	WeatherFactor float64
	Hour          int
}
