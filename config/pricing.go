package config

import (
	"fmt"

	"ridepricer/core/model"
	"ridepricer/core/pricing"
)

// PriceRangeConfig bounds one price variable.
type PriceRangeConfig struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// PricingConfig carries the financial parameters, constraints and price
// bounds of a run. Maps are keyed by vehicle type, price ranges by
// "<type>_<segment>".
type PricingConfig struct {
	OperatingPerRide map[string]float64          `json:"operating_per_ride"`
	DepreciationUnit map[string]float64          `json:"depreciation_unit"`
	MaxFleet         map[string]int              `json:"max_fleet"`
	SLAMinFleet      int                         `json:"sla_min_fleet"`
	FleetStep        int                         `json:"fleet_step"`
	WeatherFactor    float64                     `json:"weather_factor"`
	Hour             int                         `json:"hour"`
	PriceRanges      map[string]PriceRangeConfig `json:"price_ranges"`
}

// SetDefaults applies the cold-season reference parameters: electric swaps
// are expensive to service, classics cheap; both fleets are capped at 5000
// units with a 3000-unit SLA floor; the run context is a freezing morning
// peak hour.
func (c *PricingConfig) SetDefaults() {
	if c.OperatingPerRide == nil {
		c.OperatingPerRide = map[string]float64{"electric": 6.0, "classic": 0.5}
	}
	if c.DepreciationUnit == nil {
		c.DepreciationUnit = map[string]float64{"electric": 2.0, "classic": 0.5}
	}
	if c.MaxFleet == nil {
		c.MaxFleet = map[string]int{"electric": 5000, "classic": 5000}
	}
	if c.SLAMinFleet == 0 {
		c.SLAMinFleet = 3000
	}
	if c.FleetStep == 0 {
		c.FleetStep = 100
	}
	if c.Hour == 0 {
		c.Hour = 8
	}
	if c.WeatherFactor == 0 {
		c.WeatherFactor = -5
	}
	if c.PriceRanges == nil {
		c.PriceRanges = map[string]PriceRangeConfig{
			"electric_casual": {Min: 4, Max: 15},
			"electric_member": {Min: 1, Max: 6},
			"classic_casual":  {Min: 2, Max: 8},
			"classic_member":  {Min: 0, Max: 2},
		}
	}
}

// Validate checks the pricing section is complete and coherent.
func (c PricingConfig) Validate() error {
	if err := c.Costs().Validate(); err != nil {
		return err
	}
	if err := c.Constraints().Validate(); err != nil {
		return err
	}
	for _, t := range model.VehicleTypes {
		for _, s := range model.Segments {
			key := fmt.Sprintf("%s_%s", t, s)
			r, ok := c.PriceRanges[key]
			if !ok {
				return fmt.Errorf("missing price range %s", key)
			}
			if r.Max < r.Min || r.Min < 0 || r.Step < 0 {
				return fmt.Errorf("invalid price range %s: [%v, %v] step %v", key, r.Min, r.Max, r.Step)
			}
		}
	}
	if c.Hour < 0 || c.Hour > 23 {
		return fmt.Errorf("hour %d out of range", c.Hour)
	}
	return nil
}

// Costs converts the section to evaluator cost parameters.
func (c PricingConfig) Costs() pricing.CostParams {
	return pricing.CostParams{
		OperatingPerRide: byType(c.OperatingPerRide),
		DepreciationUnit: byType(c.DepreciationUnit),
	}
}

// Constraints converts the section to the feasibility constraints.
func (c PricingConfig) Constraints() model.Constraints {
	maxFleet := make(map[model.VehicleType]int, len(model.VehicleTypes))
	for _, t := range model.VehicleTypes {
		maxFleet[t] = c.MaxFleet[string(t)]
	}
	return model.Constraints{MaxFleet: maxFleet, SLAMinFleet: c.SLAMinFleet}
}

// SpaceConfig converts the section to the decision search-space bounds.
func (c PricingConfig) SpaceConfig() pricing.SpaceConfig {
	prices := make(map[model.VehicleType]map[model.Segment]pricing.PriceRange, len(model.VehicleTypes))
	for _, t := range model.VehicleTypes {
		prices[t] = make(map[model.Segment]pricing.PriceRange, len(model.Segments))
		for _, s := range model.Segments {
			r := c.PriceRanges[fmt.Sprintf("%s_%s", t, s)]
			prices[t][s] = pricing.PriceRange{Min: r.Min, Max: r.Max, Step: r.Step}
		}
	}
	return pricing.SpaceConfig{Prices: prices, FleetStep: c.FleetStep}
}

// RunContext converts the section to the evaluation context.
func (c PricingConfig) RunContext() pricing.RunContext {
	return pricing.RunContext{WeatherFactor: c.WeatherFactor, Hour: c.Hour}
}

func byType(m map[string]float64) map[model.VehicleType]float64 {
	out := make(map[model.VehicleType]float64, len(model.VehicleTypes))
	for _, t := range model.VehicleTypes {
		out[t] = m[string(t)]
	}
	return out
}
