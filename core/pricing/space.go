package pricing

import (
	"fmt"

	"ridepricer/core/model"
	"ridepricer/core/search"
)

// SpaceConfig declares the bounds of the decision variables: one price
// range per (vehicle type, segment) pair and one fleet grid per type.
type SpaceConfig struct {
	Prices    map[model.VehicleType]map[model.Segment]PriceRange
	FleetStep int
}

// variable order: prices for each (type, segment) pair in the stable
// model ordering, then one fleet variable per type. Decode relies on it.
func (c SpaceConfig) varName(t model.VehicleType, s model.Segment) string {
	return fmt.Sprintf("price_%s_%s", t, s)
}

// Space builds the ordered search-space descriptor for the given
// constraints. Fleet variables are integers stepped on the fleet grid and
// bounded by each type's maximum.
func (c SpaceConfig) Space(cons model.Constraints) (search.Space, error) {
	var sp search.Space
	for _, t := range model.VehicleTypes {
		for _, s := range model.Segments {
			r, ok := c.Prices[t][s]
			if !ok {
				return search.Space{}, fmt.Errorf("no price range for %s/%s", t, s)
			}
			if r.Max < r.Min || r.Min < 0 {
				return search.Space{}, fmt.Errorf("invalid price range for %s/%s: [%v, %v]", t, s, r.Min, r.Max)
			}
			sp.Vars = append(sp.Vars, search.VarSpec{
				Name: c.varName(t, s),
				Kind: search.Float,
				Min:  r.Min,
				Max:  r.Max,
				Step: r.Step,
			})
		}
	}
	step := c.FleetStep
	if step < 1 {
		step = 1
	}
	for _, t := range model.VehicleTypes {
		sp.Vars = append(sp.Vars, search.VarSpec{
			Name: fmt.Sprintf("fleet_%s", t),
			Kind: search.Int,
			Min:  0,
			Max:  float64(cons.MaxFleet[t]),
			Step: float64(step),
		})
	}
	return sp, sp.Validate()
}

// Decode maps a candidate back to a decision using the same variable
// order Space emits.
func (c SpaceConfig) Decode(cand search.Candidate) model.Decision {
	d := model.NewDecision()
	i := 0
	for _, t := range model.VehicleTypes {
		for _, s := range model.Segments {
			d.Prices[t][s] = cand.Values[i]
			i++
		}
	}
	for _, t := range model.VehicleTypes {
		d.Fleets[t] = int(cand.Values[i])
		i++
	}
	return d
}

// Objective adapts the evaluator to the search driver's candidate type.
func (c SpaceConfig) Objective(e *Evaluator) search.Objective {
	return func(cand search.Candidate) float64 {
		return e.Evaluate(c.Decode(cand))
	}
}
