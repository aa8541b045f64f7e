// Package allocate splits a vehicle type's scarce fleet capacity across
// competing customer segments.
package allocate

// epsilon guards the demand total against division by zero when every
// segment predicts zero demand.
const epsilon = 1e-5

// Allocation is the realized service split for one vehicle type.
type Allocation struct {
	Served []float64 // per segment, same order as the input demands
	Total  float64   // Σ Served, capped by capacity
}

// Split rations capacity across segment demands proportionally to each
// segment's share of total demand. When capacity covers total demand every
// segment is fully served; under scarcity the split preserves demand
// ratios, which keeps the allocation smooth in the decision variables.
func Split(demands []float64, capacity float64) Allocation {
	if capacity < 0 {
		capacity = 0
	}
	total := epsilon
	for _, d := range demands {
		if d > 0 {
			total += d
		}
	}
	served := total
	if capacity < served {
		served = capacity
	}
	out := Allocation{Served: make([]float64, len(demands))}
	for i, d := range demands {
		if d <= 0 {
			continue
		}
		out.Served[i] = served * d / total
		out.Total += out.Served[i]
	}
	return out
}
