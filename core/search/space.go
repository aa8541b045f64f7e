// Package search implements the sequential model-based black-box
// minimizer that drives the pricing optimization loop.
package search

import (
	"fmt"
	"math"
	"math/rand"
)

// VarKind distinguishes continuous from integer search variables.
type VarKind int

const (
	Float VarKind = iota
	Int
)

// VarSpec describes one dimension of the search space. Step > 0 quantizes
// proposals to Min + k·Step; Int variables always use a step of at least 1.
type VarSpec struct {
	Name string
	Kind VarKind
	Min  float64
	Max  float64
	Step float64
}

// Clamp snaps a raw value into the variable's domain, applying the step
// grid and integer rounding.
func (v VarSpec) Clamp(x float64) float64 {
	if x < v.Min {
		x = v.Min
	}
	if x > v.Max {
		x = v.Max
	}
	step := v.Step
	if v.Kind == Int && step < 1 {
		step = 1
	}
	if step > 0 {
		x = v.Min + math.Round((x-v.Min)/step)*step
		if x > v.Max {
			x -= step
		}
		if x < v.Min {
			x = v.Min
		}
	}
	if v.Kind == Int {
		x = math.Round(x)
	}
	return x
}

// Space is an ordered list of variable specs. Candidate values are indexed
// positionally in the same order.
type Space struct {
	Vars []VarSpec
}

// Validate checks every variable has a non-empty, ordered domain.
func (s Space) Validate() error {
	if len(s.Vars) == 0 {
		return fmt.Errorf("search space is empty")
	}
	for _, v := range s.Vars {
		if v.Max < v.Min {
			return fmt.Errorf("variable %s: max %v below min %v", v.Name, v.Max, v.Min)
		}
		if v.Step < 0 {
			return fmt.Errorf("variable %s: negative step", v.Name)
		}
	}
	return nil
}

// Sample draws one uniform candidate from the space.
func (s Space) Sample(rng *rand.Rand) Candidate {
	vals := make([]float64, len(s.Vars))
	for i, v := range s.Vars {
		vals[i] = v.Clamp(v.Min + rng.Float64()*(v.Max-v.Min))
	}
	return Candidate{Values: vals}
}

// Candidate is one concrete point of the search space, passed by value
// into the objective.
type Candidate struct {
	Values []float64
}

// Clone copies the candidate so observations stay immutable once recorded.
func (c Candidate) Clone() Candidate {
	vals := make([]float64, len(c.Values))
	copy(vals, c.Values)
	return Candidate{Values: vals}
}
