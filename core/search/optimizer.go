package search

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"ridepricer/core/logger"
)

// Objective scores one candidate; lower is better. It must be pure with
// respect to the candidate so observations can be replayed.
type Objective func(Candidate) float64

// TrialObserver is invoked after each observed trial with the trial index,
// the evaluated candidate, its score and the best score so far.
type TrialObserver func(trial int, c Candidate, score, best float64)

// Result is the outcome of a finished (or cancelled) run.
type Result struct {
	Best   Candidate
	Score  float64
	Trials int
}

type observation struct {
	cand  Candidate
	score float64
}

// Optimizer performs sequential model-based minimization in the
// tree-structured Parzen estimator family: an initial uniform startup
// phase, then candidates drawn from kernel densities fitted to the
// better-scoring fraction of history and ranked by the good/bad density
// ratio. All randomness flows through one owned, seeded generator.
type Optimizer struct {
	Space      Space
	Startup    int     // uniform trials before the model kicks in
	Gamma      float64 // fraction of history treated as "good"
	Candidates int     // proposals scored per model-based trial
	Observer   TrialObserver
	Log        logger.Logger

	rng  *rand.Rand
	hist []observation
}

// NewOptimizer builds an optimizer with the given space and seed.
func NewOptimizer(space Space, seed int64) (*Optimizer, error) {
	if err := space.Validate(); err != nil {
		return nil, fmt.Errorf("search space: %w", err)
	}
	return &Optimizer{
		Space:      space,
		Startup:    10,
		Gamma:      0.25,
		Candidates: 24,
		rng:        rand.New(rand.NewSource(seed)),
	}, nil
}

// Minimize runs up to trials evaluations and returns the best observation.
// Context cancellation stops the loop early but still yields the best seen
// so far; a run that never completed a trial returns an error.
func (o *Optimizer) Minimize(ctx context.Context, obj Objective, trials int) (Result, error) {
	if trials <= 0 {
		return Result{}, fmt.Errorf("trial budget must be positive, got %d", trials)
	}
	res := Result{Score: math.Inf(1)}
	for i := 0; i < trials; i++ {
		if ctx != nil && ctx.Err() != nil {
			if o.Log != nil {
				o.Log.Warnf("search cancelled after %d trials", res.Trials)
			}
			break
		}
		cand := o.propose()
		score := obj(cand)
		o.hist = append(o.hist, observation{cand: cand.Clone(), score: score})
		if score < res.Score {
			res.Score = score
			res.Best = cand.Clone()
		}
		res.Trials++
		if o.Observer != nil {
			o.Observer(res.Trials, cand, score, res.Score)
		}
	}
	if res.Trials == 0 {
		return Result{}, fmt.Errorf("search cancelled before any trial completed")
	}
	return res, nil
}

func (o *Optimizer) propose() Candidate {
	if len(o.hist) < o.Startup {
		return o.Space.Sample(o.rng)
	}
	good, bad := o.split()
	best := o.sampleFrom(good)
	bestRatio := o.logRatio(best, good, bad)
	for k := 1; k < o.Candidates; k++ {
		c := o.sampleFrom(good)
		if r := o.logRatio(c, good, bad); r > bestRatio {
			best, bestRatio = c, r
		}
	}
	return best
}

// split partitions history into the gamma-quantile good set and the rest.
func (o *Optimizer) split() (good, bad []observation) {
	sorted := make([]observation, len(o.hist))
	copy(sorted, o.hist)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].score < sorted[j].score })
	n := int(math.Ceil(o.Gamma * float64(len(sorted))))
	if n < 1 {
		n = 1
	}
	if n >= len(sorted) {
		n = len(sorted) - 1
	}
	if n < 1 {
		return sorted, nil
	}
	return sorted[:n], sorted[n:]
}

// sampleFrom draws a candidate from the Parzen mixture centred on the good
// observations, one kernel draw per dimension.
func (o *Optimizer) sampleFrom(good []observation) Candidate {
	vals := make([]float64, len(o.Space.Vars))
	for i, v := range o.Space.Vars {
		center := good[o.rng.Intn(len(good))].cand.Values[i]
		vals[i] = v.Clamp(center + o.bandwidth(v, len(good))*o.rng.NormFloat64())
	}
	return Candidate{Values: vals}
}

// bandwidth shrinks kernel width as evidence accumulates.
func (o *Optimizer) bandwidth(v VarSpec, n int) float64 {
	w := (v.Max - v.Min) / math.Sqrt(float64(n)+1)
	if w <= 0 {
		w = 1e-9
	}
	return w
}

// logRatio scores a candidate by log l(x) − log g(x), the usual expected
// improvement proxy for Parzen estimators. Dimensions are treated as
// independent.
func (o *Optimizer) logRatio(c Candidate, good, bad []observation) float64 {
	var total float64
	for i, v := range o.Space.Vars {
		total += math.Log(o.density(c.Values[i], i, v, good) + 1e-12)
		total -= math.Log(o.density(c.Values[i], i, v, bad) + 1e-12)
	}
	return total
}

func (o *Optimizer) density(x float64, dim int, v VarSpec, obs []observation) float64 {
	if len(obs) == 0 {
		// Uniform prior over the domain.
		span := v.Max - v.Min
		if span <= 0 {
			return 1
		}
		return 1 / span
	}
	sigma := o.bandwidth(v, len(obs))
	var sum float64
	for _, ob := range obs {
		k := distuv.Normal{Mu: ob.cand.Values[dim], Sigma: sigma}
		sum += k.Prob(x)
	}
	return sum / float64(len(obs))
}

// Observation is one recorded trial.
type Observation struct {
	Candidate Candidate
	Score     float64
}

// History returns a copy of the observed (candidate, score) pairs in
// evaluation order.
func (o *Optimizer) History() []Observation {
	out := make([]Observation, len(o.hist))
	for i, ob := range o.hist {
		out[i] = Observation{Candidate: ob.cand.Clone(), Score: ob.score}
	}
	return out
}
