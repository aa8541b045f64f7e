package search

import (
	"context"
	"math"
	"testing"
	"time"
)

func quadraticSpace() Space {
	return Space{Vars: []VarSpec{
		{Name: "x", Kind: Float, Min: -10, Max: 10},
		{Name: "y", Kind: Float, Min: -10, Max: 10},
	}}
}

func quadratic(c Candidate) float64 {
	x, y := c.Values[0], c.Values[1]
	return (x-3)*(x-3) + (y+2)*(y+2)
}

func TestMinimize_FindsQuadraticMinimum(t *testing.T) {
	opt, err := NewOptimizer(quadraticSpace(), 42)
	if err != nil {
		t.Fatalf("new optimizer: %v", err)
	}
	res, err := opt.Minimize(context.Background(), quadratic, 200)
	if err != nil {
		t.Fatalf("minimize: %v", err)
	}
	if res.Trials != 200 {
		t.Fatalf("expected 200 trials got %d", res.Trials)
	}
	if res.Score > 2.0 {
		t.Fatalf("score %v too far from optimum after 200 trials", res.Score)
	}
	if math.Abs(res.Best.Values[0]-3) > 2 || math.Abs(res.Best.Values[1]+2) > 2 {
		t.Fatalf("best %v too far from (3, -2)", res.Best.Values)
	}
}

func TestMinimize_Reproducible(t *testing.T) {
	run := func() Result {
		opt, err := NewOptimizer(quadraticSpace(), 7)
		if err != nil {
			t.Fatalf("new optimizer: %v", err)
		}
		res, err := opt.Minimize(context.Background(), quadratic, 80)
		if err != nil {
			t.Fatalf("minimize: %v", err)
		}
		return res
	}
	a, b := run(), run()
	if a.Score != b.Score {
		t.Fatalf("same seed gave scores %v and %v", a.Score, b.Score)
	}
	for i := range a.Best.Values {
		if a.Best.Values[i] != b.Best.Values[i] {
			t.Fatalf("same seed gave decisions %v and %v", a.Best.Values, b.Best.Values)
		}
	}
}

func TestMinimize_RespectsBoundsAndSteps(t *testing.T) {
	sp := Space{Vars: []VarSpec{
		{Name: "p", Kind: Float, Min: 2, Max: 8, Step: 0.5},
		{Name: "q", Kind: Int, Min: 0, Max: 5000, Step: 100},
	}}
	opt, err := NewOptimizer(sp, 3)
	if err != nil {
		t.Fatalf("new optimizer: %v", err)
	}
	obj := func(c Candidate) float64 {
		p, q := c.Values[0], c.Values[1]
		if p < 2 || p > 8 {
			t.Fatalf("price %v out of bounds", p)
		}
		if r := math.Mod(p-2, 0.5); math.Abs(r) > 1e-9 && math.Abs(r-0.5) > 1e-9 {
			t.Fatalf("price %v off the 0.5 grid", p)
		}
		if q < 0 || q > 5000 || math.Mod(q, 100) != 0 {
			t.Fatalf("fleet %v off the grid", q)
		}
		return p + q/1000
	}
	if _, err := opt.Minimize(context.Background(), obj, 120); err != nil {
		t.Fatalf("minimize: %v", err)
	}
}

func TestMinimize_CancelKeepsBestSoFar(t *testing.T) {
	opt, err := NewOptimizer(quadraticSpace(), 9)
	if err != nil {
		t.Fatalf("new optimizer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	obj := func(c Candidate) float64 {
		calls++
		if calls == 25 {
			cancel()
		}
		return quadratic(c)
	}
	res, err := opt.Minimize(ctx, obj, 10000)
	if err != nil {
		t.Fatalf("minimize: %v", err)
	}
	if res.Trials != 25 {
		t.Fatalf("expected 25 completed trials got %d", res.Trials)
	}
	if math.IsInf(res.Score, 1) || len(res.Best.Values) == 0 {
		t.Fatalf("cancelled run must keep best-so-far, got %+v", res)
	}
}

func TestMinimize_CancelledBeforeStart(t *testing.T) {
	opt, err := NewOptimizer(quadraticSpace(), 1)
	if err != nil {
		t.Fatalf("new optimizer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := opt.Minimize(ctx, quadratic, 10); err == nil {
		t.Fatalf("expected error when no trial completed")
	}
}

func TestMinimize_InvalidBudget(t *testing.T) {
	opt, err := NewOptimizer(quadraticSpace(), 1)
	if err != nil {
		t.Fatalf("new optimizer: %v", err)
	}
	if _, err := opt.Minimize(context.Background(), quadratic, 0); err == nil {
		t.Fatalf("expected error for zero budget")
	}
}

func TestMinimize_ObserverSeesEveryTrial(t *testing.T) {
	opt, err := NewOptimizer(quadraticSpace(), 5)
	if err != nil {
		t.Fatalf("new optimizer: %v", err)
	}
	var seen []int
	best := math.Inf(1)
	opt.Observer = func(trial int, _ Candidate, score, runBest float64) {
		seen = append(seen, trial)
		if score < best {
			best = score
		}
		if runBest != best {
			t.Fatalf("observer best %v disagrees with %v", runBest, best)
		}
	}
	res, err := opt.Minimize(context.Background(), quadratic, 30)
	if err != nil {
		t.Fatalf("minimize: %v", err)
	}
	if len(seen) != 30 || seen[0] != 1 || seen[29] != 30 {
		t.Fatalf("observer saw %v", seen)
	}
	if len(opt.History()) != res.Trials {
		t.Fatalf("history length %d want %d", len(opt.History()), res.Trials)
	}
}

func TestOptimizer_ExploitsAfterStartup(t *testing.T) {
	opt, err := NewOptimizer(quadraticSpace(), 21)
	if err != nil {
		t.Fatalf("new optimizer: %v", err)
	}
	if _, err := opt.Minimize(context.Background(), quadratic, 150); err != nil {
		t.Fatalf("minimize: %v", err)
	}
	hist := opt.History()
	startupMean, lateMean := 0.0, 0.0
	for _, ob := range hist[:opt.Startup] {
		startupMean += ob.Score / float64(opt.Startup)
	}
	late := hist[len(hist)-50:]
	for _, ob := range late {
		lateMean += ob.Score / float64(len(late))
	}
	if lateMean >= startupMean {
		t.Fatalf("late trials (mean %.1f) should concentrate below uniform startup (mean %.1f)", lateMean, startupMean)
	}
}

func TestMinimize_TimeoutReturnsResult(t *testing.T) {
	opt, err := NewOptimizer(quadraticSpace(), 13)
	if err != nil {
		t.Fatalf("new optimizer: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	slow := func(c Candidate) float64 {
		time.Sleep(2 * time.Millisecond)
		return quadratic(c)
	}
	res, err := opt.Minimize(ctx, slow, 1000000)
	if err != nil {
		t.Fatalf("minimize: %v", err)
	}
	if res.Trials == 0 || res.Trials >= 1000000 {
		t.Fatalf("timeout should stop mid-budget, got %d trials", res.Trials)
	}
}
