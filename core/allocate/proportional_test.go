package allocate

import (
	"math"
	"testing"
)

func TestSplit_FullServiceBelowCapacity(t *testing.T) {
	a := Split([]float64{30, 20}, 100)
	if math.Abs(a.Served[0]-30) > 1e-6 || math.Abs(a.Served[1]-20) > 1e-6 {
		t.Fatalf("expected full service, got %v", a.Served)
	}
	if math.Abs(a.Total-50) > 1e-6 {
		t.Fatalf("expected total 50 got %v", a.Total)
	}
}

func TestSplit_ProportionalUnderScarcity(t *testing.T) {
	a := Split([]float64{100, 50}, 120)
	if a.Total > 120+1e-9 {
		t.Fatalf("total served %v exceeds capacity", a.Total)
	}
	ratio := a.Served[0] / a.Served[1]
	if math.Abs(ratio-2) > 1e-6 {
		t.Fatalf("expected served ratio 2 got %v", ratio)
	}
	if math.Abs(a.Served[0]-80) > 1e-3 || math.Abs(a.Served[1]-40) > 1e-3 {
		t.Fatalf("expected 80/40 split got %v", a.Served)
	}
}

func TestSplit_ReferenceScenario(t *testing.T) {
	// Classic pool: 80 + 40 demand against 50 units.
	a := Split([]float64{80, 40}, 50)
	if math.Abs(a.Total-50) > 1e-3 {
		t.Fatalf("expected total 50 got %v", a.Total)
	}
	if math.Abs(a.Served[0]-100.0/3) > 1e-2 {
		t.Fatalf("expected casual ~33.33 got %v", a.Served[0])
	}
	if math.Abs(a.Served[1]-50.0/3) > 1e-2 {
		t.Fatalf("expected member ~16.67 got %v", a.Served[1])
	}
}

func TestSplit_ZeroDemand(t *testing.T) {
	a := Split([]float64{0, 0}, 100)
	if a.Total != 0 {
		t.Fatalf("expected no service, got total %v", a.Total)
	}
	for i, s := range a.Served {
		if s != 0 {
			t.Fatalf("segment %d served %v with zero demand", i, s)
		}
	}
}

func TestSplit_ZeroCapacity(t *testing.T) {
	a := Split([]float64{10, 20}, 0)
	if a.Total != 0 {
		t.Fatalf("expected total 0 got %v", a.Total)
	}
}

func TestSplit_NegativeInputsClamped(t *testing.T) {
	a := Split([]float64{-5, 40}, 30)
	if a.Served[0] != 0 {
		t.Fatalf("negative demand must serve nothing, got %v", a.Served[0])
	}
	if a.Total > 30+1e-9 {
		t.Fatalf("total %v exceeds capacity", a.Total)
	}

	a = Split([]float64{10, 10}, -4)
	if a.Total != 0 {
		t.Fatalf("negative capacity must serve nothing, got %v", a.Total)
	}
}

func TestSplit_MonotonicInCapacity(t *testing.T) {
	demands := []float64{70, 30}
	prev := 0.0
	for q := 10.0; q <= 90; q += 10 {
		a := Split(demands, q)
		if a.Total+1e-9 < prev {
			t.Fatalf("total served decreased from %v to %v at capacity %v", prev, a.Total, q)
		}
		prev = a.Total
	}
}
