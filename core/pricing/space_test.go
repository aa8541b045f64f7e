package pricing

import (
	"testing"

	"ridepricer/core/model"
	"ridepricer/core/search"
)

func testSpaceConfig() SpaceConfig {
	return SpaceConfig{
		Prices: map[model.VehicleType]map[model.Segment]PriceRange{
			model.Electric: {model.Casual: {Min: 4, Max: 15}, model.Member: {Min: 1, Max: 6}},
			model.Classic:  {model.Casual: {Min: 2, Max: 8}, model.Member: {Min: 0, Max: 2}},
		},
		FleetStep: 100,
	}
}

func TestSpace_VariableLayout(t *testing.T) {
	sp, err := testSpaceConfig().Space(testConstraints())
	if err != nil {
		t.Fatalf("space: %v", err)
	}
	wantVars := len(model.VehicleTypes)*len(model.Segments) + len(model.VehicleTypes)
	if len(sp.Vars) != wantVars {
		t.Fatalf("expected %d variables got %d", wantVars, len(sp.Vars))
	}
	for i := 0; i < 4; i++ {
		if sp.Vars[i].Kind != search.Float {
			t.Fatalf("variable %d (%s) must be a price float", i, sp.Vars[i].Name)
		}
	}
	for i := 4; i < 6; i++ {
		if sp.Vars[i].Kind != search.Int {
			t.Fatalf("variable %d (%s) must be an integer fleet", i, sp.Vars[i].Name)
		}
		if sp.Vars[i].Step != 100 {
			t.Fatalf("fleet step %v want 100", sp.Vars[i].Step)
		}
	}
}

func TestSpace_MissingRange(t *testing.T) {
	cfg := testSpaceConfig()
	delete(cfg.Prices[model.Classic], model.Member)
	if _, err := cfg.Space(testConstraints()); err == nil {
		t.Fatalf("expected error for missing price range")
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	cfg := testSpaceConfig()
	cand := search.Candidate{Values: []float64{10.5, 4, 5, 1, 1200, 800}}
	d := cfg.Decode(cand)
	if d.Price(model.Electric, model.Casual) != 10.5 {
		t.Fatalf("electric casual price %v", d.Price(model.Electric, model.Casual))
	}
	if d.Price(model.Electric, model.Member) != 4 {
		t.Fatalf("electric member price %v", d.Price(model.Electric, model.Member))
	}
	if d.Price(model.Classic, model.Casual) != 5 {
		t.Fatalf("classic casual price %v", d.Price(model.Classic, model.Casual))
	}
	if d.Price(model.Classic, model.Member) != 1 {
		t.Fatalf("classic member price %v", d.Price(model.Classic, model.Member))
	}
	if d.Fleet(model.Electric) != 1200 || d.Fleet(model.Classic) != 800 {
		t.Fatalf("fleets %v", d.Fleets)
	}
}

func TestObjective_AdaptsEvaluator(t *testing.T) {
	cfg := testSpaceConfig()
	e := referenceEvaluator()
	obj := cfg.Objective(e)
	// Below the SLA floor the adapter must surface the sentinel.
	got := obj(search.Candidate{Values: []float64{10, 4, 5, 1, 40, 40}})
	if got != PenaltyScore {
		t.Fatalf("expected sentinel got %v", got)
	}
	got = obj(search.Candidate{Values: []float64{10, 4, 5, 1, 120, 50}})
	if got >= PenaltyScore {
		t.Fatalf("feasible candidate scored as penalty: %v", got)
	}
}
