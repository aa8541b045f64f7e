package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"ridepricer/core/model"
)

func sampleResult() model.RunResult {
	d := model.NewDecision()
	d.Prices[model.Electric][model.Casual] = 10.5
	d.Prices[model.Electric][model.Member] = 4
	d.Prices[model.Classic][model.Casual] = 5
	d.Prices[model.Classic][model.Member] = 1
	d.Fleets[model.Electric] = 1200
	d.Fleets[model.Classic] = 1800
	return model.RunResult{
		RunID:     "run-1",
		Best:      d,
		Breakdown: model.ProfitBreakdown{Revenue: 1000, OperatingCost: 300, DepreciationCost: 200, Profit: 500},
		Score:     -500,
		Trials:    300,
	}
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleResult()); err != nil {
		t.Fatalf("write: %v", err)
	}
	var decoded model.RunResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.RunID != "run-1" || decoded.Trials != 300 {
		t.Fatalf("unexpected result %+v", decoded)
	}
	if decoded.Best.Fleet(model.Electric) != 1200 {
		t.Fatalf("fleet %v want 1200", decoded.Best.Fleet(model.Electric))
	}
	if decoded.Best.Price(model.Electric, model.Casual) != 10.5 {
		t.Fatalf("price %v want 10.5", decoded.Best.Price(model.Electric, model.Casual))
	}
}

func TestWriteCSV_ContainsAllVariables(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleResult()); err != nil {
		t.Fatalf("write: %v", err)
	}
	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	byName := make(map[string]string, len(records))
	for _, rec := range records[1:] {
		byName[rec[0]] = rec[1]
	}
	for name, want := range map[string]string{
		"run_id":                "run-1",
		"expected_profit":       "500.00",
		"price_electric_casual": "10.50",
		"fleet_classic":         "1800",
	} {
		if byName[name] != want {
			t.Fatalf("%s = %q want %q", name, byName[name], want)
		}
	}
}
