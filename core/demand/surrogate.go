// Package demand fits and serves the per-vehicle-type demand surrogates
// queried by the pricing evaluator in place of real-world experiments.
package demand

import (
	"fmt"

	"ridepricer/core/model"
)

// Surrogate approximates expected hourly demand for one vehicle type as a
// function of price and context. Implementations are fitted once before a
// search run and are read-only afterwards, so they may be shared freely.
type Surrogate interface {
	// Predict returns the expected demand count for the features. The
	// result is never negative; degenerate model output is clamped to
	// zero rather than propagated.
	Predict(f model.FeatureVector) float64
}

// ErrNoTrainingData signals that a vehicle type has no panel rows to fit
// from. The optimization run cannot proceed without both surrogates.
type ErrNoTrainingData struct {
	Type model.VehicleType
}

func (e ErrNoTrainingData) Error() string {
	return fmt.Sprintf("no training data for vehicle type %s", e.Type)
}

// FitAll fits one ridge surrogate per vehicle type from the panel. Rows are
// routed by their vehicle type; a type with no rows aborts the whole fit.
func FitAll(rows []model.PanelRow) (map[model.VehicleType]Surrogate, error) {
	byType := make(map[model.VehicleType][]model.PanelRow, len(model.VehicleTypes))
	for _, r := range rows {
		byType[r.Type] = append(byType[r.Type], r)
	}
	out := make(map[model.VehicleType]Surrogate, len(model.VehicleTypes))
	for _, t := range model.VehicleTypes {
		s, err := FitRidge(t, byType[t])
		if err != nil {
			return nil, err
		}
		out[t] = s
	}
	return out, nil
}
