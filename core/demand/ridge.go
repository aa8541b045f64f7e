package demand

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"ridepricer/core/model"
)

// basisDim is the width of the expanded feature basis: intercept, price,
// price², weather, hour, hour², segment and a price×segment interaction.
const basisDim = 8

// defaultLambda is the ridge regularization strength. A small positive
// value keeps the normal equations well conditioned even when a bucket's
// features barely vary.
const defaultLambda = 1.0

// RidgeSurrogate is a ridge-regularized polynomial regression over the
// panel features of one vehicle type. The fit is deterministic for a given
// training table.
type RidgeSurrogate struct {
	Type model.VehicleType
	beta *mat.VecDense
}

func basis(f model.FeatureVector) []float64 {
	h := float64(f.Hour)
	return []float64{
		1,
		f.Price,
		f.Price * f.Price,
		f.WeatherFactor,
		h,
		h * h,
		f.Segment,
		f.Price * f.Segment,
	}
}

// FitRidge solves the regularized least-squares problem for the rows of one
// vehicle type. Regularization is expressed by stacking √λ·I below the
// design matrix so a single QR solve handles it.
func FitRidge(t model.VehicleType, rows []model.PanelRow) (*RidgeSurrogate, error) {
	if len(rows) == 0 {
		return nil, ErrNoTrainingData{Type: t}
	}
	n := len(rows)
	x := mat.NewDense(n+basisDim, basisDim, nil)
	y := mat.NewVecDense(n+basisDim, nil)
	for i, r := range rows {
		x.SetRow(i, basis(r.Features()))
		y.SetVec(i, r.Demand)
	}
	sqrtLambda := math.Sqrt(defaultLambda)
	for j := 0; j < basisDim; j++ {
		x.Set(n+j, j, sqrtLambda)
	}

	var qr mat.QR
	qr.Factorize(x)
	beta := mat.NewVecDense(basisDim, nil)
	if err := qr.SolveVecTo(beta, false, y); err != nil {
		return nil, err
	}
	return &RidgeSurrogate{Type: t, beta: beta}, nil
}

// Predict evaluates the fitted regression. Negative or non-finite output is
// clamped to zero; extrapolation above the training range is left as is.
func (s *RidgeSurrogate) Predict(f model.FeatureVector) float64 {
	b := basis(f)
	var d float64
	for j, v := range b {
		d += s.beta.AtVec(j) * v
	}
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return 0
	}
	return d
}
