package model

import "fmt"

// VehicleType identifies a fleet category. Each type owns its own demand
// surrogate, fleet pool and cost parameters.
type VehicleType string

const (
	Electric VehicleType = "electric"
	Classic  VehicleType = "classic"
)

// VehicleTypes lists every known type in a stable order.
var VehicleTypes = []VehicleType{Electric, Classic}

// Validate checks that the vehicle type is one of the known categories.
func (t VehicleType) Validate() error {
	switch t {
	case Electric, Classic:
		return nil
	}
	return fmt.Errorf("unknown vehicle type %q", t)
}

func (t VehicleType) String() string { return string(t) }

// Segment identifies a customer class. Segments of the same vehicle type
// compete for one shared fleet pool but carry independent prices.
type Segment string

const (
	Casual Segment = "casual"
	Member Segment = "member"
)

// Segments lists every known segment in a stable order.
var Segments = []Segment{Casual, Member}

// Indicator returns the numeric encoding used as a surrogate feature.
func (s Segment) Indicator() float64 {
	if s == Member {
		return 1
	}
	return 0
}

func (s Segment) String() string { return string(s) }

// FeatureVector is the input of a demand surrogate. Its layout must match
// the panel schema the surrogate was fitted on.
type FeatureVector struct {
	Price         float64
	WeatherFactor float64
	Hour          int
	Segment       float64 // 1 for member, 0 for casual
}

// PanelRow is one (date, hour, vehicle type, segment) training aggregate.
type PanelRow struct {
	Date          string
	Hour          int
	Type          VehicleType
	Segment       Segment
	Price         float64 // mean realized ARPU in the bucket
	WeatherFactor float64
	Demand        float64 // ride count in the bucket
}

// Features returns the surrogate input encoded from the row.
func (r PanelRow) Features() FeatureVector {
	return FeatureVector{
		Price:         r.Price,
		WeatherFactor: r.WeatherFactor,
		Hour:          r.Hour,
		Segment:       r.Segment.Indicator(),
	}
}
