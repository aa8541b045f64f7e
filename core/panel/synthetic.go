package panel

import (
	"math/rand"

	"ridepricer/core/model"
)

// Ground-truth coefficients for the synthetic panel. Demand falls with
// price, reacts to weather and varies over the day; members are less price
// sensitive than casual riders.
type syntheticCurve struct {
	base    float64
	price   float64
	weather float64
	hour    float64
	member  float64
}

var syntheticCurves = map[model.VehicleType]syntheticCurve{
	model.Electric: {base: 520, price: -38, weather: 6, hour: 3, member: 90},
	model.Classic:  {base: 340, price: -52, weather: 4, hour: 2, member: 140},
}

// priceRanges for synthetic buckets, roughly spanning the fare schedule.
var syntheticPriceRange = map[model.VehicleType]map[model.Segment][2]float64{
	model.Electric: {model.Casual: {4, 15}, model.Member: {1, 6}},
	model.Classic:  {model.Casual: {2, 8}, model.Member: {0, 2}},
}

// GeneratePanel fabricates a training panel with a known demand structure
// for demo runs without trip data. The output is deterministic for a seed.
func GeneratePanel(seed int64, buckets int) []model.PanelRow {
	rng := rand.New(rand.NewSource(seed))
	rows := make([]model.PanelRow, 0, buckets*len(model.VehicleTypes)*len(model.Segments))
	for i := 0; i < buckets; i++ {
		hour := rng.Intn(24)
		weather := -15 + 20*rng.Float64()
		for _, t := range model.VehicleTypes {
			curve := syntheticCurves[t]
			for _, s := range model.Segments {
				r := syntheticPriceRange[t][s]
				price := r[0] + rng.Float64()*(r[1]-r[0])
				demand := curve.base + curve.price*price + curve.weather*weather +
					curve.hour*float64(hour) + curve.member*s.Indicator() +
					rng.NormFloat64()*20
				if demand < 0 {
					demand = 0
				}
				rows = append(rows, model.PanelRow{
					Date:          "synthetic",
					Hour:          hour,
					Type:          t,
					Segment:       s,
					Price:         price,
					WeatherFactor: weather,
					Demand:        demand,
				})
			}
		}
	}
	return rows
}
