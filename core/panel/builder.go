package panel

import (
	"hash/fnv"
	"math/rand"
	"sort"
	"time"

	"ridepricer/core/model"
)

// TripRecord is one historical ride as delivered by the trip export.
type TripRecord struct {
	RideID      string
	StartedAt   time.Time
	Type        model.VehicleType
	Segment     model.Segment
	DurationMin float64
}

// WeatherFunc supplies the weather factor for a (date, hour) bucket.
type WeatherFunc func(date string, hour int) float64

// SyntheticWeather returns a deterministic weather provider drawing each
// bucket's factor uniformly from [-15, 5). The value depends only on the
// seed and the bucket key, never on call order.
func SyntheticWeather(seed int64) WeatherFunc {
	return func(date string, hour int) float64 {
		h := fnv.New64a()
		h.Write([]byte(date))
		h.Write([]byte{byte(hour)})
		rng := rand.New(rand.NewSource(seed ^ int64(h.Sum64())))
		return -15 + 20*rng.Float64()
	}
}

type bucketKey struct {
	date    string
	hour    int
	typ     model.VehicleType
	segment model.Segment
}

type bucketAgg struct {
	count int
	arpu  float64
}

// Build aggregates trips into panel rows: ride counts and mean ARPU per
// (date, hour, vehicle type, segment), joined with the weather factor.
// Rows come out in a stable order so downstream fits are reproducible.
func Build(trips []TripRecord, weather WeatherFunc) []model.PanelRow {
	buckets := make(map[bucketKey]*bucketAgg)
	for _, t := range trips {
		key := bucketKey{
			date:    t.StartedAt.Format("2006-01-02"),
			hour:    t.StartedAt.Hour(),
			typ:     t.Type,
			segment: t.Segment,
		}
		agg := buckets[key]
		if agg == nil {
			agg = &bucketAgg{}
			buckets[key] = agg
		}
		agg.count++
		agg.arpu += ARPU(t.Type, t.Segment, t.DurationMin)
	}

	rows := make([]model.PanelRow, 0, len(buckets))
	for key, agg := range buckets {
		rows = append(rows, model.PanelRow{
			Date:          key.date,
			Hour:          key.hour,
			Type:          key.typ,
			Segment:       key.segment,
			Price:         agg.arpu / float64(agg.count),
			WeatherFactor: weather(key.date, key.hour),
			Demand:        float64(agg.count),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Hour != b.Hour {
			return a.Hour < b.Hour
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.Segment < b.Segment
	})
	return rows
}
