package panel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"ridepricer/core/model"
)

// Column names of the public trip export schema.
const (
	colRideID    = "ride_id"
	colRideable  = "rideable_type"
	colStartedAt = "started_at"
	colEndedAt   = "ended_at"
	colMember    = "member_casual"
)

var timeLayouts = []string{"2006-01-02 15:04:05", "2006-01-02T15:04:05Z07:00"}

// LoadTrips reads a trip export CSV. Rows with unknown vehicle types,
// unknown segments or unparseable timestamps are skipped; the caller
// decides whether the surviving volume is enough to fit from.
func LoadTrips(path string) ([]TripRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trips: %w", err)
	}
	defer f.Close()
	return ReadTrips(f)
}

// ReadTrips parses trip records from CSV data.
func ReadTrips(r io.Reader) ([]TripRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, required := range []string{colRideable, colStartedAt, colEndedAt, colMember} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing column %s", required)
		}
	}

	var trips []TripRecord
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		t, ok := parseTrip(rec, idx)
		if !ok {
			continue
		}
		trips = append(trips, t)
	}
	return trips, nil
}

func parseTrip(rec []string, idx map[string]int) (TripRecord, bool) {
	get := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var typ model.VehicleType
	switch get(colRideable) {
	case "electric_bike":
		typ = model.Electric
	case "classic_bike":
		typ = model.Classic
	default:
		return TripRecord{}, false
	}

	var seg model.Segment
	switch get(colMember) {
	case "member":
		seg = model.Member
	case "casual":
		seg = model.Casual
	default:
		return TripRecord{}, false
	}

	started, ok := parseTime(get(colStartedAt))
	if !ok {
		return TripRecord{}, false
	}
	ended, ok := parseTime(get(colEndedAt))
	if !ok || ended.Before(started) {
		return TripRecord{}, false
	}

	return TripRecord{
		RideID:      get(colRideID),
		StartedAt:   started,
		Type:        typ,
		Segment:     seg,
		DurationMin: ended.Sub(started).Minutes(),
	}, true
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
