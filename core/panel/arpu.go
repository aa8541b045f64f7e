// Package panel turns raw trip records into the per-(date, hour, vehicle
// type, segment) training aggregates the demand surrogates are fitted on.
package panel

import "ridepricer/core/model"

// Published fare schedule used to reconstruct the realized revenue of a
// historical trip. Members ride classics free for the first 45 minutes and
// pay a capped per-minute rate on electrics; casual riders pay an unlock
// fee plus a per-minute rate.
const (
	unlockFee         = 1.00
	classicPerMin     = 0.19
	electricPerMin    = 0.44
	memberPerMin      = 0.19
	memberFreeMin     = 45.0
	memberElectricCap = 5.70
	memberCapWindow   = 45.0
	memberCapStartMin = 30.0
)

// ARPU reconstructs the average realized revenue of one trip from the fare
// schedule. It is the historical "price" feature of the panel.
func ARPU(t model.VehicleType, s model.Segment, durationMin float64) float64 {
	if durationMin < 0 {
		durationMin = 0
	}
	if s == model.Casual {
		if t == model.Classic {
			return unlockFee + classicPerMin*durationMin
		}
		return unlockFee + electricPerMin*durationMin
	}
	// Member rates.
	if t == model.Classic {
		if durationMin <= memberFreeMin {
			return 0
		}
		return memberPerMin * (durationMin - memberFreeMin)
	}
	switch {
	case durationMin <= memberCapStartMin:
		return memberPerMin * durationMin
	case durationMin <= memberCapWindow:
		return memberElectricCap
	default:
		return memberElectricCap + memberPerMin*(durationMin-memberCapWindow)
	}
}
