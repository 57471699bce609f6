// Package hos implements the FMCSA Hours-of-Service trip-planning
// calculator for property-carrying drivers on the 70-hour/8-day cycle.
// Everything in this package is pure: no I/O, no clocks, no shared state,
// safe for concurrent use.
package hos

import "math"

// Regulatory parameters (49 CFR 395, property-carrying drivers).
const (
	DailyDrivingLimit = 11.0 // max driving hours per duty day
	DailyDutyWindow   = 14.0 // duty window per day
	RequiredRest      = 10.0 // consecutive off-duty hours between duty days
	BreakAfterDriving = 8.0  // driving hours that trigger a 30-minute break
	BreakDuration     = 0.5
	WeeklyLimit       = 70.0 // on-duty hours in any 8 consecutive days
	RestartHours      = 34.0 // consecutive off-duty hours for a cycle restart
)

// Operational parameters used by the planner.
const (
	AverageSpeedMPH  = 55.0 // fallback only, when no routed duration is supplied
	PickupDuration   = 1.0  // hours
	DropoffDuration  = 1.0  // hours
	FuelStopInterval = 1000.0 // miles
	FuelStopDuration = 0.25   // hours
)

// Plan is the result of a feasibility check plus schedule breakdown.
// When Feasible is false only Reason, AvailableHours, and RequiredHours
// are populated; every other field is zero and undefined.
type Plan struct {
	Feasible bool   `json:"feasible"`
	Reason   string `json:"reason,omitempty"`

	// Populated only when infeasible.
	AvailableHours float64 `json:"available_hours,omitempty"`
	RequiredHours  float64 `json:"required_hours,omitempty"`

	DistanceMiles float64 `json:"distance_miles"`
	DrivingTime   float64 `json:"driving_time"`

	BreakCount int     `json:"break_count"`
	BreakTime  float64 `json:"break_time"`

	FuelStops    int     `json:"fuel_stops"`
	FuelStopTime float64 `json:"fuel_stop_time"`

	RestPeriods int     `json:"rest_periods"`
	RestTime    float64 `json:"rest_time"`

	PickupTime  float64 `json:"pickup_time"`
	DropoffTime float64 `json:"dropoff_time"`

	TotalTripTime float64 `json:"total_trip_time"`
	DrivingDays   int     `json:"driving_days"`

	CycleHoursUsed      float64 `json:"cycle_hours_used"`
	CycleHoursRemaining float64 `json:"cycle_hours_remaining"`
}

// DrivingTime estimates driving hours for a distance at the fallback
// average speed. Used only when no routed duration is available.
func DrivingTime(distanceMiles float64) float64 {
	return distanceMiles / AverageSpeedMPH
}

// RequiredBreaks returns the number of 30-minute breaks for the given
// driving hours (one per full 8 hours of driving).
func RequiredBreaks(drivingTime float64) int {
	return int(math.Floor(drivingTime / BreakAfterDriving))
}

// FuelStops returns the number of fuel stops for the given distance
// (one per full 1000 miles).
func FuelStops(distanceMiles float64) int {
	return int(math.Floor(distanceMiles / FuelStopInterval))
}

// PlanTrip checks whether a trip of distanceMiles can be driven with the
// hours remaining in the driver's cycle and, if so, computes the full
// duty/rest/break/fuel schedule.
//
// drivingTimeOverride, when non-nil, is the measured routing duration and
// replaces the average-speed estimate. currentCycleHours is the driver's
// usage in the rolling 8-day window before this trip.
//
// Out-of-range inputs (negative distance, cycle hours outside 0–70) are a
// validation concern of the caller; PlanTrip never panics on well-formed
// numeric input.
func PlanTrip(distanceMiles, currentCycleHours float64, drivingTimeOverride *float64) Plan {
	drivingTime := DrivingTime(distanceMiles)
	if drivingTimeOverride != nil {
		drivingTime = *drivingTimeOverride
	}

	availableCycleHours := WeeklyLimit - currentCycleHours
	if drivingTime > availableCycleHours {
		return Plan{
			Feasible:       false,
			Reason:         "Trip exceeds available cycle hours",
			AvailableHours: availableCycleHours,
			RequiredHours:  drivingTime,
		}
	}

	breakCount := RequiredBreaks(drivingTime)
	breakTime := float64(breakCount) * BreakDuration

	fuelStops := FuelStops(distanceMiles)
	fuelStopTime := float64(fuelStops) * FuelStopDuration

	// The day's drivable hours: the 14h duty window minus fixed pickup and
	// dropoff operations and accumulated break time, capped at the absolute
	// 11h limit. Break time on very long trips can push this to zero or
	// below; floor at one hour so the day count stays defined.
	dailyMaxDriving := math.Min(DailyDrivingLimit,
		DailyDutyWindow-PickupDuration-DropoffDuration-breakTime)
	if dailyMaxDriving < 1 {
		dailyMaxDriving = 1
	}

	drivingDays := int(math.Ceil(drivingTime / dailyMaxDriving))
	if drivingDays < 1 {
		drivingDays = 1
	}

	restPeriods := drivingDays - 1
	restTime := float64(restPeriods) * RequiredRest

	totalTripTime := drivingTime + breakTime + fuelStopTime +
		PickupDuration + DropoffDuration + restTime

	return Plan{
		Feasible:            true,
		DistanceMiles:       distanceMiles,
		DrivingTime:         drivingTime,
		BreakCount:          breakCount,
		BreakTime:           breakTime,
		FuelStops:           fuelStops,
		FuelStopTime:        fuelStopTime,
		RestPeriods:         restPeriods,
		RestTime:            restTime,
		PickupTime:          PickupDuration,
		DropoffTime:         DropoffDuration,
		TotalTripTime:       totalTripTime,
		DrivingDays:         drivingDays,
		CycleHoursUsed:      drivingTime,
		CycleHoursRemaining: availableCycleHours - drivingTime,
	}
}
