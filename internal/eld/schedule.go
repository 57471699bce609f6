package eld

import (
	"math"
	"time"

	"github.com/pmillerd/hauliq/internal/domain"
)

// TotalDays returns how many calendar-day log sheets a trip of the given
// total duration (hours) spans.
func TotalDays(totalTripTimeHours float64) int {
	days := int(math.Floor(totalTripTimeHours/24)) + 1
	if days < 1 {
		days = 1
	}
	return days
}

// DefaultSchedule builds the bootstrap duty timeline for one day of a trip
// that has no recorded duty changes yet. The timelines are a placeholder
// operating policy, not a law-derived computation: first day covers the
// pickup, the last day covers the dropoff, middle days are a full driving
// day split by the 30-minute break.
//
// When the trip fits in a single day, the first-day timeline applies and
// the last-day branch is skipped.
func DefaultSchedule(trip domain.Trip, dayIndex, totalDays int, date time.Time) []domain.DutyStatusChange {
	switch {
	case dayIndex == 0:
		return firstDay(trip, date)
	case dayIndex == totalDays-1:
		return lastDay(trip, date)
	default:
		return middleDay(date)
	}
}

// at returns the instant on date at hour:min, keeping date's location.
func at(date time.Time, hour, min int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, hour, min, 0, 0, date.Location())
}

// change assembles one duty interval spanning [start, end] on date.
func change(date time.Time, status domain.DutyStatus, startH, startM, endH, endM int, duration float64, location, remarks string) domain.DutyStatusChange {
	end := at(date, endH, endM)
	return domain.DutyStatusChange{
		Status:    status,
		StartTime: at(date, startH, startM),
		EndTime:   &end,
		Duration:  duration,
		Location:  location,
		Remarks:   remarks,
	}
}

// withPoint attaches coordinates to a change.
func withPoint(c domain.DutyStatusChange, p domain.Place) domain.DutyStatusChange {
	lat, lng := p.Lat, p.Lng
	c.Lat, c.Lng = &lat, &lng
	return c
}

func firstDay(trip domain.Trip, date time.Time) []domain.DutyStatusChange {
	return []domain.DutyStatusChange{
		withPoint(change(date, domain.DutyOffDuty, 0, 0, 8, 0, 8, trip.Current.Address, "Start of day"), trip.Current),
		withPoint(change(date, domain.DutyOnDuty, 8, 0, 9, 0, 1, trip.Pickup.Address, "Pickup operations"), trip.Pickup),
		withPoint(change(date, domain.DutyDriving, 9, 0, 17, 0, 8, trip.Pickup.Address, "Driving"), trip.Pickup),
		change(date, domain.DutyOffDuty, 17, 0, 23, 59, 7, "Rest Stop", "End of day rest"),
	}
}

func lastDay(trip domain.Trip, date time.Time) []domain.DutyStatusChange {
	return []domain.DutyStatusChange{
		change(date, domain.DutyOffDuty, 0, 0, 8, 0, 8, "Rest Stop", "Start of day"),
		change(date, domain.DutyDriving, 8, 0, 12, 0, 4, "En Route", "Driving to destination"),
		withPoint(change(date, domain.DutyOnDuty, 12, 0, 13, 0, 1, trip.Dropoff.Address, "Dropoff operations"), trip.Dropoff),
		withPoint(change(date, domain.DutyOffDuty, 13, 0, 23, 59, 11, trip.Dropoff.Address, "End of trip"), trip.Dropoff),
	}
}

func middleDay(date time.Time) []domain.DutyStatusChange {
	return []domain.DutyStatusChange{
		change(date, domain.DutyOffDuty, 0, 0, 6, 0, 6, "Rest Stop", "Start of day"),
		change(date, domain.DutyDriving, 6, 0, 14, 0, 8, "En Route", "Morning driving"),
		change(date, domain.DutyOnDuty, 14, 0, 14, 30, 0.5, "Rest Area", "30-minute break"),
		change(date, domain.DutyDriving, 14, 30, 17, 30, 3, "En Route", "Afternoon driving"),
		change(date, domain.DutyOffDuty, 17, 30, 23, 59, 6.5, "Rest Stop", "End of day rest"),
	}
}
