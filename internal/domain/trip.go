package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus is the lifecycle state of a planned trip.
type TripStatus string

const (
	TripPlanned    TripStatus = "planned"
	TripInProgress TripStatus = "in_progress"
	TripCompleted  TripStatus = "completed"
	TripCancelled  TripStatus = "cancelled"
)

// Valid reports whether s is a known trip status.
func (s TripStatus) Valid() bool {
	switch s {
	case TripPlanned, TripInProgress, TripCompleted, TripCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status change s -> to is allowed.
// Trips move planned -> in_progress -> completed|cancelled; a planned trip
// may also be cancelled directly. Completed and cancelled are terminal.
func (s TripStatus) CanTransitionTo(to TripStatus) bool {
	switch s {
	case TripPlanned:
		return to == TripInProgress || to == TripCancelled
	case TripInProgress:
		return to == TripCompleted || to == TripCancelled
	}
	return false
}

// Trip is the top-level aggregate: a planned haul from the driver's current
// position through a pickup to a dropoff, with the HOS aggregates computed
// at planning time. A trip is immutable once created except for Status.
type Trip struct {
	ID     uuid.UUID  `json:"id"`
	UserID uuid.UUID  `json:"user_id"`
	Name   string     `json:"name"`
	Status TripStatus `json:"status"`

	Current Place `json:"current_location"`
	Pickup  Place `json:"pickup_location"`
	Dropoff Place `json:"dropoff_location"`

	// CurrentCycleHours is the driver's input: hours already used in the
	// rolling 8-day/70-hour cycle before this trip (0–70).
	CurrentCycleHours float64 `json:"current_cycle_hours"`

	// Planner-computed aggregates, all in miles / hours.
	TotalDistance        float64 `json:"total_distance"`
	EstimatedDrivingTime float64 `json:"estimated_driving_time"`
	TotalTripTime        float64 `json:"total_trip_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
