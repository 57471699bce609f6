package domain

import (
	"time"

	"github.com/google/uuid"
)

// StopType classifies a stop along a planned route.
type StopType string

const (
	StopPickup  StopType = "pickup"
	StopDropoff StopType = "dropoff"
	StopBreak   StopType = "break" // 30-minute break after 8h driving
	StopRest    StopType = "rest"  // 10-hour rest period between duty days
	StopFuel    StopType = "fuel"
)

// Valid reports whether t is a known stop type.
func (t StopType) Valid() bool {
	switch t {
	case StopPickup, StopDropoff, StopBreak, StopRest, StopFuel:
		return true
	}
	return false
}

// Stop is a single scheduled halt on a trip, ordered by Sequence (1-based,
// contiguous). Duration is fixed by stop type: pickup/dropoff 1h, break
// 0.5h, rest 10h, fuel 0.25h.
type Stop struct {
	ID            uuid.UUID  `json:"id"`
	TripID        uuid.UUID  `json:"trip_id"`
	Type          StopType   `json:"stop_type"`
	Location      string     `json:"location"`
	Lat           float64    `json:"latitude"`
	Lng           float64    `json:"longitude"`
	ArrivalTime   time.Time  `json:"arrival_time"`
	DepartureTime *time.Time `json:"departure_time,omitempty"`
	Duration      float64    `json:"duration"` // hours

	// DistanceFromStart is cumulative miles along the route; monotonically
	// non-decreasing with Sequence.
	DistanceFromStart float64 `json:"distance_from_start"`
	Sequence          int     `json:"sequence"`
}
