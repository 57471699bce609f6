package domain

import "github.com/google/uuid"

// RouteSegment is the routed path between two stops: a polyline plus
// aggregate distance and driving time, ordered by Sequence.
//
// Polyline is the raw coordinate list JSON-encoded as [[lat,lng],...],
// stored verbatim for client-side map rendering, never parsed server-side.
type RouteSegment struct {
	ID            uuid.UUID `json:"id"`
	TripID        uuid.UUID `json:"trip_id"`
	StartStopID   uuid.UUID `json:"start_stop_id"`
	EndStopID     uuid.UUID `json:"end_stop_id"`
	Distance      float64   `json:"distance"`       // miles
	EstimatedTime float64   `json:"estimated_time"` // hours
	Polyline      string    `json:"polyline"`
	Sequence      int       `json:"sequence"`
}
