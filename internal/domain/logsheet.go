package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// LogStatus is the lifecycle state of a daily log sheet.
// Sheets move generated -> certified (one-way). The submitted state exists
// in the data model for downstream ELD export tooling but no transition
// into it is implemented here.
type LogStatus string

const (
	LogGenerated LogStatus = "generated"
	LogCertified LogStatus = "certified"
	LogSubmitted LogStatus = "submitted"
)

// LogSheet is one driver's duty-status record for a single calendar date
// of a trip, uniquely keyed by (trip, user, date).
type LogSheet struct {
	ID     uuid.UUID `json:"id"`
	TripID uuid.UUID `json:"trip_id"`
	UserID uuid.UUID `json:"user_id"`

	// Date is the calendar date the sheet covers; only the year/month/day
	// components are meaningful.
	Date   time.Time `json:"date"`
	Status LogStatus `json:"status"`

	VehicleNumber string `json:"vehicle_number,omitempty"`
	TrailerNumber string `json:"trailer_number,omitempty"`

	// VisualData is an opaque client-drawn annotation blob, stored and
	// returned verbatim.
	VisualData json.RawMessage `json:"visual_log_data,omitempty"`

	CertifiedBy *uuid.UUID `json:"certified_by,omitempty"`
	CertifiedAt *time.Time `json:"certified_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
