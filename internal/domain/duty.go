package domain

import (
	"time"

	"github.com/google/uuid"
)

// DutyStatus is one of the four FMCSA duty statuses recorded on a log grid.
type DutyStatus string

const (
	DutyOffDuty      DutyStatus = "off_duty"
	DutySleeperBerth DutyStatus = "sleeper_berth"
	DutyDriving      DutyStatus = "driving"
	DutyOnDuty       DutyStatus = "on_duty" // on duty, not driving
)

// Valid reports whether s is a known duty status.
func (s DutyStatus) Valid() bool {
	switch s {
	case DutyOffDuty, DutySleeperBerth, DutyDriving, DutyOnDuty:
		return true
	}
	return false
}

// Label returns the human-readable form used on printed log sheets.
func (s DutyStatus) Label() string {
	switch s {
	case DutyOffDuty:
		return "Off Duty"
	case DutySleeperBerth:
		return "Sleeper Berth"
	case DutyDriving:
		return "Driving"
	case DutyOnDuty:
		return "On Duty (Not Driving)"
	}
	return string(s)
}

// DutyStatusChange is one interval on a log sheet's duty timeline,
// ordered by StartTime. EndTime is nil when the interval runs to the end
// of the sheet's day (or is still open).
type DutyStatusChange struct {
	ID         uuid.UUID  `json:"id"`
	LogSheetID uuid.UUID  `json:"log_sheet_id"`
	Status     DutyStatus `json:"status"`
	StartTime  time.Time  `json:"start_time"`
	EndTime    *time.Time `json:"end_time,omitempty"`
	Duration   float64    `json:"duration"` // hours
	Location   string     `json:"location"`
	Lat        *float64   `json:"latitude,omitempty"`
	Lng        *float64   `json:"longitude,omitempty"`
	Remarks    string     `json:"remarks,omitempty"`
}
