// Package eld synthesizes driver daily log sheets: it buckets duty-status
// intervals into the 24-hour log grid, produces the bootstrap duty
// timeline for freshly generated sheets, and renders printable PDFs.
// Grid and schedule functions are pure and safe for concurrent use.
package eld

import (
	"time"

	"github.com/pmillerd/hauliq/internal/domain"
)

// Grid dimensions: one row per duty status, one column per hour.
const (
	HoursInDay = 24
	GridRows   = 4
)

// Row indices into the grid, top to bottom as printed on the log form.
const (
	RowOffDuty = iota
	RowSleeperBerth
	RowDriving
	RowOnDuty
)

// statusRows maps a duty status to its grid row.
var statusRows = map[domain.DutyStatus]int{
	domain.DutyOffDuty:      RowOffDuty,
	domain.DutySleeperBerth: RowSleeperBerth,
	domain.DutyDriving:      RowDriving,
	domain.DutyOnDuty:       RowOnDuty,
}

// Remark is one entry in the log's location/remarks column: where the
// driver was when a duty status began.
type Remark struct {
	Time     string `json:"time"` // "15:04"
	Location string `json:"location"`
	Status   string `json:"status"`
}

// DayGrid is one day's log sheet content: the 4x24 occupancy grid,
// per-status hour totals, and the chronological remarks column.
type DayGrid struct {
	Date          time.Time                 `json:"date"`
	Grid          [GridRows][HoursInDay]int `json:"grid"`
	HoursByStatus map[domain.DutyStatus]int `json:"hours_by_status"`
	TotalHours    int                       `json:"total_hours"`
	Remarks       []Remark                  `json:"location_remarks"`
}

// sameDate reports whether two instants fall on the same calendar date.
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// BuildDayGrid buckets the duty-status changes that start on date into the
// 24-hour grid. A change occupies every full hour from its start hour up
// to (exclusive) its end hour; an end time with a nonzero minute marks the
// partial hour as occupied. Changes without an end time, or ending on a
// later date, run through hour 23.
//
// Changes are assumed ordered by start time, which is how the repo returns
// them; remarks preserve that order.
func BuildDayGrid(date time.Time, changes []domain.DutyStatusChange) DayGrid {
	out := DayGrid{
		Date: date,
		HoursByStatus: map[domain.DutyStatus]int{
			domain.DutyOffDuty:      0,
			domain.DutySleeperBerth: 0,
			domain.DutyDriving:      0,
			domain.DutyOnDuty:       0,
		},
	}

	for _, change := range changes {
		if !sameDate(change.StartTime, date) {
			continue
		}
		row, ok := statusRows[change.Status]
		if !ok {
			continue
		}

		startHour := change.StartTime.Hour()
		endHour := HoursInDay
		if change.EndTime != nil && sameDate(*change.EndTime, date) {
			endHour = change.EndTime.Hour()
			if change.EndTime.Minute() > 0 {
				endHour++
			}
		}

		for h := startHour; h < endHour && h < HoursInDay; h++ {
			out.Grid[row][h] = 1
		}

		out.Remarks = append(out.Remarks, Remark{
			Time:     change.StartTime.Format("15:04"),
			Location: change.Location,
			Status:   change.Status.Label(),
		})
	}

	for status, row := range statusRows {
		count := 0
		for _, cell := range out.Grid[row] {
			if cell != 0 {
				count++
			}
		}
		out.HoursByStatus[status] = count
		out.TotalHours += count
	}

	return out
}
