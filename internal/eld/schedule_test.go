package eld_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmillerd/hauliq/internal/domain"
	"github.com/pmillerd/hauliq/internal/eld"
)

func tripFixture() domain.Trip {
	return domain.Trip{
		Name:    "Chicago to Denver",
		Current: domain.Place{Address: "Joliet, IL", Lat: 41.525, Lng: -88.0817},
		Pickup:  domain.Place{Address: "Chicago, IL", Lat: 41.8781, Lng: -87.6298},
		Dropoff: domain.Place{Address: "Denver, CO", Lat: 39.7392, Lng: -104.9903},
	}
}

func TestTotalDays(t *testing.T) {
	tests := []struct {
		hours float64
		want  int
	}{
		{0, 1},
		{4, 1},
		{23.9, 1},
		{24, 2},
		{40, 2},
		{49, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, eld.TotalDays(tt.hours), "TotalDays(%v)", tt.hours)
	}
}

func TestDefaultSchedule_FirstDay(t *testing.T) {
	trip := tripFixture()
	changes := eld.DefaultSchedule(trip, 0, 3, day)

	require.Len(t, changes, 4)

	assert.Equal(t, domain.DutyOffDuty, changes[0].Status)
	assert.Equal(t, trip.Current.Address, changes[0].Location)
	assert.Equal(t, 0, changes[0].StartTime.Hour())
	assert.InDelta(t, 8.0, changes[0].Duration, 1e-9)
	require.NotNil(t, changes[0].Lat)
	assert.InDelta(t, trip.Current.Lat, *changes[0].Lat, 1e-9)

	assert.Equal(t, domain.DutyOnDuty, changes[1].Status)
	assert.Equal(t, trip.Pickup.Address, changes[1].Location)
	assert.Equal(t, "Pickup operations", changes[1].Remarks)

	assert.Equal(t, domain.DutyDriving, changes[2].Status)
	assert.Equal(t, 9, changes[2].StartTime.Hour())
	require.NotNil(t, changes[2].EndTime)
	assert.Equal(t, 17, changes[2].EndTime.Hour())

	assert.Equal(t, domain.DutyOffDuty, changes[3].Status)
	assert.Equal(t, "Rest Stop", changes[3].Location)
	require.NotNil(t, changes[3].EndTime)
	assert.Equal(t, 59, changes[3].EndTime.Minute())
}

func TestDefaultSchedule_LastDay(t *testing.T) {
	trip := tripFixture()
	changes := eld.DefaultSchedule(trip, 2, 3, day)

	require.Len(t, changes, 4)
	assert.Equal(t, domain.DutyOffDuty, changes[0].Status)
	assert.Equal(t, "Rest Stop", changes[0].Location)
	assert.Equal(t, domain.DutyDriving, changes[1].Status)
	assert.Equal(t, "En Route", changes[1].Location)
	assert.Equal(t, domain.DutyOnDuty, changes[2].Status)
	assert.Equal(t, trip.Dropoff.Address, changes[2].Location)
	assert.Equal(t, "Dropoff operations", changes[2].Remarks)
	assert.Equal(t, trip.Dropoff.Address, changes[3].Location)
	assert.Equal(t, "End of trip", changes[3].Remarks)
}

func TestDefaultSchedule_MiddleDay(t *testing.T) {
	changes := eld.DefaultSchedule(tripFixture(), 1, 3, day)

	require.Len(t, changes, 5)
	assert.Equal(t, domain.DutyOffDuty, changes[0].Status)
	assert.Equal(t, domain.DutyDriving, changes[1].Status)
	assert.Equal(t, domain.DutyOnDuty, changes[2].Status)
	assert.InDelta(t, 0.5, changes[2].Duration, 1e-9)
	assert.Equal(t, "30-minute break", changes[2].Remarks)
	assert.Equal(t, domain.DutyDriving, changes[3].Status)
	assert.Equal(t, 30, changes[3].StartTime.Minute())
	assert.Equal(t, domain.DutyOffDuty, changes[4].Status)
	assert.InDelta(t, 6.5, changes[4].Duration, 1e-9)
}

// TestDefaultSchedule_SingleDayTrip: when the whole trip fits in one day,
// the first-day timeline wins over the last-day branch.
func TestDefaultSchedule_SingleDayTrip(t *testing.T) {
	trip := tripFixture()
	changes := eld.DefaultSchedule(trip, 0, 1, day)

	require.Len(t, changes, 4)
	assert.Equal(t, "Pickup operations", changes[1].Remarks)
}

func TestDefaultSchedule_DatePropagates(t *testing.T) {
	other := time.Date(2025, 12, 3, 0, 0, 0, 0, time.UTC)
	changes := eld.DefaultSchedule(tripFixture(), 1, 4, other)

	for _, c := range changes {
		y, m, d := c.StartTime.Date()
		assert.Equal(t, 2025, y)
		assert.Equal(t, time.December, m)
		assert.Equal(t, 3, d)
	}
}
