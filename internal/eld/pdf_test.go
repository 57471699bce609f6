package eld_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmillerd/hauliq/internal/domain"
	"github.com/pmillerd/hauliq/internal/eld"
)

func TestRenderPDF(t *testing.T) {
	trip := tripFixture()
	sheet := domain.LogSheet{
		Date:          day,
		VehicleNumber: "TRK-4821",
		TrailerNumber: "TRL-077",
	}
	grid := eld.BuildDayGrid(day, eld.DefaultSchedule(trip, 0, 2, day))

	out, err := eld.RenderPDF(sheet, trip, eld.DriverInfo{Name: "A. Driver", ID: "driver-1"}, grid)

	require.NoError(t, err)
	require.NotEmpty(t, out)
	// A PDF document always opens with the %PDF- magic header.
	assert.Equal(t, "%PDF-", string(out[:5]))
}
