package eld

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/pmillerd/hauliq/internal/domain"
)

// DriverInfo is the header block printed on a log sheet PDF.
type DriverInfo struct {
	Name string
	ID   string
}

// rowLabels in printed order, matching the grid row indices.
var rowLabels = [GridRows]string{"Off Duty", "Sleeper", "Driving", "On Duty"}

// RenderPDF renders one log sheet as a printable daily log: header,
// 24-hour duty grid, per-status hour totals, the remarks column, and the
// certification line.
func RenderPDF(sheet domain.LogSheet, trip domain.Trip, driver DriverInfo, day DayGrid) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	// Title.
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Driver's Daily Log - "+sheet.Date.Format("01/02/2006"), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// Driver and vehicle block.
	pdf.SetFont("Helvetica", "", 10)
	writeKV := func(k, v string) {
		if v == "" {
			v = "N/A"
		}
		pdf.CellFormat(30, 6, k, "", 0, "L", false, 0, "")
		pdf.CellFormat(100, 6, v, "", 1, "L", false, 0, "")
	}
	writeKV("Driver:", driver.Name)
	writeKV("Driver ID:", driver.ID)
	writeKV("Vehicle #:", sheet.VehicleNumber)
	writeKV("Trailer #:", sheet.TrailerNumber)
	writeKV("Trip:", trip.Name)
	pdf.Ln(3)

	// Duty grid: a label column plus 24 hour columns.
	const labelW, hourW, rowH = 24.0, 9.5, 7.0

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(labelW, rowH, "Status", "1", 0, "C", true, 0, "")
	for h := 0; h < HoursInDay; h++ {
		pdf.CellFormat(hourW, rowH, fmt.Sprintf("%02d", h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(rowH)

	pdf.SetFont("Helvetica", "", 8)
	for row := 0; row < GridRows; row++ {
		pdf.CellFormat(labelW, rowH, rowLabels[row], "1", 0, "L", false, 0, "")
		for h := 0; h < HoursInDay; h++ {
			mark := ""
			if day.Grid[row][h] != 0 {
				mark = "X"
			}
			pdf.CellFormat(hourW, rowH, mark, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(rowH)
	}
	pdf.Ln(4)

	// Hours summary.
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(60, 6, "Hours Summary", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 6, "", "1", 1, "C", true, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	summaryRow := func(label string, hours int) {
		pdf.CellFormat(60, 6, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", hours), "1", 1, "C", false, 0, "")
	}
	summaryRow("Off Duty", day.HoursByStatus[domain.DutyOffDuty])
	summaryRow("Sleeper Berth", day.HoursByStatus[domain.DutySleeperBerth])
	summaryRow("Driving", day.HoursByStatus[domain.DutyDriving])
	summaryRow("On Duty (Not Driving)", day.HoursByStatus[domain.DutyOnDuty])
	summaryRow("Total", day.TotalHours)
	pdf.Ln(4)

	// Remarks.
	if len(day.Remarks) > 0 {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(20, 6, "Time", "1", 0, "L", true, 0, "")
		pdf.CellFormat(110, 6, "Location", "1", 0, "L", true, 0, "")
		pdf.CellFormat(50, 6, "Status", "1", 1, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, r := range day.Remarks {
			pdf.CellFormat(20, 6, r.Time, "1", 0, "L", false, 0, "")
			pdf.CellFormat(110, 6, r.Location, "1", 0, "L", false, 0, "")
			pdf.CellFormat(50, 6, r.Status, "1", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(8)

	// Certification line.
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "I hereby certify that my entries are true and correct:", "", 1, "L", false, 0, "")
	pdf.Ln(4)
	pdf.CellFormat(0, 6, "Driver's Signature: _________________________    Date: _____________", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("eld.RenderPDF: %w", err)
	}
	return buf.Bytes(), nil
}
