package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pmillerd/hauliq/internal/domain"
	"github.com/pmillerd/hauliq/internal/eld"
	"github.com/pmillerd/hauliq/internal/repo"
)

// GenerateInput requests daily log sheets for a trip.
type GenerateInput struct {
	UserID        uuid.UUID
	TripID        uuid.UUID
	StartDate     time.Time
	VehicleNumber string
	TrailerNumber string
}

// GenerateResult reports the trip's full sheet set after generation.
// Created counts how many sheets this call actually inserted; re-running
// generation for the same trip and dates yields Created == 0.
type GenerateResult struct {
	Sheets  []domain.LogSheet
	Created int
}

// SheetDetail is a log sheet with its duty status timeline.
type SheetDetail struct {
	Sheet   domain.LogSheet           `json:"log_sheet"`
	Changes []domain.DutyStatusChange `json:"duty_status_changes"`
}

// LogbookService manages daily log sheets: generation from a planned
// trip, certification, visual annotations, the 24-hour grid, and PDF
// rendering.
type LogbookService struct {
	store Store
}

// NewLogbookService constructs a LogbookService.
func NewLogbookService(store Store) *LogbookService {
	return &LogbookService{store: store}
}

// Generate creates one log sheet per trip day starting at StartDate, each
// pre-filled with the default duty schedule for its position in the trip.
// Generation is idempotent per (trip, user, date): sheets that already
// exist are left alone except for vehicle/trailer metadata refresh, and
// their duty timelines are never re-seeded. All writes happen in one
// transaction.
func (s *LogbookService) Generate(ctx context.Context, in GenerateInput) (GenerateResult, error) {
	trip, err := s.store.Repos().Trips.GetByID(ctx, in.UserID, in.TripID)
	if err != nil {
		return GenerateResult{}, fmt.Errorf("service.LogbookService.Generate: %w", err)
	}

	start := in.StartDate
	if start.IsZero() {
		start = time.Now().UTC()
	}
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

	totalDays := eld.TotalDays(trip.TotalTripTime)

	var out GenerateResult
	err = s.store.InTx(ctx, func(r repo.Repos) error {
		for day := 0; day < totalDays; day++ {
			date := start.AddDate(0, 0, day)

			sheet, inserted, err := r.LogSheets.Upsert(ctx, domain.LogSheet{
				TripID:        trip.ID,
				UserID:        trip.UserID,
				Date:          date,
				Status:        domain.LogGenerated,
				VehicleNumber: in.VehicleNumber,
				TrailerNumber: in.TrailerNumber,
			})
			if err != nil {
				return err
			}
			if inserted {
				out.Created++
				changes := eld.DefaultSchedule(trip, day, totalDays, date)
				if err := r.DutyChanges.CreateBatch(ctx, sheet.ID, changes); err != nil {
					return err
				}
			}
			out.Sheets = append(out.Sheets, sheet)
		}
		return nil
	})
	if err != nil {
		return GenerateResult{}, fmt.Errorf("service.LogbookService.Generate: %w", err)
	}
	return out, nil
}

// Get returns one sheet with its duty status timeline.
func (s *LogbookService) Get(ctx context.Context, sheetID uuid.UUID) (SheetDetail, error) {
	r := s.store.Repos()

	sheet, err := r.LogSheets.GetByID(ctx, sheetID)
	if err != nil {
		return SheetDetail{}, fmt.Errorf("service.LogbookService.Get: %w", err)
	}
	changes, err := r.DutyChanges.ListByLogSheet(ctx, sheetID)
	if err != nil {
		return SheetDetail{}, fmt.Errorf("service.LogbookService.Get: %w", err)
	}
	return SheetDetail{Sheet: sheet, Changes: changes}, nil
}

// List returns log sheets for the owner, or for one trip when tripID is
// non-nil.
func (s *LogbookService) List(ctx context.Context, userID uuid.UUID, tripID *uuid.UUID) ([]domain.LogSheet, error) {
	r := s.store.Repos()

	var (
		sheets []domain.LogSheet
		err    error
	)
	if tripID != nil {
		sheets, err = r.LogSheets.ListByTrip(ctx, *tripID)
	} else {
		sheets, err = r.LogSheets.ListByUser(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("service.LogbookService.List: %w", err)
	}
	return sheets, nil
}

// Certify marks a sheet certified exactly once. A second certification
// attempt fails with domain.ErrConflict; the first writer wins under
// concurrency.
func (s *LogbookService) Certify(ctx context.Context, userID, sheetID uuid.UUID) (domain.LogSheet, error) {
	sheet, err := s.store.Repos().LogSheets.Certify(ctx, sheetID, userID)
	if err == nil {
		return sheet, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.LogSheet{}, fmt.Errorf("service.LogbookService.Certify: %w", err)
	}

	// The conditional update matched no row: either the sheet is missing
	// or it is already certified. Look again to tell the two apart.
	if _, getErr := s.store.Repos().LogSheets.GetByID(ctx, sheetID); getErr == nil {
		return domain.LogSheet{}, fmt.Errorf("service.LogbookService.Certify: already certified: %w", domain.ErrConflict)
	}
	return domain.LogSheet{}, fmt.Errorf("service.LogbookService.Certify: %w", domain.ErrNotFound)
}

// UpdateVisualData replaces the sheet's client-drawn annotation blob.
func (s *LogbookService) UpdateVisualData(ctx context.Context, sheetID uuid.UUID, data json.RawMessage) (domain.LogSheet, error) {
	if len(data) == 0 || !json.Valid(data) {
		return domain.LogSheet{}, fmt.Errorf("service.LogbookService.UpdateVisualData: visual data must be valid JSON: %w", domain.ErrValidation)
	}
	sheet, err := s.store.Repos().LogSheets.UpdateVisualData(ctx, sheetID, data)
	if err != nil {
		return domain.LogSheet{}, fmt.Errorf("service.LogbookService.UpdateVisualData: %w", err)
	}
	return sheet, nil
}

// Grid returns the sheet's 24-hour duty grid with per-status totals and
// remark markers.
func (s *LogbookService) Grid(ctx context.Context, sheetID uuid.UUID) (eld.DayGrid, error) {
	detail, err := s.Get(ctx, sheetID)
	if err != nil {
		return eld.DayGrid{}, err
	}
	return eld.BuildDayGrid(detail.Sheet.Date, detail.Changes), nil
}

// RenderPDF renders the sheet as a printable daily log.
func (s *LogbookService) RenderPDF(ctx context.Context, sheetID uuid.UUID) ([]byte, error) {
	detail, err := s.Get(ctx, sheetID)
	if err != nil {
		return nil, err
	}
	trip, err := s.store.Repos().Trips.GetByID(ctx, detail.Sheet.UserID, detail.Sheet.TripID)
	if err != nil {
		return nil, fmt.Errorf("service.LogbookService.RenderPDF: %w", err)
	}

	grid := eld.BuildDayGrid(detail.Sheet.Date, detail.Changes)
	pdf, err := eld.RenderPDF(detail.Sheet, trip, driverInfoFor(detail.Sheet.UserID), grid)
	if err != nil {
		return nil, fmt.Errorf("service.LogbookService.RenderPDF: %w", err)
	}
	return pdf, nil
}

// driverInfoFor derives printable driver identification from the owner id.
func driverInfoFor(userID uuid.UUID) eld.DriverInfo {
	if userID == domain.AnonymousUserID {
		return eld.DriverInfo{Name: "Unassigned Driver", ID: "N/A"}
	}
	id := userID.String()
	return eld.DriverInfo{Name: "Driver " + id[:8], ID: id}
}
