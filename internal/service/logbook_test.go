package service_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmillerd/hauliq/internal/domain"
	"github.com/pmillerd/hauliq/internal/repo"
	"github.com/pmillerd/hauliq/internal/service"
)

func multiDayTrip(userID uuid.UUID) domain.Trip {
	return domain.Trip{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          "Trip to Denver, Colorado",
		Status:        domain.TripPlanned,
		Current:       domain.Place{Address: "Joliet, Illinois", Lat: 41.5250, Lng: -88.0817},
		Pickup:        domain.Place{Address: "Chicago, Illinois", Lat: 41.8756, Lng: -87.6244},
		Dropoff:       domain.Place{Address: "Denver, Colorado", Lat: 39.7392, Lng: -104.9903},
		TotalTripTime: 30, // floor(30/24)+1 = 2 days
	}
}

func TestLogbookService_Generate_CreatesSheetPerDay(t *testing.T) {
	userID := uuid.New()
	trip := multiDayTrip(userID)
	start := time.Date(2025, 7, 14, 9, 30, 0, 0, time.UTC)

	var (
		upserted []domain.LogSheet
		seeded   = map[uuid.UUID][]domain.DutyStatusChange{}
	)
	store := &mockStore{repos: repo.Repos{
		Trips: &mockTripRepo{
			getByID: func(context.Context, uuid.UUID, uuid.UUID) (domain.Trip, error) {
				return trip, nil
			},
		},
		LogSheets: &mockLogSheetRepo{
			upsert: func(_ context.Context, sheet domain.LogSheet) (domain.LogSheet, bool, error) {
				sheet.ID = uuid.New()
				upserted = append(upserted, sheet)
				return sheet, true, nil
			},
		},
		DutyChanges: &mockDutyRepo{
			createBatch: func(_ context.Context, sheetID uuid.UUID, changes []domain.DutyStatusChange) error {
				seeded[sheetID] = changes
				return nil
			},
		},
	}}
	svc := service.NewLogbookService(store)

	got, err := svc.Generate(context.Background(), service.GenerateInput{
		UserID:        userID,
		TripID:        trip.ID,
		StartDate:     start,
		VehicleNumber: "TRK-42",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, got.Created)
	require.Len(t, got.Sheets, 2)

	// Dates are normalized to midnight UTC and consecutive.
	assert.Equal(t, time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC), upserted[0].Date)
	assert.Equal(t, time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC), upserted[1].Date)
	assert.Equal(t, "TRK-42", upserted[0].VehicleNumber)
	assert.Equal(t, trip.UserID, upserted[0].UserID)

	// Every inserted sheet gets a default duty timeline.
	require.Len(t, seeded, 2)
	for _, changes := range seeded {
		assert.NotEmpty(t, changes)
	}
}

func TestLogbookService_Generate_Idempotent(t *testing.T) {
	userID := uuid.New()
	trip := multiDayTrip(userID)

	store := &mockStore{repos: repo.Repos{
		Trips: &mockTripRepo{
			getByID: func(context.Context, uuid.UUID, uuid.UUID) (domain.Trip, error) {
				return trip, nil
			},
		},
		LogSheets: &mockLogSheetRepo{
			upsert: func(_ context.Context, sheet domain.LogSheet) (domain.LogSheet, bool, error) {
				sheet.ID = uuid.New()
				return sheet, false, nil // already exists
			},
		},
		// DutyChanges left nil: existing sheets must never be re-seeded.
	}}
	svc := service.NewLogbookService(store)

	got, err := svc.Generate(context.Background(), service.GenerateInput{
		UserID:    userID,
		TripID:    trip.ID,
		StartDate: time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, 0, got.Created)
	assert.Len(t, got.Sheets, 2)
}

func TestLogbookService_Generate_TripNotFound(t *testing.T) {
	store := &mockStore{repos: repo.Repos{
		Trips: &mockTripRepo{
			getByID: func(context.Context, uuid.UUID, uuid.UUID) (domain.Trip, error) {
				return domain.Trip{}, domain.ErrNotFound
			},
		},
	}}
	svc := service.NewLogbookService(store)

	_, err := svc.Generate(context.Background(), service.GenerateInput{
		UserID: uuid.New(),
		TripID: uuid.New(),
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogbookService_Certify_FirstWriterWins(t *testing.T) {
	userID := uuid.New()
	sheetID := uuid.New()
	now := time.Now().UTC()

	store := &mockStore{repos: repo.Repos{
		LogSheets: &mockLogSheetRepo{
			certify: func(_ context.Context, id, certifiedBy uuid.UUID) (domain.LogSheet, error) {
				assert.Equal(t, sheetID, id)
				assert.Equal(t, userID, certifiedBy)
				return domain.LogSheet{
					ID:          id,
					Status:      domain.LogCertified,
					CertifiedBy: &certifiedBy,
					CertifiedAt: &now,
				}, nil
			},
		},
	}}
	svc := service.NewLogbookService(store)

	got, err := svc.Certify(context.Background(), userID, sheetID)

	require.NoError(t, err)
	assert.Equal(t, domain.LogCertified, got.Status)
	require.NotNil(t, got.CertifiedBy)
	assert.Equal(t, userID, *got.CertifiedBy)
}

func TestLogbookService_Certify_AlreadyCertified(t *testing.T) {
	sheetID := uuid.New()
	store := &mockStore{repos: repo.Repos{
		LogSheets: &mockLogSheetRepo{
			certify: func(context.Context, uuid.UUID, uuid.UUID) (domain.LogSheet, error) {
				return domain.LogSheet{}, domain.ErrNotFound
			},
			getByID: func(context.Context, uuid.UUID) (domain.LogSheet, error) {
				return domain.LogSheet{ID: sheetID, Status: domain.LogCertified}, nil
			},
		},
	}}
	svc := service.NewLogbookService(store)

	_, err := svc.Certify(context.Background(), uuid.New(), sheetID)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestLogbookService_Certify_NotFound(t *testing.T) {
	store := &mockStore{repos: repo.Repos{
		LogSheets: &mockLogSheetRepo{
			certify: func(context.Context, uuid.UUID, uuid.UUID) (domain.LogSheet, error) {
				return domain.LogSheet{}, domain.ErrNotFound
			},
			getByID: func(context.Context, uuid.UUID) (domain.LogSheet, error) {
				return domain.LogSheet{}, domain.ErrNotFound
			},
		},
	}}
	svc := service.NewLogbookService(store)

	_, err := svc.Certify(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrConflict)
}

func TestLogbookService_UpdateVisualData_RejectsInvalidJSON(t *testing.T) {
	svc := service.NewLogbookService(&mockStore{})

	_, err := svc.UpdateVisualData(context.Background(), uuid.New(), []byte("{not json"))

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLogbookService_Grid(t *testing.T) {
	sheetID := uuid.New()
	date := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)

	store := &mockStore{repos: repo.Repos{
		LogSheets: &mockLogSheetRepo{
			getByID: func(context.Context, uuid.UUID) (domain.LogSheet, error) {
				return domain.LogSheet{ID: sheetID, Date: date}, nil
			},
		},
		DutyChanges: &mockDutyRepo{
			listByLogSheet: func(context.Context, uuid.UUID) ([]domain.DutyStatusChange, error) {
				end := date.Add(17 * time.Hour)
				return []domain.DutyStatusChange{{
					Status:    domain.DutyDriving,
					StartTime: date.Add(9 * time.Hour),
					EndTime:   &end,
					Location:  "Chicago, Illinois",
				}}, nil
			},
		},
	}}
	svc := service.NewLogbookService(store)

	grid, err := svc.Grid(context.Background(), sheetID)

	require.NoError(t, err)
	assert.Equal(t, 8, grid.HoursByStatus[domain.DutyDriving])
	require.Len(t, grid.Remarks, 1)
	assert.Equal(t, "Chicago, Illinois", grid.Remarks[0].Location)
}

func TestLogbookService_RenderPDF(t *testing.T) {
	userID := uuid.New()
	trip := multiDayTrip(userID)
	sheetID := uuid.New()
	date := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)

	store := &mockStore{repos: repo.Repos{
		Trips: &mockTripRepo{
			getByID: func(context.Context, uuid.UUID, uuid.UUID) (domain.Trip, error) {
				return trip, nil
			},
		},
		LogSheets: &mockLogSheetRepo{
			getByID: func(context.Context, uuid.UUID) (domain.LogSheet, error) {
				return domain.LogSheet{ID: sheetID, TripID: trip.ID, UserID: userID, Date: date}, nil
			},
		},
		DutyChanges: &mockDutyRepo{
			listByLogSheet: func(context.Context, uuid.UUID) ([]domain.DutyStatusChange, error) {
				return nil, nil
			},
		},
	}}
	svc := service.NewLogbookService(store)

	pdf, err := svc.RenderPDF(context.Background(), sheetID)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
}

func TestLogbookService_List_ByTripAndByUser(t *testing.T) {
	userID := uuid.New()
	tripID := uuid.New()

	store := &mockStore{repos: repo.Repos{
		LogSheets: &mockLogSheetRepo{
			listByTrip: func(_ context.Context, gotTrip uuid.UUID) ([]domain.LogSheet, error) {
				assert.Equal(t, tripID, gotTrip)
				return []domain.LogSheet{{TripID: gotTrip}}, nil
			},
			listByUser: func(_ context.Context, gotUser uuid.UUID) ([]domain.LogSheet, error) {
				assert.Equal(t, userID, gotUser)
				return []domain.LogSheet{{UserID: gotUser}, {UserID: gotUser}}, nil
			},
		},
	}}
	svc := service.NewLogbookService(store)

	byTrip, err := svc.List(context.Background(), userID, &tripID)
	require.NoError(t, err)
	assert.Len(t, byTrip, 1)

	byUser, err := svc.List(context.Background(), userID, nil)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)
}
