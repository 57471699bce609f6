package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/pmillerd/hauliq/internal/domain"
	"github.com/pmillerd/hauliq/internal/mapbox"
	"github.com/pmillerd/hauliq/internal/repo"
	"github.com/pmillerd/hauliq/internal/service"
)

// Hand-written test doubles, one per repo interface. Each method is a
// function field; set only the ones your test needs.

type mockTripRepo struct {
	create       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID      func(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error)
	listByUser   func(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	updateStatus func(ctx context.Context, userID, tripID uuid.UUID, status domain.TripStatus) (domain.Trip, error)
	delete       func(ctx context.Context, userID, tripID uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, userID, tripID)
}
func (m *mockTripRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockTripRepo) UpdateStatus(ctx context.Context, userID, tripID uuid.UUID, status domain.TripStatus) (domain.Trip, error) {
	return m.updateStatus(ctx, userID, tripID, status)
}
func (m *mockTripRepo) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	return m.delete(ctx, userID, tripID)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockStopRepo struct {
	create       func(ctx context.Context, stop domain.Stop) (domain.Stop, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error)
}

func (m *mockStopRepo) Create(ctx context.Context, stop domain.Stop) (domain.Stop, error) {
	return m.create(ctx, stop)
}
func (m *mockStopRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Stop, error) {
	return m.listByTripID(ctx, tripID)
}

var _ repo.StopRepo = (*mockStopRepo)(nil)

type mockSegmentRepo struct {
	create       func(ctx context.Context, seg domain.RouteSegment) (domain.RouteSegment, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.RouteSegment, error)
}

func (m *mockSegmentRepo) Create(ctx context.Context, seg domain.RouteSegment) (domain.RouteSegment, error) {
	return m.create(ctx, seg)
}
func (m *mockSegmentRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.RouteSegment, error) {
	return m.listByTripID(ctx, tripID)
}

var _ repo.RouteSegmentRepo = (*mockSegmentRepo)(nil)

type mockLogSheetRepo struct {
	upsert           func(ctx context.Context, sheet domain.LogSheet) (domain.LogSheet, bool, error)
	getByID          func(ctx context.Context, id uuid.UUID) (domain.LogSheet, error)
	listByTrip       func(ctx context.Context, tripID uuid.UUID) ([]domain.LogSheet, error)
	listByUser       func(ctx context.Context, userID uuid.UUID) ([]domain.LogSheet, error)
	certify          func(ctx context.Context, id, certifiedBy uuid.UUID) (domain.LogSheet, error)
	updateVisualData func(ctx context.Context, id uuid.UUID, data []byte) (domain.LogSheet, error)
}

func (m *mockLogSheetRepo) Upsert(ctx context.Context, sheet domain.LogSheet) (domain.LogSheet, bool, error) {
	return m.upsert(ctx, sheet)
}
func (m *mockLogSheetRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.LogSheet, error) {
	return m.getByID(ctx, id)
}
func (m *mockLogSheetRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.LogSheet, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockLogSheetRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.LogSheet, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockLogSheetRepo) Certify(ctx context.Context, id, certifiedBy uuid.UUID) (domain.LogSheet, error) {
	return m.certify(ctx, id, certifiedBy)
}
func (m *mockLogSheetRepo) UpdateVisualData(ctx context.Context, id uuid.UUID, data []byte) (domain.LogSheet, error) {
	return m.updateVisualData(ctx, id, data)
}

var _ repo.LogSheetRepo = (*mockLogSheetRepo)(nil)

type mockDutyRepo struct {
	createBatch    func(ctx context.Context, sheetID uuid.UUID, changes []domain.DutyStatusChange) error
	listByLogSheet func(ctx context.Context, sheetID uuid.UUID) ([]domain.DutyStatusChange, error)
}

func (m *mockDutyRepo) CreateBatch(ctx context.Context, sheetID uuid.UUID, changes []domain.DutyStatusChange) error {
	return m.createBatch(ctx, sheetID, changes)
}
func (m *mockDutyRepo) ListByLogSheet(ctx context.Context, sheetID uuid.UUID) ([]domain.DutyStatusChange, error) {
	return m.listByLogSheet(ctx, sheetID)
}

var _ repo.DutyStatusRepo = (*mockDutyRepo)(nil)

// mockStore hands the same repo set to both transactional and plain
// callers; InTx just invokes fn, so tests see every write.
type mockStore struct {
	repos repo.Repos
}

func (m *mockStore) Repos() repo.Repos { return m.repos }
func (m *mockStore) InTx(_ context.Context, fn func(repo.Repos) error) error {
	return fn(m.repos)
}

var _ service.Store = (*mockStore)(nil)

type mockProvider struct {
	geocode        func(ctx context.Context, address string) (mapbox.GeocodeResult, error)
	reverseGeocode func(ctx context.Context, lat, lng float64) (mapbox.GeocodeResult, error)
	search         func(ctx context.Context, q string, limit int) ([]mapbox.GeocodeResult, error)
	route          func(ctx context.Context, origin, dest domain.LatLng) (mapbox.RouteResult, error)
}

func (m *mockProvider) Geocode(ctx context.Context, address string) (mapbox.GeocodeResult, error) {
	return m.geocode(ctx, address)
}
func (m *mockProvider) ReverseGeocode(ctx context.Context, lat, lng float64) (mapbox.GeocodeResult, error) {
	return m.reverseGeocode(ctx, lat, lng)
}
func (m *mockProvider) Search(ctx context.Context, q string, limit int) ([]mapbox.GeocodeResult, error) {
	return m.search(ctx, q, limit)
}
func (m *mockProvider) Route(ctx context.Context, origin, dest domain.LatLng) (mapbox.RouteResult, error) {
	return m.route(ctx, origin, dest)
}

var (
	_ service.RouteProvider = (*mockProvider)(nil)
	_ service.Geocoder      = (*mockProvider)(nil)
)
