package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pmillerd/hauliq/internal/domain"
	"github.com/pmillerd/hauliq/internal/eld"
	"github.com/pmillerd/hauliq/internal/handler"
	"github.com/pmillerd/hauliq/internal/mapbox"
	"github.com/pmillerd/hauliq/internal/service"
)

// Hand-written servicer doubles, one function field per operation.

type mockPlanner struct {
	calculate func(ctx context.Context, in service.CalculateInput) (service.CalculateResult, error)
}

func (m *mockPlanner) Calculate(ctx context.Context, in service.CalculateInput) (service.CalculateResult, error) {
	return m.calculate(ctx, in)
}

var _ handler.PlannerServicer = (*mockPlanner)(nil)

type mockTrips struct {
	list         func(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	get          func(ctx context.Context, userID, tripID uuid.UUID) (service.TripDetail, error)
	updateStatus func(ctx context.Context, userID, tripID uuid.UUID, status domain.TripStatus) (domain.Trip, error)
	delete       func(ctx context.Context, userID, tripID uuid.UUID) error
}

func (m *mockTrips) List(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	return m.list(ctx, userID)
}
func (m *mockTrips) Get(ctx context.Context, userID, tripID uuid.UUID) (service.TripDetail, error) {
	return m.get(ctx, userID, tripID)
}
func (m *mockTrips) UpdateStatus(ctx context.Context, userID, tripID uuid.UUID, status domain.TripStatus) (domain.Trip, error) {
	return m.updateStatus(ctx, userID, tripID, status)
}
func (m *mockTrips) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	return m.delete(ctx, userID, tripID)
}

var _ handler.TripServicer = (*mockTrips)(nil)

type mockLogs struct {
	generate         func(ctx context.Context, in service.GenerateInput) (service.GenerateResult, error)
	get              func(ctx context.Context, sheetID uuid.UUID) (service.SheetDetail, error)
	list             func(ctx context.Context, userID uuid.UUID, tripID *uuid.UUID) ([]domain.LogSheet, error)
	certify          func(ctx context.Context, userID, sheetID uuid.UUID) (domain.LogSheet, error)
	updateVisualData func(ctx context.Context, sheetID uuid.UUID, data json.RawMessage) (domain.LogSheet, error)
	grid             func(ctx context.Context, sheetID uuid.UUID) (eld.DayGrid, error)
	renderPDF        func(ctx context.Context, sheetID uuid.UUID) ([]byte, error)
}

func (m *mockLogs) Generate(ctx context.Context, in service.GenerateInput) (service.GenerateResult, error) {
	return m.generate(ctx, in)
}
func (m *mockLogs) Get(ctx context.Context, sheetID uuid.UUID) (service.SheetDetail, error) {
	return m.get(ctx, sheetID)
}
func (m *mockLogs) List(ctx context.Context, userID uuid.UUID, tripID *uuid.UUID) ([]domain.LogSheet, error) {
	return m.list(ctx, userID, tripID)
}
func (m *mockLogs) Certify(ctx context.Context, userID, sheetID uuid.UUID) (domain.LogSheet, error) {
	return m.certify(ctx, userID, sheetID)
}
func (m *mockLogs) UpdateVisualData(ctx context.Context, sheetID uuid.UUID, data json.RawMessage) (domain.LogSheet, error) {
	return m.updateVisualData(ctx, sheetID, data)
}
func (m *mockLogs) Grid(ctx context.Context, sheetID uuid.UUID) (eld.DayGrid, error) {
	return m.grid(ctx, sheetID)
}
func (m *mockLogs) RenderPDF(ctx context.Context, sheetID uuid.UUID) ([]byte, error) {
	return m.renderPDF(ctx, sheetID)
}

var _ handler.LogbookServicer = (*mockLogs)(nil)

type mockGeo struct {
	lookup func(ctx context.Context, in service.LookupInput) ([]mapbox.GeocodeResult, error)
}

func (m *mockGeo) Lookup(ctx context.Context, in service.LookupInput) ([]mapbox.GeocodeResult, error) {
	return m.lookup(ctx, in)
}

var _ handler.GeoServicer = (*mockGeo)(nil)

// serve runs one request through the full route table and returns the
// recorded response.
func serve(t *testing.T, s *handler.Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a recorded JSON body into a map for assertions.
func decode(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}
