// Package handler implements the HTTP layer of the trip planner API.
// All handlers are methods on Server; methods are split into
// domain-specific files (trip.go, logsheet.go, etc.) but share the same
// struct so they can access its dependencies.
package handler

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/pmillerd/hauliq/internal/domain"
	"github.com/pmillerd/hauliq/internal/eld"
	"github.com/pmillerd/hauliq/internal/mapbox"
	"github.com/pmillerd/hauliq/internal/service"
)

// PlannerServicer defines the planning operation the trip handler depends
// on. Defining interfaces here, in the consumer package, lets handler
// tests inject mocks without touching the service or database layers.
type PlannerServicer interface {
	Calculate(ctx context.Context, in service.CalculateInput) (service.CalculateResult, error)
}

// TripServicer defines the trip read/lifecycle operations.
type TripServicer interface {
	List(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	Get(ctx context.Context, userID, tripID uuid.UUID) (service.TripDetail, error)
	UpdateStatus(ctx context.Context, userID, tripID uuid.UUID, status domain.TripStatus) (domain.Trip, error)
	Delete(ctx context.Context, userID, tripID uuid.UUID) error
}

// LogbookServicer defines the daily log operations.
type LogbookServicer interface {
	Generate(ctx context.Context, in service.GenerateInput) (service.GenerateResult, error)
	Get(ctx context.Context, sheetID uuid.UUID) (service.SheetDetail, error)
	List(ctx context.Context, userID uuid.UUID, tripID *uuid.UUID) ([]domain.LogSheet, error)
	Certify(ctx context.Context, userID, sheetID uuid.UUID) (domain.LogSheet, error)
	UpdateVisualData(ctx context.Context, sheetID uuid.UUID, data json.RawMessage) (domain.LogSheet, error)
	Grid(ctx context.Context, sheetID uuid.UUID) (eld.DayGrid, error)
	RenderPDF(ctx context.Context, sheetID uuid.UUID) ([]byte, error)
}

// GeoServicer defines the geocoding lookup operation.
type GeoServicer interface {
	Lookup(ctx context.Context, in service.LookupInput) ([]mapbox.GeocodeResult, error)
}

// Server holds the handlers' dependencies.
type Server struct {
	planner PlannerServicer
	trips   TripServicer
	logs    LogbookServicer
	geo     GeoServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(planner PlannerServicer, trips TripServicer, logs LogbookServicer, geo GeoServicer) *Server {
	return &Server{planner: planner, trips: trips, logs: logs, geo: geo}
}
