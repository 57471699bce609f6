package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pmillerd/hauliq/internal/domain"
)

// TripDetail is a trip together with its full stop sequence and route
// segments.
type TripDetail struct {
	Trip     domain.Trip           `json:"trip"`
	Stops    []domain.Stop         `json:"stops"`
	Segments []domain.RouteSegment `json:"route_segments"`
}

// TripService exposes read and lifecycle operations on persisted trips.
// All operations are scoped to the requesting owner.
type TripService struct {
	store Store
}

// NewTripService constructs a TripService.
func NewTripService(store Store) *TripService {
	return &TripService{store: store}
}

// List returns the owner's trips, most recent first.
func (s *TripService) List(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	trips, err := s.store.Repos().Trips.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	return trips, nil
}

// Get returns one trip with its stops and segments.
func (s *TripService) Get(ctx context.Context, userID, tripID uuid.UUID) (TripDetail, error) {
	r := s.store.Repos()

	trip, err := r.Trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return TripDetail{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	stops, err := r.Stops.ListByTripID(ctx, tripID)
	if err != nil {
		return TripDetail{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	segments, err := r.Segments.ListByTripID(ctx, tripID)
	if err != nil {
		return TripDetail{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	return TripDetail{Trip: trip, Stops: stops, Segments: segments}, nil
}

// UpdateStatus advances a trip through its lifecycle. Unknown statuses
// fail with domain.ErrValidation; legal-but-wrong-state transitions fail
// with domain.ErrConflict and leave the trip untouched.
func (s *TripService) UpdateStatus(ctx context.Context, userID, tripID uuid.UUID, status domain.TripStatus) (domain.Trip, error) {
	if !status.Valid() {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateStatus: status %q: %w", status, domain.ErrValidation)
	}

	trip, err := s.store.Repos().Trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateStatus: %w", err)
	}
	if !trip.Status.CanTransitionTo(status) {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateStatus: %s -> %s: %w",
			trip.Status, status, domain.ErrConflict)
	}

	updated, err := s.store.Repos().Trips.UpdateStatus(ctx, userID, tripID, status)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.UpdateStatus: %w", err)
	}
	return updated, nil
}

// Delete removes a trip; stops, segments, and log sheets cascade.
func (s *TripService) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	if err := s.store.Repos().Trips.Delete(ctx, userID, tripID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}
