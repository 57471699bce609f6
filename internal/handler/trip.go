package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pmillerd/hauliq/internal/domain"
	"github.com/pmillerd/hauliq/internal/hos"
	"github.com/pmillerd/hauliq/internal/middleware"
	"github.com/pmillerd/hauliq/internal/service"
)

// calculateRequest is the body of POST /api/trips/calculate.
type calculateRequest struct {
	CurrentLocation   string  `json:"current_location"`
	PickupLocation    string  `json:"pickup_location"`
	DropoffLocation   string  `json:"dropoff_location"`
	CurrentCycleHours float64 `json:"current_cycle_hours"`
	Name              string  `json:"name,omitempty"`
}

// calculateResponse bundles the persisted trip with the plan breakdown
// and the raw routed legs for map rendering.
type calculateResponse struct {
	Trip     domain.Trip           `json:"trip"`
	Stops    []domain.Stop         `json:"stops"`
	Segments []domain.RouteSegment `json:"route_segments"`
	Plan     hos.Plan              `json:"plan"`
	Route    routeResponse         `json:"route"`
}

type routeResponse struct {
	CurrentToPickup service.Leg `json:"current_to_pickup"`
	PickupToDropoff service.Leg `json:"pickup_to_dropoff"`
}

// CalculateTrip handles POST /api/trips/calculate.
func (s *Server) CalculateTrip(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := decodeBody(r, &req); err != nil {
		requestError(w, err.Error())
		return
	}

	result, err := s.planner.Calculate(r.Context(), service.CalculateInput{
		UserID:            middleware.UserIDFrom(r.Context()),
		CurrentLocation:   req.CurrentLocation,
		PickupLocation:    req.PickupLocation,
		DropoffLocation:   req.DropoffLocation,
		CurrentCycleHours: req.CurrentCycleHours,
		TripName:          req.Name,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, calculateResponse{
		Trip:     result.Trip,
		Stops:    result.Stops,
		Segments: result.Segments,
		Plan:     result.Plan,
		Route: routeResponse{
			CurrentToPickup: result.CurrentToPickup,
			PickupToDropoff: result.PickupToDropoff,
		},
	})
}

// ListTrips handles GET /api/trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context(), middleware.UserIDFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	if trips == nil {
		trips = []domain.Trip{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"trips": trips})
}

// GetTrip handles GET /api/trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		requestError(w, "invalid trip id")
		return
	}

	detail, err := s.trips.Get(r.Context(), middleware.UserIDFrom(r.Context()), tripID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// updateStatusRequest is the body of PATCH /api/trips/{tripID}/status.
type updateStatusRequest struct {
	Status domain.TripStatus `json:"status"`
}

// UpdateTripStatus handles PATCH /api/trips/{tripID}/status.
func (s *Server) UpdateTripStatus(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		requestError(w, "invalid trip id")
		return
	}

	var req updateStatusRequest
	if err := decodeBody(r, &req); err != nil {
		requestError(w, err.Error())
		return
	}

	trip, err := s.trips.UpdateStatus(r.Context(), middleware.UserIDFrom(r.Context()), tripID, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// DeleteTrip handles DELETE /api/trips/{tripID}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		requestError(w, "invalid trip id")
		return
	}

	if err := s.trips.Delete(r.Context(), middleware.UserIDFrom(r.Context()), tripID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeBody decodes a JSON request body into dst, rejecting empty or
// malformed bodies with a client-friendly message.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return errors.New("malformed request body")
	}
	return nil
}

// pathUUID parses the named chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}
