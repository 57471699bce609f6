// Package service contains the business logic for the HOS trip planner.
// Services validate inputs, enforce business rules, and orchestrate repo
// and provider calls. No SQL and no HTTP live here; services depend on
// interfaces, not implementations.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pmillerd/hauliq/internal/domain"
	"github.com/pmillerd/hauliq/internal/geo"
	"github.com/pmillerd/hauliq/internal/hos"
	"github.com/pmillerd/hauliq/internal/mapbox"
	"github.com/pmillerd/hauliq/internal/repo"
)

// Store is the transactional persistence boundary the services depend on.
// *repo.Store satisfies it; tests inject a fake that hands out mock repos.
type Store interface {
	// Repos returns the non-transactional repo set.
	Repos() repo.Repos
	// InTx runs fn with repos bound to one transaction: all writes commit
	// together or not at all.
	InTx(ctx context.Context, fn func(repo.Repos) error) error
}

// RouteProvider is the slice of the geocoding/directions client the
// planner needs.
type RouteProvider interface {
	Geocode(ctx context.Context, address string) (mapbox.GeocodeResult, error)
	Route(ctx context.Context, origin, dest domain.LatLng) (mapbox.RouteResult, error)
}

// CalculateInput is a trip planning request.
type CalculateInput struct {
	UserID            uuid.UUID
	CurrentLocation   string
	PickupLocation    string
	DropoffLocation   string
	CurrentCycleHours float64
	TripName          string
}

// Leg is one routed portion of the trip, returned raw for client-side
// rendering of the full current→pickup→dropoff path.
type Leg struct {
	DistanceMiles float64         `json:"distance_miles"`
	DurationHours float64         `json:"duration_hours"`
	Coordinates   []domain.LatLng `json:"coordinates"`
}

// CalculateResult is a successful planning outcome: the persisted trip
// with its stops and segment, the HOS schedule breakdown, and both raw
// routed legs.
type CalculateResult struct {
	Trip            domain.Trip
	Stops           []domain.Stop
	Segments        []domain.RouteSegment
	Plan            hos.Plan
	CurrentToPickup Leg
	PickupToDropoff Leg
}

// PlannerService computes HOS-compliant trip plans and materializes them
// as trip, stop, and route segment records.
type PlannerService struct {
	store  Store
	routes RouteProvider
}

// NewPlannerService constructs a PlannerService.
func NewPlannerService(store Store, routes RouteProvider) *PlannerService {
	return &PlannerService{store: store, routes: routes}
}

// Calculate plans a trip end to end: geocode the three endpoints, route
// the two legs, run the HOS feasibility check, and, only when feasible,
// persist the trip, its stop sequence, and the pickup→dropoff route
// segment inside one transaction. Any upstream failure aborts before
// anything is written.
//
// Returns domain.FieldErrors (wrapping domain.ErrValidation) for bad
// input or failed geocoding, *domain.InfeasibleTripError when the trip
// does not fit the driver's remaining cycle hours, and domain.ErrUpstream
// wrapped errors for routing failures.
func (s *PlannerService) Calculate(ctx context.Context, in CalculateInput) (CalculateResult, error) {
	if err := validateCalculateInput(in); err != nil {
		return CalculateResult{}, err
	}

	current, pickup, dropoff, err := s.geocodeEndpoints(ctx, in)
	if err != nil {
		return CalculateResult{}, err
	}

	leg1, err := s.routes.Route(ctx, current.Point(), pickup.Point())
	if err != nil {
		return CalculateResult{}, fmt.Errorf("service.PlannerService.Calculate: route current->pickup: %w", err)
	}
	leg2, err := s.routes.Route(ctx, pickup.Point(), dropoff.Point())
	if err != nil {
		return CalculateResult{}, fmt.Errorf("service.PlannerService.Calculate: route pickup->dropoff: %w", err)
	}

	totalDistance := leg1.DistanceMiles + leg2.DistanceMiles
	totalDriving := leg1.DurationHours + leg2.DurationHours

	plan := hos.PlanTrip(totalDistance, in.CurrentCycleHours, &totalDriving)
	if !plan.Feasible {
		return CalculateResult{}, &domain.InfeasibleTripError{
			AvailableHours: plan.AvailableHours,
			RequiredHours:  plan.RequiredHours,
		}
	}

	name := strings.TrimSpace(in.TripName)
	if name == "" {
		name = "Trip to " + dropoff.Address
	}

	trip := domain.Trip{
		UserID:               in.UserID,
		Name:                 name,
		Status:               domain.TripPlanned,
		Current:              current,
		Pickup:               pickup,
		Dropoff:              dropoff,
		CurrentCycleHours:    in.CurrentCycleHours,
		TotalDistance:        totalDistance,
		EstimatedDrivingTime: totalDriving,
		TotalTripTime:        plan.TotalTripTime,
	}

	var (
		created  domain.Trip
		stops    []domain.Stop
		segments []domain.RouteSegment
	)
	err = s.store.InTx(ctx, func(r repo.Repos) error {
		var err error
		created, err = r.Trips.Create(ctx, trip)
		if err != nil {
			return err
		}

		stops, err = createStops(ctx, r, created, plan, leg2)
		if err != nil {
			return err
		}

		polyline, err := encodePolyline(leg2.Coordinates)
		if err != nil {
			return err
		}
		seg, err := r.Segments.Create(ctx, domain.RouteSegment{
			TripID:        created.ID,
			StartStopID:   stops[0].ID,
			EndStopID:     stops[len(stops)-1].ID,
			Distance:      leg2.DistanceMiles,
			EstimatedTime: leg2.DurationHours,
			Polyline:      polyline,
			Sequence:      1,
		})
		if err != nil {
			return err
		}
		segments = []domain.RouteSegment{seg}
		return nil
	})
	if err != nil {
		return CalculateResult{}, fmt.Errorf("service.PlannerService.Calculate: %w", err)
	}

	return CalculateResult{
		Trip:            created,
		Stops:           stops,
		Segments:        segments,
		Plan:            plan,
		CurrentToPickup: Leg{DistanceMiles: leg1.DistanceMiles, DurationHours: leg1.DurationHours, Coordinates: leg1.Coordinates},
		PickupToDropoff: Leg{DistanceMiles: leg2.DistanceMiles, DurationHours: leg2.DurationHours, Coordinates: leg2.Coordinates},
	}, nil
}

// geocodeEndpoints resolves all three addresses, collecting per-field
// failures so the caller sees every bad address at once rather than one
// at a time.
func (s *PlannerService) geocodeEndpoints(ctx context.Context, in CalculateInput) (current, pickup, dropoff domain.Place, err error) {
	fields := domain.FieldErrors{}

	resolve := func(field, address string) domain.Place {
		result, gErr := s.routes.Geocode(ctx, address)
		if gErr != nil {
			fields[field] = gErr.Error()
			return domain.Place{}
		}
		return domain.Place{Address: result.Address, Lat: result.Lat, Lng: result.Lng}
	}

	current = resolve("current_location", in.CurrentLocation)
	pickup = resolve("pickup_location", in.PickupLocation)
	dropoff = resolve("dropoff_location", in.DropoffLocation)

	if len(fields) > 0 {
		return domain.Place{}, domain.Place{}, domain.Place{}, fields
	}
	return current, pickup, dropoff, nil
}

// createStops builds the ordered stop sequence: pickup, then break and
// rest markers interpolated along the pickup→dropoff polyline in two
// independent passes at fractions i/(n+1), then dropoff. Intermediate
// stops are sequenced by distance from start so distance_from_start stays
// monotonically non-decreasing.
func createStops(ctx context.Context, r repo.Repos, trip domain.Trip, plan hos.Plan, leg2 mapbox.RouteResult) ([]domain.Stop, error) {
	now := time.Now().UTC()
	pickupDistance := geo.HaversineMiles(trip.Current.Point(), trip.Pickup.Point())

	pending := []domain.Stop{{
		TripID:            trip.ID,
		Type:              domain.StopPickup,
		Location:          trip.Pickup.Address,
		Lat:               trip.Pickup.Lat,
		Lng:               trip.Pickup.Lng,
		Duration:          hos.PickupDuration,
		DistanceFromStart: pickupDistance,
	}}

	addMarkers := func(n int, typ domain.StopType, duration float64, label string) {
		for i := 1; i <= n; i++ {
			frac := float64(i) / float64(n+1)
			point, ok := geo.InterpolateAlongPath(leg2.Coordinates, frac)
			if !ok {
				// No polyline to place the marker on; fall back to the
				// dropoff point so the stop still exists.
				point = trip.Dropoff.Point()
			}
			pending = append(pending, domain.Stop{
				TripID:            trip.ID,
				Type:              typ,
				Location:          fmt.Sprintf("%s at %.5f,%.5f", label, point.Lat, point.Lng),
				Lat:               point.Lat,
				Lng:               point.Lng,
				Duration:          duration,
				DistanceFromStart: pickupDistance + leg2.DistanceMiles*frac,
			})
		}
	}
	addMarkers(plan.BreakCount, domain.StopBreak, hos.BreakDuration, "Break")
	addMarkers(plan.RestPeriods, domain.StopRest, hos.RequiredRest, "Rest")

	// Interleave breaks and rests by route position (pickup is already in
	// front and stays there).
	markers := pending[1:]
	sort.SliceStable(markers, func(i, j int) bool {
		return markers[i].DistanceFromStart < markers[j].DistanceFromStart
	})

	pending = append(pending, domain.Stop{
		TripID:            trip.ID,
		Type:              domain.StopDropoff,
		Location:          trip.Dropoff.Address,
		Lat:               trip.Dropoff.Lat,
		Lng:               trip.Dropoff.Lng,
		Duration:          hos.DropoffDuration,
		DistanceFromStart: trip.TotalDistance,
	})

	stops := make([]domain.Stop, 0, len(pending))
	for i, stop := range pending {
		stop.Sequence = i + 1
		stop.ArrivalTime = now
		departure := now.Add(time.Duration(stop.Duration * float64(time.Hour)))
		stop.DepartureTime = &departure

		created, err := r.Stops.Create(ctx, stop)
		if err != nil {
			return nil, err
		}
		stops = append(stops, created)
	}
	return stops, nil
}

// encodePolyline serializes a coordinate list as the [[lat,lng],...] JSON
// stored on route segments.
func encodePolyline(points []domain.LatLng) (string, error) {
	pairs := make([][2]float64, len(points))
	for i, p := range points {
		pairs[i] = [2]float64{p.Lat, p.Lng}
	}
	b, err := json.Marshal(pairs)
	if err != nil {
		return "", fmt.Errorf("encode polyline: %w", err)
	}
	return string(b), nil
}

// validateCalculateInput enforces the request-level rules.
func validateCalculateInput(in CalculateInput) error {
	fields := domain.FieldErrors{}
	if strings.TrimSpace(in.CurrentLocation) == "" {
		fields["current_location"] = "current location is required"
	}
	if strings.TrimSpace(in.PickupLocation) == "" {
		fields["pickup_location"] = "pickup location is required"
	}
	if strings.TrimSpace(in.DropoffLocation) == "" {
		fields["dropoff_location"] = "dropoff location is required"
	}
	if in.CurrentCycleHours < 0 || in.CurrentCycleHours > hos.WeeklyLimit {
		fields["current_cycle_hours"] = "cycle hours must be between 0 and 70"
	}
	if len(fields) > 0 {
		return fields
	}
	return nil
}
