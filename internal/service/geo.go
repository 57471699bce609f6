package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pmillerd/hauliq/internal/domain"
	"github.com/pmillerd/hauliq/internal/mapbox"
)

// Geocoder is the slice of the provider client the geocoding service
// needs.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (mapbox.GeocodeResult, error)
	ReverseGeocode(ctx context.Context, lat, lng float64) (mapbox.GeocodeResult, error)
	Search(ctx context.Context, q string, limit int) ([]mapbox.GeocodeResult, error)
}

// LookupInput selects one of three geocoding modes. Query wins over a
// coordinate pair, which wins over Address.
type LookupInput struct {
	Address string
	Lat     *float64
	Lng     *float64
	Query   string
	Limit   int
}

// GeoService dispatches forward, reverse, and suggestion lookups to the
// geocoding provider.
type GeoService struct {
	geocoder Geocoder
}

// NewGeoService constructs a GeoService.
func NewGeoService(geocoder Geocoder) *GeoService {
	return &GeoService{geocoder: geocoder}
}

const defaultSearchLimit = 5

// Lookup resolves the input to one or more places. Search queries return
// up to Limit suggestions; address and coordinate lookups return exactly
// one result.
func (s *GeoService) Lookup(ctx context.Context, in LookupInput) ([]mapbox.GeocodeResult, error) {
	switch {
	case strings.TrimSpace(in.Query) != "":
		limit := in.Limit
		if limit <= 0 {
			limit = defaultSearchLimit
		}
		results, err := s.geocoder.Search(ctx, in.Query, limit)
		if err != nil {
			return nil, fmt.Errorf("service.GeoService.Lookup: %w", err)
		}
		return results, nil

	case in.Lat != nil && in.Lng != nil:
		if *in.Lat < -90 || *in.Lat > 90 || *in.Lng < -180 || *in.Lng > 180 {
			return nil, fmt.Errorf("service.GeoService.Lookup: coordinates out of range: %w", domain.ErrValidation)
		}
		result, err := s.geocoder.ReverseGeocode(ctx, *in.Lat, *in.Lng)
		if err != nil {
			return nil, fmt.Errorf("service.GeoService.Lookup: %w", err)
		}
		return []mapbox.GeocodeResult{result}, nil

	case strings.TrimSpace(in.Address) != "":
		result, err := s.geocoder.Geocode(ctx, in.Address)
		if err != nil {
			return nil, fmt.Errorf("service.GeoService.Lookup: %w", err)
		}
		return []mapbox.GeocodeResult{result}, nil
	}

	return nil, fmt.Errorf("service.GeoService.Lookup: provide a query, coordinates, or an address: %w", domain.ErrValidation)
}
