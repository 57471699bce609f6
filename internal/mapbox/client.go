// Package mapbox is the HTTP client for the external geocoding and
// directions provider. It is consumed through small request/response
// contracts; everything here is transport plumbing with bounded timeouts
// and no retries; a transient provider failure surfaces to the caller.
package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pmillerd/hauliq/internal/domain"
)

const (
	defaultBaseURL  = "https://api.mapbox.com"
	geocodeTimeout  = 10 * time.Second
	routeTimeout    = 15 * time.Second
	metersPerMile   = 1609.344
	secondsPerHour  = 3600.0
)

// Client talks to the Mapbox geocoding and directions APIs.
// Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	token      string
	baseURL    string
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the provider base URL. Used by tests to point the
// client at a local httptest server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient constructs a Client with the given API token. An empty token is
// allowed at construction; calls will fail with domain.ErrUpstream so a
// misconfigured deployment degrades to clear errors rather than panics.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: routeTimeout},
		token:      token,
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GeocodeResult is a single resolved location.
type GeocodeResult struct {
	Address string  `json:"address"`
	Lat     float64 `json:"latitude"`
	Lng     float64 `json:"longitude"`
}

// RouteResult is one routed leg between two coordinates.
type RouteResult struct {
	DistanceMiles float64
	DurationHours float64
	// Coordinates is the route polyline in [lat,lng] order (converted from
	// the provider's GeoJSON [lng,lat]).
	Coordinates []domain.LatLng
}

// geocodingResponse mirrors the subset of the Mapbox geocoding payload we read.
type geocodingResponse struct {
	Features []struct {
		PlaceName string    `json:"place_name"`
		Center    []float64 `json:"center"` // [lng, lat]
	} `json:"features"`
}

// directionsResponse mirrors the subset of the Mapbox directions payload we read.
type directionsResponse struct {
	Routes []struct {
		Distance float64 `json:"distance"` // meters
		Duration float64 `json:"duration"` // seconds
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lng, lat]
		} `json:"geometry"`
	} `json:"routes"`
}

// Geocode resolves a free-form address to coordinates.
func (c *Client) Geocode(ctx context.Context, address string) (GeocodeResult, error) {
	var decoded geocodingResponse
	query := url.Values{"limit": {"1"}}
	if err := c.getJSON(ctx, c.geocodingURL(address), query, geocodeTimeout, &decoded); err != nil {
		return GeocodeResult{}, err
	}

	if len(decoded.Features) == 0 || len(decoded.Features[0].Center) != 2 {
		return GeocodeResult{}, fmt.Errorf("mapbox.Geocode %q: location not found: %w", address, domain.ErrUpstream)
	}

	f := decoded.Features[0]
	addr := f.PlaceName
	if addr == "" {
		addr = address
	}
	return GeocodeResult{Address: addr, Lat: f.Center[1], Lng: f.Center[0]}, nil
}

// ReverseGeocode resolves coordinates to the nearest address.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lng float64) (GeocodeResult, error) {
	place := fmt.Sprintf("%s,%s", formatCoord(lng), formatCoord(lat))

	var decoded geocodingResponse
	query := url.Values{"limit": {"1"}}
	if err := c.getJSON(ctx, c.geocodingURL(place), query, geocodeTimeout, &decoded); err != nil {
		return GeocodeResult{}, err
	}

	if len(decoded.Features) == 0 {
		return GeocodeResult{}, fmt.Errorf("mapbox.ReverseGeocode: address not found: %w", domain.ErrUpstream)
	}

	addr := decoded.Features[0].PlaceName
	if addr == "" {
		addr = fmt.Sprintf("%v,%v", lat, lng)
	}
	return GeocodeResult{Address: addr, Lat: lat, Lng: lng}, nil
}

// Search returns up to limit autocomplete matches for a partial query.
func (c *Client) Search(ctx context.Context, q string, limit int) ([]GeocodeResult, error) {
	if limit < 1 {
		limit = 5
	}

	var decoded geocodingResponse
	query := url.Values{
		"autocomplete": {"true"},
		"limit":        {strconv.Itoa(limit)},
	}
	if err := c.getJSON(ctx, c.geocodingURL(q), query, geocodeTimeout, &decoded); err != nil {
		return nil, err
	}

	results := make([]GeocodeResult, 0, len(decoded.Features))
	for _, f := range decoded.Features {
		if len(f.Center) != 2 {
			continue
		}
		results = append(results, GeocodeResult{
			Address: f.PlaceName,
			Lat:     f.Center[1],
			Lng:     f.Center[0],
		})
	}
	return results, nil
}

// Route requests a driving route between two points and returns distance,
// duration, and the full-resolution polyline in [lat,lng] order.
func (c *Client) Route(ctx context.Context, origin, dest domain.LatLng) (RouteResult, error) {
	path := fmt.Sprintf("/directions/v5/mapbox/driving/%s,%s;%s,%s",
		formatCoord(origin.Lng), formatCoord(origin.Lat),
		formatCoord(dest.Lng), formatCoord(dest.Lat))

	var decoded directionsResponse
	query := url.Values{
		"overview":   {"full"},
		"geometries": {"geojson"},
	}
	if err := c.getJSON(ctx, path, query, routeTimeout, &decoded); err != nil {
		return RouteResult{}, err
	}

	if len(decoded.Routes) == 0 {
		return RouteResult{}, fmt.Errorf("mapbox.Route: no route found: %w", domain.ErrUpstream)
	}

	best := decoded.Routes[0]
	coords := make([]domain.LatLng, 0, len(best.Geometry.Coordinates))
	for _, c := range best.Geometry.Coordinates {
		if len(c) != 2 {
			continue
		}
		coords = append(coords, domain.LatLng{Lat: c[1], Lng: c[0]})
	}

	return RouteResult{
		DistanceMiles: best.Distance / metersPerMile,
		DurationHours: best.Duration / secondsPerHour,
		Coordinates:   coords,
	}, nil
}

// geocodingURL builds the path for a forward, reverse, or search lookup.
func (c *Client) geocodingURL(place string) string {
	return "/geocoding/v5/mapbox.places/" + url.PathEscape(place) + ".json"
}

// getJSON issues a GET with the access token appended, enforcing the
// per-call timeout, and decodes the body into out. Provider-side failures
// and non-2xx statuses wrap domain.ErrUpstream.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, timeout time.Duration, out any) error {
	if c.token == "" {
		return fmt.Errorf("mapbox: access token missing: %w", domain.ErrUpstream)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	query.Set("access_token", c.token)
	u := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("mapbox: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mapbox: %v: %w", err, domain.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("mapbox: status %d: %s: %w",
			resp.StatusCode, strings.TrimSpace(string(body)), domain.ErrUpstream)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("mapbox: decode response: %w", domain.ErrUpstream)
	}
	return nil
}

// formatCoord renders a coordinate with enough precision for the provider
// without float noise.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
