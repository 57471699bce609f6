// Package geo provides great-circle distance and path interpolation
// helpers for placing stop markers along routed polylines. All functions
// are pure and safe for concurrent use.
package geo

import (
	"math"

	"github.com/pmillerd/hauliq/internal/domain"
)

// EarthRadiusMiles is Earth's mean radius used by the Haversine formula.
const EarthRadiusMiles = 3958.7613

// HaversineMiles returns the great-circle distance in miles between two
// coordinate pairs.
func HaversineMiles(a, b domain.LatLng) float64 {
	const degToRad = math.Pi / 180
	dLat := (b.Lat - a.Lat) * degToRad
	dLng := (b.Lng - a.Lng) * degToRad
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*degToRad)*math.Cos(b.Lat*degToRad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusMiles * c
}

// PathLengthMiles returns the cumulative great-circle length of an ordered
// polyline. Zero or one point has length zero.
func PathLengthMiles(points []domain.LatLng) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += HaversineMiles(points[i-1], points[i])
	}
	return total
}

// InterpolateAlongPath returns the point at the given fraction [0,1] of the
// polyline's length, measured by great-circle distance. Within the segment
// where the target distance falls, lat and lng are interpolated linearly;
// not geodesically exact, but fine for marker placement.
//
// The fraction is clamped to [0,1]. An empty path returns ok=false.
// A fraction of 1, or a path of zero total length, returns the final point.
func InterpolateAlongPath(points []domain.LatLng, fraction float64) (domain.LatLng, bool) {
	if len(points) == 0 {
		return domain.LatLng{}, false
	}
	fraction = math.Max(0, math.Min(1, fraction))

	target := PathLengthMiles(points) * fraction
	acc := 0.0
	for i := 1; i < len(points); i++ {
		segLen := HaversineMiles(points[i-1], points[i])
		if acc+segLen >= target {
			t := 0.0
			if segLen > 0 {
				t = (target - acc) / segLen
			}
			return domain.LatLng{
				Lat: points[i-1].Lat + (points[i].Lat-points[i-1].Lat)*t,
				Lng: points[i-1].Lng + (points[i].Lng-points[i-1].Lng)*t,
			}, true
		}
		acc += segLen
	}
	return points[len(points)-1], true
}
