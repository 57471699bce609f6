// Package domain contains the core data types for the HOS trip planner.
// This package has zero external dependencies beyond uuid and is imported
// by every other internal package (hos, geo, eld, repo, service, handler).
package domain

import "github.com/google/uuid"

// LatLng is a geographic coordinate pair in decimal degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is a geocoded location: the provider's resolved address plus its
// coordinates. Trips carry three of these (current, pickup, dropoff).
type Place struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// Point returns the place's coordinates as a LatLng.
func (p Place) Point() LatLng {
	return LatLng{Lat: p.Lat, Lng: p.Lng}
}

// AnonymousUserID is the sentinel owner for trips and log sheets created
// without authentication. Modelling anonymity explicitly replaces the
// lookup-or-create of a magic "public" account at call time.
var AnonymousUserID = uuid.Nil
