package handler

import (
	"net/http"

	"github.com/pmillerd/hauliq/internal/mapbox"
	"github.com/pmillerd/hauliq/internal/service"
)

// geocodingRequest is the body of POST /api/geocoding. Exactly one mode
// applies: a free-text query for suggestions, a coordinate pair for
// reverse lookup, or an address for forward geocoding. Query beats
// coordinates, which beat the address.
type geocodingRequest struct {
	Address string   `json:"address,omitempty"`
	Lat     *float64 `json:"latitude,omitempty"`
	Lng     *float64 `json:"longitude,omitempty"`
	Query   string   `json:"query,omitempty"`
	Limit   int      `json:"limit,omitempty"`
}

// Geocode handles POST /api/geocoding.
func (s *Server) Geocode(w http.ResponseWriter, r *http.Request) {
	var req geocodingRequest
	if err := decodeBody(r, &req); err != nil {
		requestError(w, err.Error())
		return
	}

	results, err := s.geo.Lookup(r.Context(), service.LookupInput{
		Address: req.Address,
		Lat:     req.Lat,
		Lng:     req.Lng,
		Query:   req.Query,
		Limit:   req.Limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if results == nil {
		results = []mapbox.GeocodeResult{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}
