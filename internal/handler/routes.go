package handler

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts every API endpoint on a fresh router. Cross-cutting
// middleware (logging, CORS, auth, body limits) is wired by the caller so
// tests can exercise handlers without it.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/trips", func(r chi.Router) {
			r.Post("/calculate", s.CalculateTrip)
			r.Get("/", s.ListTrips)
			r.Route("/{tripID}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Patch("/status", s.UpdateTripStatus)
				r.Delete("/", s.DeleteTrip)
			})
		})

		r.Post("/geocoding", s.Geocode)

		r.Route("/logs", func(r chi.Router) {
			r.Post("/generate", s.GenerateLogs)
			r.Get("/", s.ListLogs)
			r.Route("/{sheetID}", func(r chi.Router) {
				r.Get("/", s.GetLog)
				r.Post("/certify", s.CertifyLog)
				r.Put("/visual", s.UpdateLogVisual)
				r.Get("/grid", s.GetLogGrid)
				r.Get("/pdf", s.GetLogPDF)
			})
		})
	})

	return r
}
