package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers all universe routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/universe", func(r chi.Router) {
		r.Get("/securities", h.HandleListSecurities)
		r.Get("/profiles", h.HandleListProfiles)
		r.Get("/benchmarks", h.HandleListBenchmarks)
	})
}
