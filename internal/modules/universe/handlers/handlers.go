// Package handlers provides HTTP handlers for universe browsing.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/verdantlab/verdant/internal/domain"
	"github.com/verdantlab/verdant/internal/modules/screening"
	"github.com/verdantlab/verdant/internal/modules/universe"
)

// Handler handles universe HTTP requests
type Handler struct {
	repo *universe.Repository
	log  zerolog.Logger
}

// NewHandler creates a new universe handler
func NewHandler(repo *universe.Repository, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "universe").Logger(),
	}
}

// HandleListSecurities handles GET /api/universe/securities
// Optional query params: category, profile, strategy (applies the ESG
// screen to the stored scores).
func (h *Handler) HandleListSecurities(w http.ResponseWriter, r *http.Request) {
	profile := r.URL.Query().Get("profile")
	if profile != "" {
		if _, ok := universe.ProfileByName(profile); !ok {
			http.Error(w, "Unknown risk profile: "+profile, http.StatusBadRequest)
			return
		}
	}

	securities, err := h.repo.List(universe.ListFilter{
		Category: r.URL.Query().Get("category"),
		Profile:  profile,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list securities")
		http.Error(w, "Failed to list securities", http.StatusInternalServerError)
		return
	}

	if name := r.URL.Query().Get("strategy"); name != "" {
		strategy := domain.ParseStrategy(name)
		filtered := make([]universe.Security, 0, len(securities))
		for _, s := range securities {
			if screening.Passes(s.ESG, strategy) {
				filtered = append(filtered, s)
			}
		}
		securities = filtered
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"securities": securities,
			"count":      len(securities),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleListProfiles handles GET /api/universe/profiles
func (h *Handler) HandleListProfiles(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": universe.RiskProfiles,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleListBenchmarks handles GET /api/universe/benchmarks
func (h *Handler) HandleListBenchmarks(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": universe.Benchmarks,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
