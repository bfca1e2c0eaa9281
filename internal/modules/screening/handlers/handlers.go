// Package handlers provides HTTP handlers for sustainability screening.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/verdantlab/verdant/internal/domain"
	"github.com/verdantlab/verdant/internal/modules/screening"
)

// Handler handles screening HTTP requests
type Handler struct {
	log zerolog.Logger
}

// NewHandler creates a new screening handler
func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{
		log: log.With().Str("handler", "screening").Logger(),
	}
}

type filterRequest struct {
	Assets   []domain.AssetRecord `json:"assets"`
	Strategy string               `json:"strategy,omitempty"`
}

// HandleFilter handles POST /api/screening/filter
func (h *Handler) HandleFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn().Err(err).Msg("Invalid filter request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	strategy := domain.ParseStrategy(req.Strategy)
	passed := screening.Filter(req.Assets, strategy)

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"strategy": string(strategy),
			"passed":   passed,
			"excluded": len(req.Assets) - len(passed),
		},
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
