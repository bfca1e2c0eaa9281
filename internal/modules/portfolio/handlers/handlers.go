// Package handlers provides HTTP handlers for portfolio metrics operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/verdantlab/verdant/internal/domain"
	"github.com/verdantlab/verdant/internal/modules/portfolio"
)

// Handler handles portfolio metrics HTTP requests
type Handler struct {
	aggregator *portfolio.Aggregator
	log        zerolog.Logger
}

// NewHandler creates a new portfolio metrics handler
func NewHandler(aggregator *portfolio.Aggregator, log zerolog.Logger) *Handler {
	return &Handler{
		aggregator: aggregator,
		log:        log.With().Str("handler", "portfolio").Logger(),
	}
}

// metricsRequest is the wire shape of a metrics request. Strategy comes
// in as a free-form name and is parsed leniently.
type metricsRequest struct {
	Weights   map[string]float64 `json:"weights"`
	Start     string             `json:"start,omitempty"`
	End       string             `json:"end,omitempty"`
	Benchmark string             `json:"benchmark,omitempty"`
	Strategy  string             `json:"strategy,omitempty"`
	Screen    bool               `json:"screen,omitempty"`
}

// HandleComputeMetrics handles POST /api/portfolio/metrics
func (h *Handler) HandleComputeMetrics(w http.ResponseWriter, r *http.Request) {
	var req metricsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn().Err(err).Msg("Invalid metrics request body")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	dateRange, err := parseDateRange(req.Start, req.End)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := h.aggregator.Aggregate(portfolio.AggregateRequest{
		Weights:   req.Weights,
		Range:     dateRange,
		Benchmark: req.Benchmark,
		Strategy:  domain.ParseStrategy(req.Strategy),
		Screen:    req.Screen,
	})

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": result,
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
