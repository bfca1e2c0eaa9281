package handlers

import (
	"fmt"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/verdantlab/verdant/internal/domain"
)

// RegisterRoutes registers all portfolio routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/portfolio", func(r chi.Router) {
		r.Post("/metrics", h.HandleComputeMetrics)
	})
}

// parseDateRange parses ISO dates into a range, defaulting to the
// trailing year when both are empty.
func parseDateRange(start, end string) (domain.DateRange, error) {
	now := time.Now()
	dateRange := domain.DateRange{Start: now.AddDate(-1, 0, 0), End: now}

	if start != "" {
		parsed, err := time.Parse("2006-01-02", start)
		if err != nil {
			return domain.DateRange{}, fmt.Errorf("invalid start date %q", start)
		}
		dateRange.Start = parsed
	}
	if end != "" {
		parsed, err := time.Parse("2006-01-02", end)
		if err != nil {
			return domain.DateRange{}, fmt.Errorf("invalid end date %q", end)
		}
		dateRange.End = parsed
	}
	if dateRange.End.Before(dateRange.Start) {
		return domain.DateRange{}, fmt.Errorf("end date precedes start date")
	}

	return dateRange, nil
}
