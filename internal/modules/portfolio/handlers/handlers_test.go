package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlab/verdant/internal/domain"
	"github.com/verdantlab/verdant/internal/modules/portfolio"
)

// stubSource serves one asset with a two-day close history.
type stubSource struct{}

func (s *stubSource) FetchAssetRecord(ticker string) (*domain.AssetRecord, error) {
	if ticker != "AAPL" {
		return nil, fmt.Errorf("no record for %s", ticker)
	}
	return &domain.AssetRecord{
		Ticker: "AAPL",
		Sector: "Technology",
		ESG:    domain.ESGScores{Total: 17.2},
	}, nil
}

func (s *stubSource) FetchCloseSeries(ticker string, _ domain.DateRange) (domain.CloseSeries, error) {
	if ticker != "AAPL" {
		return nil, fmt.Errorf("no closes for %s", ticker)
	}
	return domain.CloseSeries{
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Close: 100},
		{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Close: 102},
	}, nil
}

func setupRouter() *chi.Mux {
	aggregator := portfolio.NewAggregator(&stubSource{}, zerolog.Nop())
	handler := NewHandler(aggregator, zerolog.Nop())

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		handler.RegisterRoutes(r)
	})
	return router
}

func TestHandleComputeMetrics(t *testing.T) {
	router := setupRouter()

	body, err := json.Marshal(map[string]interface{}{
		"weights": map[string]float64{"AAPL": 100},
		"start":   "2024-01-01",
		"end":     "2024-02-01",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/portfolio/metrics", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Data struct {
			Metrics domain.PortfolioMetrics `json:"metrics"`
		} `json:"data"`
		Metadata struct {
			Timestamp string `json:"timestamp"`
		} `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	assert.InDelta(t, 17.2, response.Data.Metrics.ESGScore, 1e-9)
	assert.NotEmpty(t, response.Metadata.Timestamp)
}

func TestHandleComputeMetrics_InvalidBody(t *testing.T) {
	router := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/portfolio/metrics", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleComputeMetrics_InvalidDates(t *testing.T) {
	router := setupRouter()

	body, _ := json.Marshal(map[string]interface{}{
		"weights": map[string]float64{"AAPL": 100},
		"start":   "2024-02-01",
		"end":     "2024-01-01",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/portfolio/metrics", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleComputeMetrics_EmptyWeights(t *testing.T) {
	router := setupRouter()

	body, _ := json.Marshal(map[string]interface{}{"weights": map[string]float64{}})

	req := httptest.NewRequest(http.MethodPost, "/api/portfolio/metrics", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Data struct {
			Metrics domain.PortfolioMetrics `json:"metrics"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Zero(t, response.Data.Metrics.ESGScore)
}
