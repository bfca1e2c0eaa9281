package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlab/verdant/internal/domain"
)

func setupRouter() *chi.Mux {
	handler := NewHandler(zerolog.Nop())
	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		handler.RegisterRoutes(r)
	})
	return router
}

func TestHandleFilter(t *testing.T) {
	router := setupRouter()

	body, err := json.Marshal(map[string]interface{}{
		"strategy": "net_zero",
		"assets": []domain.AssetRecord{
			{Ticker: "CLEAN", ESG: domain.ESGScores{Total: 15, Environmental: 2, Social: 8, Governance: 5}},
			{Ticker: "DIRTY", ESG: domain.ESGScores{Total: 15, Environmental: 9, Social: 3, Governance: 3}},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/screening/filter", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Data struct {
			Strategy string               `json:"strategy"`
			Passed   []domain.AssetRecord `json:"passed"`
			Excluded int                  `json:"excluded"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))

	assert.Equal(t, "net_zero", response.Data.Strategy)
	require.Len(t, response.Data.Passed, 1)
	assert.Equal(t, "CLEAN", response.Data.Passed[0].Ticker)
	assert.Equal(t, 1, response.Data.Excluded)
}

func TestHandleFilter_UnknownStrategyFallsBack(t *testing.T) {
	router := setupRouter()

	body, _ := json.Marshal(map[string]interface{}{
		"strategy": "does_not_exist",
		"assets": []domain.AssetRecord{
			{Ticker: "OK", ESG: domain.ESGScores{Total: 24, Environmental: 14, Social: 10, Governance: 8}},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/screening/filter", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Data struct {
			Strategy string               `json:"strategy"`
			Passed   []domain.AssetRecord `json:"passed"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "", response.Data.Strategy)
	assert.Len(t, response.Data.Passed, 1)
}

func TestHandleFilter_InvalidBody(t *testing.T) {
	router := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/screening/filter", bytes.NewReader([]byte("nope")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
