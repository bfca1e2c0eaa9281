package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlab/verdant/internal/database"
	"github.com/verdantlab/verdant/internal/domain"
	"github.com/verdantlab/verdant/internal/modules/universe"
)

func setupRouter(t *testing.T) (*chi.Mux, *universe.Repository) {
	t.Helper()

	db, err := database.New(database.Config{
		Path:    filepath.Join(t.TempDir(), "universe.db"),
		Profile: database.ProfileStandard,
		Name:    "universe",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())

	repo := universe.NewRepository(db, zerolog.Nop())
	require.NoError(t, repo.Seed())

	handler := NewHandler(repo, zerolog.Nop())
	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		handler.RegisterRoutes(r)
	})
	return router, repo
}

type securitiesResponse struct {
	Data struct {
		Securities []universe.Security `json:"securities"`
		Count      int                 `json:"count"`
	} `json:"data"`
}

func getSecurities(t *testing.T, router *chi.Mux, query string) securitiesResponse {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/universe/securities"+query, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var response securitiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return response
}

func TestHandleListSecurities(t *testing.T) {
	router, _ := setupRouter(t)

	response := getSecurities(t, router, "")
	assert.Equal(t, len(universe.DefaultSecurities()), response.Data.Count)
}

func TestHandleListSecurities_CategoryFilter(t *testing.T) {
	router, _ := setupRouter(t)

	response := getSecurities(t, router, "?category=Water")
	require.NotEmpty(t, response.Data.Securities)
	for _, s := range response.Data.Securities {
		assert.Equal(t, "Water", s.Category)
	}
}

func TestHandleListSecurities_UnknownProfile(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/universe/securities?profile=aggressive", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleListSecurities_ProfileFilter_KnownProfile(t *testing.T) {
	router, _ := setupRouter(t)

	response := getSecurities(t, router, "?profile="+universe.ProfileDynamic)
	require.NotEmpty(t, response.Data.Securities)
}

func TestHandleListSecurities_StrategyScreen(t *testing.T) {
	router, repo := setupRouter(t)

	// Give one security clean scores and another failing scores; the
	// rest keep zero scores and pass by default
	clean, err := repo.GetByTicker("NEE")
	require.NoError(t, err)
	clean.ESG = domain.ESGScores{Total: 15, Environmental: 2, Social: 8, Governance: 5}
	require.NoError(t, repo.Upsert(*clean))

	dirty, err := repo.GetByTicker("CAT")
	require.NoError(t, err)
	dirty.ESG = domain.ESGScores{Total: 30, Environmental: 12, Social: 10, Governance: 8}
	require.NoError(t, repo.Upsert(*dirty))

	response := getSecurities(t, router, "?strategy=net_zero")

	tickers := make(map[string]bool)
	for _, s := range response.Data.Securities {
		tickers[s.Ticker] = true
	}
	assert.True(t, tickers["NEE"])
	assert.False(t, tickers["CAT"])
}

func TestHandleListProfiles(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/universe/profiles", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Data []universe.RiskProfile `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Data, 3)
	assert.Equal(t, universe.ProfileConservative, response.Data[0].Name)
	assert.Equal(t, "^GSPC", response.Data[0].DefaultBenchmark)
}

func TestHandleListBenchmarks(t *testing.T) {
	router, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/universe/benchmarks", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Data []universe.Benchmark `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Len(t, response.Data, 5)
}
