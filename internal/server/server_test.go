package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlab/verdant/internal/config"
	"github.com/verdantlab/verdant/internal/database"
	"github.com/verdantlab/verdant/internal/domain"
	"github.com/verdantlab/verdant/internal/modules/portfolio"
	"github.com/verdantlab/verdant/internal/modules/universe"
)

type noopSource struct{}

func (noopSource) FetchAssetRecord(ticker string) (*domain.AssetRecord, error) {
	return nil, nil
}

func (noopSource) FetchCloseSeries(string, domain.DateRange) (domain.CloseSeries, error) {
	return nil, nil
}

func setupServer(t *testing.T) *Server {
	t.Helper()

	dir := t.TempDir()

	universeDB, err := database.New(database.Config{
		Path:    filepath.Join(dir, "universe.db"),
		Profile: database.ProfileStandard,
		Name:    "universe",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = universeDB.Close() })
	require.NoError(t, universeDB.Migrate())

	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(dir, "client_data.db"),
		Profile: database.ProfileCache,
		Name:    "client_data",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cacheDB.Close() })
	require.NoError(t, cacheDB.Migrate())

	return New(Config{
		Log:          zerolog.Nop(),
		Config:       &config.Config{Port: 0, DevMode: true},
		UniverseDB:   universeDB,
		CacheDB:      cacheDB,
		Aggregator:   portfolio.NewAggregator(noopSource{}, zerolog.Nop()),
		UniverseRepo: universe.NewRepository(universeDB, zerolog.Nop()),
	})
}

func TestHealthEndpoint(t *testing.T) {
	srv := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Data struct {
			Status    string            `json:"status"`
			Databases map[string]string `json:"databases"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response.Data.Status)
	assert.Equal(t, "ok", response.Data.Databases["universe"])
	assert.Equal(t, "ok", response.Data.Databases["client_data"])
}

func TestSystemStatusEndpoint(t *testing.T) {
	srv := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/system/status", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var response struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Contains(t, response.Data, "goroutines")
	assert.Contains(t, response.Data, "uptime")
}

func TestModuleRoutesMounted(t *testing.T) {
	srv := setupServer(t)

	for _, path := range []string{
		"/api/universe/securities",
		"/api/universe/profiles",
		"/api/universe/benchmarks",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "path %s", path)
	}
}
