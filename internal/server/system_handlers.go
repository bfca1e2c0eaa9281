package server

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/verdantlab/verdant/internal/database"
)

// SystemHandlers serves health and system status endpoints.
type SystemHandlers struct {
	log        zerolog.Logger
	universeDB *database.DB
	cacheDB    *database.DB
	startedAt  time.Time
}

// NewSystemHandlers creates system handlers.
func NewSystemHandlers(log zerolog.Logger, universeDB, cacheDB *database.DB) *SystemHandlers {
	return &SystemHandlers{
		log:        log.With().Str("handler", "system").Logger(),
		universeDB: universeDB,
		cacheDB:    cacheDB,
		startedAt:  time.Now(),
	}
}

// HandleHealth handles GET /api/health. Reports degraded (503) if any
// database fails its health check.
func (h *SystemHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := http.StatusOK
	databases := make(map[string]string)
	for _, db := range []*database.DB{h.universeDB, h.cacheDB} {
		if db == nil {
			continue
		}
		if err := db.HealthCheck(ctx); err != nil {
			h.log.Warn().Err(err).Str("database", db.Name()).Msg("Health check failed")
			databases[db.Name()] = "unhealthy"
			status = http.StatusServiceUnavailable
		} else {
			databases[db.Name()] = "ok"
		}
	}

	health := "healthy"
	if status != http.StatusOK {
		health = "degraded"
	}

	h.writeJSON(w, status, map[string]interface{}{
		"data": map[string]interface{}{
			"status":    health,
			"databases": databases,
			"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
		},
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

// HandleSystemStatus handles GET /api/system/status
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"goroutines": runtime.NumGoroutine(),
		"uptime":     time.Since(h.startedAt).Round(time.Second).String(),
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		status["cpu_percent"] = percents[0]
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		status["memory"] = map[string]interface{}{
			"total":        vm.Total,
			"used":         vm.Used,
			"used_percent": vm.UsedPercent,
		}
	}

	if h.universeDB != nil {
		if usage, err := disk.Usage(h.universeDB.Path()); err == nil {
			status["disk"] = map[string]interface{}{
				"total":        usage.Total,
				"free":         usage.Free,
				"used_percent": usage.UsedPercent,
			}
		}
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": status,
		"metadata": map[string]interface{}{
			"timestamp": time.Now().Format(time.RFC3339),
		},
	})
}

func (h *SystemHandlers) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
