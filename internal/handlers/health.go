package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shard-legends/codex-service/internal/database"
	"github.com/shard-legends/codex-service/internal/service"
)

type HealthHandler struct {
	dataset *service.DatasetHolder
	db      *database.DB
	redis   *database.RedisClient
}

func NewHealthHandler(dataset *service.DatasetHolder, db *database.DB, redis *database.RedisClient) *HealthHandler {
	return &HealthHandler{
		dataset: dataset,
		db:      db,
		redis:   redis,
	}
}

type HealthResponse struct {
	Status       string             `json:"status"`
	Services     map[string]string  `json:"services"`
	Dataset      *DatasetStats      `json:"dataset,omitempty"`
	DatabasePool *DatabasePoolStats `json:"database_pool,omitempty"`
}

type DatasetStats struct {
	Items    int               `json:"items"`
	Recipes  int               `json:"recipes"`
	Origins  map[string]string `json:"origins,omitempty"`
	LoadedAt time.Time         `json:"loaded_at"`
}

type DatabasePoolStats struct {
	TotalConns    int32 `json:"total_connections"`
	IdleConns     int32 `json:"idle_connections"`
	AcquiredConns int32 `json:"acquired_connections"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	response := HealthResponse{
		Status:   "ok",
		Services: make(map[string]string),
	}

	// Check dataset
	if state, err := h.dataset.Current(); err != nil {
		response.Status = "unhealthy"
		response.Services["dataset"] = "down: " + err.Error()
	} else {
		response.Services["dataset"] = "ok"
		response.Dataset = &DatasetStats{
			Items:    state.Catalog.Len(),
			Recipes:  len(state.Catalog.Recipes()),
			Origins:  state.Dataset.Origins,
			LoadedAt: state.Dataset.LoadedAt,
		}
	}

	// Check database
	if h.db != nil {
		if err := h.db.Health(ctx); err != nil {
			response.Status = "unhealthy"
			response.Services["database"] = "down: " + err.Error()
		} else {
			response.Services["database"] = "ok"
		}

		stats := h.db.Pool().Stat()
		response.DatabasePool = &DatabasePoolStats{
			TotalConns:    stats.TotalConns(),
			IdleConns:     stats.IdleConns(),
			AcquiredConns: stats.AcquiredConns(),
		}
	} else {
		response.Services["database"] = "disabled"
	}

	// Check Redis
	if h.redis != nil {
		if err := h.redis.Health(ctx); err != nil {
			response.Status = "unhealthy"
			response.Services["redis"] = "down: " + err.Error()
		} else {
			response.Services["redis"] = "ok"
		}
	} else {
		response.Services["redis"] = "disabled"
	}

	// Set appropriate status code
	statusCode := http.StatusOK
	if response.Status != "ok" {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Check if all services are ready
	if _, err := h.dataset.Current(); err != nil {
		http.Error(w, "Dataset not loaded", http.StatusServiceUnavailable)
		return
	}

	if h.db != nil {
		if err := h.db.Health(ctx); err != nil {
			http.Error(w, "Database not ready", http.StatusServiceUnavailable)
			return
		}
	}

	if h.redis != nil {
		if err := h.redis.Health(ctx); err != nil {
			http.Error(w, "Redis not ready", http.StatusServiceUnavailable)
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
