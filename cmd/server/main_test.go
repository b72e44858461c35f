package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shard-legends/codex-service/internal/config"
	"github.com/shard-legends/codex-service/internal/handlers"
	"github.com/shard-legends/codex-service/internal/models"
	"github.com/shard-legends/codex-service/internal/service"
)

type fixedLoader struct{}

func (fixedLoader) Load(ctx context.Context) (*models.Dataset, error) {
	return &models.Dataset{
		Items: []models.Item{
			{ID: 1, Name: "Stick", Rarity: models.RarityCommon, Type: "Material", Value: 5},
			{ID: 2, Name: "Stone", Rarity: models.RarityCommon, Type: "Material", Value: 3},
		},
		Recipes: []models.Recipe{{Result: "Spear", Ingredients: []string{"Stick", "Stone"}, Type: "Tools/Weapons"}},
	}, nil
}

func testRouters(t *testing.T) (http.Handler, http.Handler) {
	t.Helper()
	cfg := &config.Config{
		CORS:     config.CORSConfig{AllowedOrigins: []string{"*"}, MaxAge: 300},
		Timeouts: config.TimeoutsConfig{HTTPMiddleware: time.Minute},
	}

	dataset := service.NewDatasetHolder(fixedLoader{}, zap.NewNop())
	_, err := dataset.Reload(context.Background())
	require.NoError(t, err)

	svc := service.NewService(&service.ServiceDependencies{Dataset: dataset, Logger: zap.NewNop()})
	h := handlers.NewHandlers(&handlers.HandlerDependencies{Service: svc, Logger: zap.NewNop()})
	return newPublicRouter(cfg, h), newInternalRouter(cfg, h)
}

func TestPortSeparation(t *testing.T) {
	publicRouter, internalRouter := testRouters(t)

	t.Run("Public router should NOT expose internal endpoints", func(t *testing.T) {
		for _, path := range []string{"/metrics", "/health", "/ready"} {
			req := httptest.NewRequest("GET", path, nil)
			rec := httptest.NewRecorder()
			publicRouter.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusNotFound, rec.Code, "%s should not be available on public port", path)
		}

		req := httptest.NewRequest("POST", "/admin/reload", nil)
		rec := httptest.NewRecorder()
		publicRouter.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code, "Admin endpoints should not be available on public port")
	})

	t.Run("Internal router should expose health and metrics", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/health", nil)
		rec := httptest.NewRecorder()
		internalRouter.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "Health should be available on internal port")
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)

		req = httptest.NewRequest("GET", "/ready", nil)
		rec = httptest.NewRecorder()
		internalRouter.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "Ready should be available on internal port")

		req = httptest.NewRequest("GET", "/metrics", nil)
		rec = httptest.NewRecorder()
		internalRouter.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "Metrics should be available on internal port")

		req = httptest.NewRequest("POST", "/admin/reload", nil)
		rec = httptest.NewRecorder()
		internalRouter.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Internal router should NOT expose business endpoints", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/codex/items", nil)
		rec := httptest.NewRecorder()
		internalRouter.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPublicRoutes(t *testing.T) {
	publicRouter, _ := testRouters(t)

	req := httptest.NewRequest("GET", "/codex/items?sort=value&order=desc", nil)
	rec := httptest.NewRecorder()
	publicRouter.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Index(rec.Body.String(), "Stick") < strings.Index(rec.Body.String(), "Stone"))

	req = httptest.NewRequest("POST", "/codex/inventory/craftable",
		strings.NewReader(`{"stacks":[{"key":"Stick","quantity":1},{"key":"2","quantity":"x4"}]}`))
	rec = httptest.NewRecorder()
	publicRouter.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"result":"Spear"`)

	req = httptest.NewRequest("GET", "/codex/snapshots?owner=someone", nil)
	rec = httptest.NewRecorder()
	publicRouter.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code, "Snapshots are disabled without a database")

	req = httptest.NewRequest("OPTIONS", "/codex/items", nil)
	req.Header.Set("Origin", "https://game.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec = httptest.NewRecorder()
	publicRouter.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
