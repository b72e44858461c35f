package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shard-legends/codex-service/internal/loader"
	"github.com/shard-legends/codex-service/internal/models"
	"github.com/shard-legends/codex-service/internal/service"
)

type stubLoader struct {
	ds  *models.Dataset
	err error
}

func (l *stubLoader) Load(ctx context.Context) (*models.Dataset, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.ds, nil
}

func newTestHandlers(l *stubLoader) *Handlers {
	holder := service.NewDatasetHolder(l, zap.NewNop())
	svc := service.NewService(&service.ServiceDependencies{Dataset: holder, Logger: zap.NewNop()})
	return NewHandlers(&HandlerDependencies{Service: svc, Logger: zap.NewNop()})
}

func testDataset() *models.Dataset {
	return &models.Dataset{
		Items:   []models.Item{{ID: 1, Name: "Stick", Rarity: models.RarityCommon, Type: "Material", Value: 5}},
		Recipes: []models.Recipe{{Result: "Spear", Ingredients: []string{"Stick"}}},
		Origins: map[string]string{models.DocumentItems: models.OriginRemote},
	}
}

func TestHealth_NotLoaded(t *testing.T) {
	h := newTestHandlers(&stubLoader{ds: testDataset()})

	w := httptest.NewRecorder()
	h.Health.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Contains(t, resp.Services["dataset"], "down")
	assert.Equal(t, "disabled", resp.Services["database"])
	assert.Equal(t, "disabled", resp.Services["redis"])

	w = httptest.NewRecorder()
	h.Health.Ready(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestAdminReload_ThenHealthy(t *testing.T) {
	h := newTestHandlers(&stubLoader{ds: testDataset()})

	w := httptest.NewRecorder()
	h.Admin.Reload(w, httptest.NewRequest(http.MethodPost, "/admin/reload", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var reload models.ReloadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reload))
	assert.Equal(t, 1, reload.Items)
	assert.Equal(t, 1, reload.Recipes)

	w = httptest.NewRecorder()
	h.Health.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.NotNil(t, resp.Dataset)
	assert.Equal(t, 1, resp.Dataset.Items)
	assert.Nil(t, resp.DatabasePool)

	w = httptest.NewRecorder()
	h.Health.Ready(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestAdminReload_Failures(t *testing.T) {
	h := newTestHandlers(&stubLoader{err: &loader.LoadError{
		Document: models.DocumentItems,
		Remote:   errors.New("status 502"),
		Local:    loader.ErrDocumentUnavailable,
	}})

	w := httptest.NewRecorder()
	h.Admin.Reload(w, httptest.NewRequest(http.MethodPost, "/admin/reload", nil))
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), models.ErrorCodeUnavailable)

	h = newTestHandlers(&stubLoader{err: context.Canceled})
	w = httptest.NewRecorder()
	h.Admin.Reload(w, httptest.NewRequest(http.MethodPost, "/admin/reload", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
