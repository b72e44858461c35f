package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/shard-legends/codex-service/internal/loader"
	"github.com/shard-legends/codex-service/internal/models"
	"github.com/shard-legends/codex-service/internal/service"
)

// AdminHandler обрабатывает служебные запросы внутреннего порта
type AdminHandler struct {
	codexService service.CodexService
	logger       *zap.Logger
}

// NewAdminHandler создает новый экземпляр AdminHandler
func NewAdminHandler(codexService service.CodexService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		codexService: codexService,
		logger:       logger,
	}
}

// Reload обрабатывает POST /admin/reload
func (h *AdminHandler) Reload(w http.ResponseWriter, r *http.Request) {
	resp, err := h.codexService.Reload(r.Context())
	if err != nil {
		h.logger.Error("Manual dataset reload failed", zap.Error(err))

		status := http.StatusInternalServerError
		if loader.IsLoadError(err) {
			status = http.StatusBadGateway
		}
		h.writeJSON(w, status, models.ErrorResponse{
			Error:   models.ErrorCodeUnavailable,
			Message: err.Error(),
		})
		return
	}

	h.logger.Info("Dataset reloaded on request",
		zap.Int("items", resp.Items),
		zap.Int("recipes", resp.Recipes),
	)
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}
