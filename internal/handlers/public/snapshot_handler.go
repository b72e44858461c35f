package public

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shard-legends/codex-service/internal/models"
	"github.com/shard-legends/codex-service/internal/service"
)

// SnapshotHandler обрабатывает HTTP запросы сохраненных снимков инвентаря
type SnapshotHandler struct {
	responder
	snapshotService service.SnapshotService
}

// NewSnapshotHandler создает новый экземпляр SnapshotHandler
func NewSnapshotHandler(snapshotService service.SnapshotService, logger *zap.Logger) *SnapshotHandler {
	return &SnapshotHandler{
		responder:       responder{logger: logger},
		snapshotService: snapshotService,
	}
}

// Create обрабатывает POST /codex/snapshots
func (h *SnapshotHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.SaveSnapshotRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, models.ErrorCodeBadRequest, "Invalid JSON format", nil)
		return
	}

	if err := models.ValidateSaveSnapshotRequest(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, models.ErrorCodeValidation,
			"Validation failed", models.ValidationDetails(err))
		return
	}

	snapshot, err := h.snapshotService.Save(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to save snapshot")
		return
	}
	h.writeJSONResponse(w, http.StatusCreated, snapshot)
}

// List обрабатывает GET /codex/snapshots?owner=
func (h *SnapshotHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit", 0)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, models.ErrorCodeValidation, err.Error(), nil)
		return
	}

	snapshots, err := h.snapshotService.List(r.Context(), r.URL.Query().Get("owner"), limit)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to list snapshots")
		return
	}
	if snapshots == nil {
		snapshots = []models.SavedSnapshot{}
	}
	h.writeJSONResponse(w, http.StatusOK, models.SnapshotsResponse{Snapshots: snapshots})
}

// Get обрабатывает GET /codex/snapshots/{id}
func (h *SnapshotHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.snapshotID(w, r)
	if !ok {
		return
	}

	snapshot, err := h.snapshotService.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to get snapshot")
		return
	}
	h.writeJSONResponse(w, http.StatusOK, snapshot)
}

// Delete обрабатывает DELETE /codex/snapshots/{id}
func (h *SnapshotHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.snapshotID(w, r)
	if !ok {
		return
	}

	if err := h.snapshotService.Delete(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err, "Failed to delete snapshot")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Craftable обрабатывает GET /codex/snapshots/{id}/craftable
func (h *SnapshotHandler) Craftable(w http.ResponseWriter, r *http.Request) {
	id, ok := h.snapshotID(w, r)
	if !ok {
		return
	}
	onlyNew, err := boolQuery(r, "only_new")
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, models.ErrorCodeValidation, err.Error(), nil)
		return
	}

	resp, err := h.snapshotService.Evaluate(r.Context(), id, onlyNew)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to evaluate snapshot")
		return
	}
	h.writeJSONResponse(w, http.StatusOK, resp)
}

func (h *SnapshotHandler) snapshotID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(pathParam(r, "id"))
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, models.ErrorCodeBadRequest, "Invalid snapshot ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}
