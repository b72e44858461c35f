package public

import (
	"mime"
	"net/http"

	"go.uber.org/zap"

	"github.com/shard-legends/codex-service/internal/models"
	"github.com/shard-legends/codex-service/internal/service"
)

// InventoryHandler обрабатывает HTTP запросы проверки инвентаря
type InventoryHandler struct {
	responder
	codexService service.CodexService
}

// NewInventoryHandler создает новый экземпляр InventoryHandler
func NewInventoryHandler(codexService service.CodexService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{
		responder:    responder{logger: logger},
		codexService: codexService,
	}
}

// decodeInventory читает и валидирует тело с инвентарем
func (h *InventoryHandler) decodeInventory(w http.ResponseWriter, r *http.Request) (*models.InventoryRequest, bool) {
	var req models.InventoryRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, models.ErrorCodeBadRequest, "Invalid JSON format", nil)
		return nil, false
	}

	if err := models.ValidateInventoryRequest(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, models.ErrorCodeValidation,
			"Validation failed", models.ValidationDetails(err))
		return nil, false
	}
	return &req, true
}

// Craftable обрабатывает POST /codex/inventory/craftable
func (h *InventoryHandler) Craftable(w http.ResponseWriter, r *http.Request) {
	onlyNew, err := boolQuery(r, "only_new")
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, models.ErrorCodeValidation, err.Error(), nil)
		return
	}

	req, ok := h.decodeInventory(w, r)
	if !ok {
		return
	}

	resp, err := h.codexService.Craftable(r.Context(), req.RawStacks(), onlyNew)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to check craftable recipes")
		return
	}

	h.logger.Info("Craftability checked",
		zap.Int("stacks", len(req.Stacks)),
		zap.Int("craftable", len(resp.Results)),
		zap.Bool("only_new", onlyNew),
		zap.String("request_id", getRequestID(r)),
	)
	h.writeJSONResponse(w, http.StatusOK, resp)
}

// Appraise обрабатывает POST /codex/inventory/appraise
func (h *InventoryHandler) Appraise(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeInventory(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	resp, err := h.codexService.Appraise(r.Context(), req.RawStacks(), q.Get("sort"), q.Get("order"))
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to appraise inventory")
		return
	}
	h.writeJSONResponse(w, http.StatusOK, resp)
}

// Scrape обрабатывает POST /codex/inventory/scrape.
// HTML тело разбирается как сохраненная страница, JSON тело как файл сохранения.
func (h *InventoryHandler) Scrape(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var (
		resp *models.ScrapeResponse
		err  error
	)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		resp, err = h.codexService.ImportSaveFile(r.Context(), r.Body)
	} else {
		resp, err = h.codexService.ScrapePage(r.Context(), r.Body)
	}
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to extract inventory")
		return
	}
	h.writeJSONResponse(w, http.StatusOK, resp)
}
