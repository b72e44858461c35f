package public

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/shard-legends/codex-service/internal/models"
	"github.com/shard-legends/codex-service/internal/service"
)

// CodexHandler обрабатывает HTTP запросы справочника предметов и рецептов
type CodexHandler struct {
	responder
	codexService service.CodexService
}

// NewCodexHandler создает новый экземпляр CodexHandler
func NewCodexHandler(codexService service.CodexService, logger *zap.Logger) *CodexHandler {
	return &CodexHandler{
		responder:    responder{logger: logger},
		codexService: codexService,
	}
}

// GetItems обрабатывает GET /codex/items
func (h *CodexHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ItemFilter{
		Type:   q.Get("type"),
		Rarity: q.Get("rarity"),
		Sort:   q.Get("sort"),
		Order:  q.Get("order"),
	}

	var err error
	if filter.Limit, err = intQuery(r, "limit", 0); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, models.ErrorCodeValidation, err.Error(), nil)
		return
	}
	if filter.Offset, err = intQuery(r, "offset", 0); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, models.ErrorCodeValidation, err.Error(), nil)
		return
	}

	resp, err := h.codexService.ListItems(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to list items")
		return
	}
	h.writeJSONResponse(w, http.StatusOK, resp)
}

// GetItem обрабатывает GET /codex/items/{name}
func (h *CodexHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	name := pathParam(r, "name")

	page, err := h.codexService.GetItemPage(r.Context(), name)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to get item")
		return
	}
	h.writeJSONResponse(w, http.StatusOK, page)
}

// GetRecipes обрабатывает GET /codex/recipes
func (h *CodexHandler) GetRecipes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.RecipeFilter{
		Group:    q.Get("group"),
		Subgroup: q.Get("subgroup"),
		Uses:     q.Get("uses"),
		Sort:     q.Get("sort"),
		Order:    q.Get("order"),
	}

	resp, err := h.codexService.ListRecipes(r.Context(), filter)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to list recipes")
		return
	}
	h.writeJSONResponse(w, http.StatusOK, resp)
}

// Search обрабатывает GET /codex/search
func (h *CodexHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, models.ErrorCodeValidation,
			"Query parameter q is required", nil)
		return
	}

	limit, err := intQuery(r, "limit", 0)
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, models.ErrorCodeValidation, err.Error(), nil)
		return
	}

	resp, err := h.codexService.Search(r.Context(), query, limit)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to search items")
		return
	}
	h.writeJSONResponse(w, http.StatusOK, resp)
}

// GetPage обрабатывает GET /codex/page/{query}
func (h *CodexHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	query := pathParam(r, "query")

	page, err := h.codexService.ResolvePage(r.Context(), query)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to resolve page")
		return
	}

	h.logger.Debug("Page resolved",
		zap.String("query", query),
		zap.Stringer("kind", page.Kind),
		zap.String("request_id", getRequestID(r)),
	)
	h.writeJSONResponse(w, http.StatusOK, page)
}

// GetCategories обрабатывает GET /codex/categories
func (h *CodexHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	resp, err := h.codexService.Categories(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to list categories")
		return
	}
	h.writeJSONResponse(w, http.StatusOK, resp)
}
