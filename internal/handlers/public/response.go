package public

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/shard-legends/codex-service/internal/models"
	"github.com/shard-legends/codex-service/internal/service"
)

// maxBodyBytes ограничивает размер тела запроса (сохраненные страницы бывают большими)
const maxBodyBytes = 8 << 20

// responder содержит общие методы записи ответов для обработчиков
type responder struct {
	logger *zap.Logger
}

// writeJSONResponse отправляет JSON ответ
func (h *responder) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// writeErrorResponse отправляет JSON ответ с ошибкой
func (h *responder) writeErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string, details map[string]interface{}) {
	errorResponse := models.ErrorResponse{
		Error:   errorCode,
		Message: message,
		Details: details,
	}

	h.writeJSONResponse(w, statusCode, errorResponse)
}

// writeServiceError преобразует ошибку сервиса в HTTP ответ
func (h *responder) writeServiceError(w http.ResponseWriter, r *http.Request, err error, message string) {
	var notFound *service.NotFoundError
	switch {
	case errors.As(err, &notFound):
		details := map[string]interface{}{"query": notFound.Query}
		if len(notFound.Suggestions) > 0 {
			details["suggestions"] = notFound.Suggestions
		}
		h.writeErrorResponse(w, http.StatusNotFound, models.ErrorCodeNotFound, notFound.Error(), details)

	case errors.Is(err, service.ErrDatasetNotLoaded):
		h.writeErrorResponse(w, http.StatusServiceUnavailable, models.ErrorCodeDatasetMissing,
			"Catalog data has not been loaded yet", nil)

	case errors.Is(err, service.ErrSnapshotsDisabled):
		h.writeErrorResponse(w, http.StatusServiceUnavailable, models.ErrorCodeUnavailable,
			"Saved snapshots are not configured", nil)

	case errors.Is(err, models.ErrInvalidSort),
		errors.Is(err, models.ErrInvalidOrder),
		errors.Is(err, models.ErrInvalidRarity),
		errors.Is(err, service.ErrInvalidInput):
		h.writeErrorResponse(w, http.StatusBadRequest, models.ErrorCodeBadRequest, err.Error(), nil)

	default:
		h.logger.Error(message,
			zap.Error(err),
			zap.String("path", r.URL.Path),
			zap.String("request_id", getRequestID(r)),
		)
		h.writeErrorResponse(w, http.StatusInternalServerError, models.ErrorCodeInternalError, message, nil)
	}
}

// decodeJSONBody читает JSON тело запроса с ограничением размера
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// intQuery читает целочисленный query параметр; пустое значение дает def
func intQuery(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, errors.New(name + " must be a non-negative integer")
	}
	return v, nil
}

// boolQuery читает логический query параметр
func boolQuery(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errors.New(name + " must be a boolean")
	}
	return v, nil
}

// pathParam возвращает декодированный параметр пути
func pathParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// getRequestID извлекает request ID из контекста или заголовков
func getRequestID(r *http.Request) string {
	if requestID := middleware.GetReqID(r.Context()); requestID != "" {
		return requestID
	}
	if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
		return requestID
	}
	return "unknown"
}
