package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/order-days/internal/service"
)

// ErrorResponse - тело любого ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	writeJSON(w, logger, status, ErrorResponse{Error: msg})
}

// writeServiceError переводит ошибку сервиса в HTTP-статус.
// Текст внутренней ошибки клиенту не отдаётся, только в лог.
func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error, internalMsg string) {
	var (
		vErr  *service.ValidationError
		nfErr *service.NotFoundError
	)
	switch {
	case errors.As(err, &vErr):
		writeError(w, logger, http.StatusBadRequest, vErr.Msg)
	case errors.As(err, &nfErr):
		writeError(w, logger, http.StatusNotFound, nfErr.Msg)
	case errors.Is(err, service.ErrValidation):
		writeError(w, logger, http.StatusBadRequest, "invalid request")
	case errors.Is(err, service.ErrNotFound):
		writeError(w, logger, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, logger, http.StatusUnauthorized, service.MsgInvalidCredentials)
	default:
		logger.Error(internalMsg, slog.Any("error", err))
		writeError(w, logger, http.StatusInternalServerError, internalMsg)
	}
}

// decodeJSON читает тело запроса; strict запрещает незнакомые поля
func decodeJSON(r *http.Request, dst interface{}, strict bool) error {
	dec := json.NewDecoder(r.Body)
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// pathID достаёт числовой идентификатор из URL
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}
