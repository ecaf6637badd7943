package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Pinger - всё, что умеет вернуть время БД
type Pinger interface {
	Ping(ctx context.Context) (time.Time, error)
}

type HealthResponse struct {
	Status string     `json:"status"`
	Time   *time.Time `json:"time,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// HealthHandler обрабатывает GET /api/health, без авторизации
func HealthHandler(log *slog.Logger, pinger Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.HealthHandler"
		logger := log.With(slog.String("op", op))

		now, err := pinger.Ping(r.Context())
		if err != nil {
			logger.Error("health check failed", slog.Any("error", err))
			writeJSON(w, logger, http.StatusInternalServerError, HealthResponse{Status: "error", Error: err.Error()})
			return
		}

		writeJSON(w, logger, http.StatusOK, HealthResponse{Status: "ok", Time: &now})
	}
}
