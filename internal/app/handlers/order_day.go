package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/order-days/internal/domain/models"
	"github.com/linemk/order-days/internal/service"
)

// ListDaysHandler обрабатывает GET /api/order-days
func ListDaysHandler(log *slog.Logger, days service.OrderDayService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListDaysHandler"
		logger := log.With(slog.String("op", op))

		list, err := days.ListDays(r.Context())
		if err != nil {
			writeServiceError(w, logger, err, "Failed to load order days.")
			return
		}
		writeJSON(w, logger, http.StatusOK, list)
	}
}

// GetDayHandler обрабатывает GET /api/order-days/{id}
func GetDayHandler(log *slog.Logger, days service.OrderDayService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.GetDayHandler"
		logger := log.With(slog.String("op", op))

		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, logger, http.StatusBadRequest, err.Error())
			return
		}

		day, err := days.GetDay(r.Context(), id)
		if err != nil {
			writeServiceError(w, logger, err, "Failed to load order day.")
			return
		}
		writeJSON(w, logger, http.StatusOK, day)
	}
}

// CreateDayHandler обрабатывает POST /api/order-days
func CreateDayHandler(log *slog.Logger, days service.OrderDayService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateDayHandler"
		logger := log.With(slog.String("op", op))

		var req models.NewOrderDay
		if err := decodeJSON(r, &req, false); err != nil {
			writeError(w, logger, http.StatusBadRequest, err.Error())
			return
		}

		day, err := days.CreateDay(r.Context(), req)
		if err != nil {
			writeServiceError(w, logger, err, "Failed to create order day.")
			return
		}
		writeJSON(w, logger, http.StatusCreated, day)
	}
}

// PatchDayHandler обрабатывает PATCH /api/order-days/{id}: меняется только actual_spent_ils
func PatchDayHandler(log *slog.Logger, days service.OrderDayService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.PatchDayHandler"
		logger := log.With(slog.String("op", op))

		id, err := pathID(r, "id")
		if err != nil {
			writeError(w, logger, http.StatusBadRequest, err.Error())
			return
		}

		var req models.ActualSpentPatch
		if err := decodeJSON(r, &req, false); err != nil {
			writeError(w, logger, http.StatusBadRequest, err.Error())
			return
		}

		day, err := days.PatchActualSpent(r.Context(), id, req)
		if err != nil {
			writeServiceError(w, logger, err, "Failed to update order day.")
			return
		}
		writeJSON(w, logger, http.StatusOK, day)
	}
}
