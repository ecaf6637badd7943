package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/order-days/internal/domain/models"
	"github.com/linemk/order-days/internal/service"
)

type DeleteResponse struct {
	Success bool `json:"success"`
}

// ListEntriesHandler обрабатывает GET /api/order-days/{id}/entries
func ListEntriesHandler(log *slog.Logger, entries service.EntryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ListEntriesHandler"
		logger := log.With(slog.String("op", op))

		dayID, err := pathID(r, "id")
		if err != nil {
			writeError(w, logger, http.StatusBadRequest, err.Error())
			return
		}

		list, err := entries.ListEntries(r.Context(), dayID)
		if err != nil {
			writeServiceError(w, logger, err, "Failed to fetch entries")
			return
		}
		writeJSON(w, logger, http.StatusOK, list)
	}
}

// CreateEntryHandler обрабатывает POST /api/order-days/{id}/entries
func CreateEntryHandler(log *slog.Logger, entries service.EntryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CreateEntryHandler"
		logger := log.With(slog.String("op", op))

		dayID, err := pathID(r, "id")
		if err != nil {
			writeError(w, logger, http.StatusBadRequest, err.Error())
			return
		}

		var req models.NewEntry
		if err := decodeJSON(r, &req, false); err != nil {
			writeError(w, logger, http.StatusBadRequest, err.Error())
			return
		}

		entry, err := entries.CreateEntry(r.Context(), dayID, req)
		if err != nil {
			writeServiceError(w, logger, err, "Failed to create entry")
			return
		}
		writeJSON(w, logger, http.StatusCreated, entry)
	}
}

// UpdateEntryHandler обрабатывает PATCH /api/entries/{entryId}.
// Незнакомые поля в теле - ошибка 400, а не запись в произвольную колонку.
func UpdateEntryHandler(log *slog.Logger, entries service.EntryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.UpdateEntryHandler"
		logger := log.With(slog.String("op", op))

		entryID, err := pathID(r, "entryId")
		if err != nil {
			writeError(w, logger, http.StatusBadRequest, err.Error())
			return
		}

		var patch models.EntryPatch
		if err := decodeJSON(r, &patch, true); err != nil {
			writeError(w, logger, http.StatusBadRequest, err.Error())
			return
		}

		entry, err := entries.UpdateEntry(r.Context(), entryID, patch)
		if err != nil {
			writeServiceError(w, logger, err, "Failed to update entry")
			return
		}
		writeJSON(w, logger, http.StatusOK, entry)
	}
}

// DeleteEntryHandler обрабатывает DELETE /api/entries/{entryId}
func DeleteEntryHandler(log *slog.Logger, entries service.EntryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteEntryHandler"
		logger := log.With(slog.String("op", op))

		entryID, err := pathID(r, "entryId")
		if err != nil {
			writeError(w, logger, http.StatusBadRequest, err.Error())
			return
		}

		if err := entries.DeleteEntry(r.Context(), entryID); err != nil {
			writeServiceError(w, logger, err, "Failed to delete entry")
			return
		}
		writeJSON(w, logger, http.StatusOK, DeleteResponse{Success: true})
	}
}
