package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/linemk/order-days/internal/report"
	"github.com/linemk/order-days/internal/service"
)

const msgNothingToExport = "لا يوجد سطور لتصديرها."

// DayViewHandler обрабатывает GET /api/order-days/{id}/view?search=&not_picked=&not_paid=
func DayViewHandler(log *slog.Logger, reports service.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DayViewHandler"
		logger := log.With(slog.String("op", op))

		dayID, err := pathID(r, "id")
		if err != nil {
			writeError(w, logger, http.StatusBadRequest, err.Error())
			return
		}

		view, err := reports.DayView(r.Context(), dayID)
		if err != nil {
			writeServiceError(w, logger, err, "Failed to load order day.")
			return
		}

		q := r.URL.Query()
		filter := report.Filter{
			Search:        q.Get("search"),
			OnlyNotPicked: queryBool(q.Get("not_picked")),
			OnlyNotPaid:   queryBool(q.Get("not_paid")),
		}
		writeJSON(w, logger, http.StatusOK, view.Snapshot(filter))
	}
}

// ExportHandler обрабатывает GET /api/order-days/{id}/export.csv и export.html.
// Расширение разбирает middleware.URLFormat; без расширения отдаём CSV.
func ExportHandler(log *slog.Logger, reports service.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ExportHandler"
		logger := log.With(slog.String("op", op))

		format, _ := r.Context().Value(middleware.URLFormatCtxKey).(string)
		if format != "" && format != "csv" && format != "html" {
			writeError(w, logger, http.StatusNotFound, "unsupported export format")
			return
		}

		view, ok := loadExportView(w, r, logger, reports)
		if !ok {
			return
		}

		if format == "html" {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			if err := report.WritePrint(w, view.Day, view.Entries); err != nil {
				logger.Error("failed to render report", slog.Any("error", err))
			}
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename(&view.Day.OrderDay, "csv")))
		if err := report.WriteCSV(w, view.Entries); err != nil {
			logger.Error("failed to write csv", slog.Any("error", err))
		}
	}
}

func loadExportView(w http.ResponseWriter, r *http.Request, logger *slog.Logger, reports service.ReportService) (*report.DayView, bool) {
	dayID, err := pathID(r, "id")
	if err != nil {
		writeError(w, logger, http.StatusBadRequest, err.Error())
		return nil, false
	}

	view, err := reports.DayView(r.Context(), dayID)
	if err != nil {
		writeServiceError(w, logger, err, "Failed to load order day.")
		return nil, false
	}
	if len(view.Entries) == 0 {
		writeError(w, logger, http.StatusBadRequest, msgNothingToExport)
		return nil, false
	}
	return view, true
}

func queryBool(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
