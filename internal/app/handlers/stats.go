package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/order-days/internal/service"
)

// StatsSummaryHandler обрабатывает GET /api/stats/summary
func StatsSummaryHandler(log *slog.Logger, stats service.StatsService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.StatsSummaryHandler"
		logger := log.With(slog.String("op", op))

		summary, err := stats.Summary(r.Context())
		if err != nil {
			writeServiceError(w, logger, err, "فشل في تحميل الإحصائيات.")
			return
		}
		writeJSON(w, logger, http.StatusOK, summary)
	}
}
