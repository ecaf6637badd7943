package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/linemk/order-days/internal/app/handlers"
	"github.com/linemk/order-days/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/order-days/internal/lib/logger/handlers/urllog"
	"github.com/linemk/order-days/internal/service"
	"github.com/linemk/order-days/internal/storage"
)

// Services - бизнес-слой, который нужен роутеру
type Services struct {
	Auth    service.AuthServiceInterface
	Days    service.OrderDayService
	Entries service.EntryService
	Stats   service.StatsService
	Reports service.ReportService
}

// NewServices собирает сервисы поверх репозиториев postgres
func (a *App) NewServices() Services {
	userRepo := storage.NewUserRepository(a.DB)
	dayRepo := storage.NewOrderDayRepository(a.DB)
	entryRepo := storage.NewEntryRepository(a.DB)
	statsRepo := storage.NewStatsRepository(a.DB)

	return Services{
		Auth:    service.NewAuthService(a.Logger, userRepo, a.Config.JWT.Secret, a.Config.JWT.TokenTTL),
		Days:    service.NewOrderDayService(a.Logger, dayRepo),
		Entries: service.NewEntryService(a.Logger, entryRepo),
		Stats:   service.NewStatsService(a.Logger, statsRepo),
		Reports: service.NewReportService(a.Logger, dayRepo, entryRepo),
	}
}

// NewRouter регистрирует все маршруты API.
// Каждый маршрут объявлен ровно один раз.
func NewRouter(log *slog.Logger, jwtSecret string, svc Services) http.Handler {
	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(middleware.Compress(5, "application/json", "text/csv", "text/html"))

	router.Route("/api", func(r chi.Router) {
		// открытые эндпоинты
		r.Get("/health", handlers.HealthHandler(log, svc.Stats))
		r.Post("/auth/login", handlers.LoginHandler(log, svc.Auth))

		r.Group(func(r chi.Router) {
			r.Use(jwtmiddleware.NewJWTMiddleware(log, jwtSecret))

			r.Route("/order-days", func(r chi.Router) {
				r.Get("/", handlers.ListDaysHandler(log, svc.Days))
				r.Post("/", handlers.CreateDayHandler(log, svc.Days))

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", handlers.GetDayHandler(log, svc.Days))
					r.Patch("/", handlers.PatchDayHandler(log, svc.Days))
					r.Get("/entries", handlers.ListEntriesHandler(log, svc.Entries))
					r.Post("/entries", handlers.CreateEntryHandler(log, svc.Entries))
					r.Get("/view", handlers.DayViewHandler(log, svc.Reports))
					r.Get("/export", handlers.ExportHandler(log, svc.Reports))
				})
			})

			r.Patch("/entries/{entryId}", handlers.UpdateEntryHandler(log, svc.Entries))
			r.Delete("/entries/{entryId}", handlers.DeleteEntryHandler(log, svc.Entries))

			r.Get("/stats/summary", handlers.StatsSummaryHandler(log, svc.Stats))
		})
	})

	return router
}
