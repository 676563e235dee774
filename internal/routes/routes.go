package routes

import (
	"database/sql"
	"net/http"

	"github.com/evn/sop_backendl/config"
	"github.com/evn/sop_backendl/internal/handlers"
	requestHandlers "github.com/evn/sop_backendl/internal/handlers/requests"
	scheduleHandlers "github.com/evn/sop_backendl/internal/handlers/schedule"
	"github.com/evn/sop_backendl/internal/middleware"
	"github.com/evn/sop_backendl/internal/pkg/permissions"
	"github.com/evn/sop_backendl/internal/pkg/response"
	"github.com/evn/sop_backendl/internal/repositories"
	"github.com/evn/sop_backendl/internal/services/generator"
	shiftService "github.com/evn/sop_backendl/internal/services/shift"
	"github.com/evn/sop_backendl/internal/services/ws"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"github.com/redis/go-redis/v9"
)

// Setup инициализирует и возвращает настроенный маршрутизатор.
func Setup(cfg *config.Config, database *sql.DB, redisClient *redis.Client) *chi.Mux {
	jwtAuth := jwtauth.New("HS256", []byte(cfg.JwtSecret), nil)

	shiftRepo := repositories.NewShiftRepository(database)
	requestRepo := repositories.NewRequestRepository(database)
	permRepo := repositories.NewPermissionRepository(database)

	wsManager := ws.NewManager()
	countersCache := shiftService.NewCountersCache(redisClient)
	lifecycle := shiftService.NewService(shiftRepo, requestRepo, countersCache, wsManager)
	genClient := generator.NewClient(cfg.ScheduleGenURL)

	router := chi.NewRouter()
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(jwtauth.Verifier(jwtAuth))
	router.Use(middleware.AddUserIDToContext())

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.Group(func(r chi.Router) {
		r.Use(jwtauth.Authenticator(jwtAuth))
		r.Use(middleware.LoadActor(permRepo))

		r.Get("/api/schedule", scheduleHandlers.GetScheduleHandler(database))
		r.Post("/api/shift-requests", requestHandlers.CreateRequestHandler(lifecycle))
		r.Get("/api/ws", handlers.ServeWSHandler(wsManager))

		r.With(middleware.RequireAny(permissions.RequestsView, permissions.RequestsApprove)).
			Get("/api/admin/shift-requests", requestHandlers.ListShiftRequestsHandler(database, lifecycle))
		r.With(middleware.RequireAny(permissions.RequestsApprove)).
			Post("/api/admin/shift-requests/{requestID}/approve", requestHandlers.ApproveRequestHandler(lifecycle))
		r.With(middleware.RequireAny(permissions.RequestsApprove)).
			Post("/api/admin/shift-requests/{requestID}/reject", requestHandlers.RejectRequestHandler(lifecycle))
		r.With(middleware.RequireAny(permissions.RequestsView, permissions.RequestsApprove)).
			Post("/api/admin/shift-requests/{requestID}/viewed", requestHandlers.MarkViewedHandler(lifecycle))

		r.With(middleware.RequireAny(permissions.ShiftsCreate)).
			Post("/api/admin/shifts", scheduleHandlers.CreateDirectShiftHandler(lifecycle))
		r.With(middleware.RequireAny(permissions.ShiftsEdit)).
			Put("/api/admin/shifts/{userShiftID}", scheduleHandlers.UpdateShiftHandler(lifecycle))
		r.With(middleware.RequireAny(permissions.ShiftsDelete)).
			Delete("/api/admin/shifts/{userShiftID}", scheduleHandlers.DeleteShiftHandler(lifecycle))

		r.With(middleware.RequireAny(permissions.ScheduleGenerate)).
			Post("/api/admin/schedule/generate", scheduleHandlers.GenerateScheduleHandler(genClient, lifecycle))
		r.With(middleware.RequireAny(permissions.ScheduleExport)).
			Get("/api/admin/schedule/export", scheduleHandlers.ExportScheduleHandler(database))
		r.With(middleware.RequireAny(permissions.ScheduleExport)).
			Post("/api/admin/schedule/publish", scheduleHandlers.PublishScheduleHandler(database, cfg))
	})

	return router
}
