package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/handler/http/middleware"
	"github.com/shiftwise-hq/timetrack-backend-go/internal/pkg/jwt"
)

func NewRouter(JWTService jwt.Service, shiftHandler ShiftHandler, payrollHandler PayrollHandler, wageHandler WageHandler, frontendURL, env string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timetrack"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", shiftHandler.ListByDay)
				r.Post("/", shiftHandler.Create)
				r.Post("/validate", shiftHandler.Validate)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", shiftHandler.GetByID)
					r.Put("/", shiftHandler.Update)
					r.Delete("/", shiftHandler.Delete)
					r.Post("/check-in", shiftHandler.CheckIn)
					r.Post("/check-out", shiftHandler.CheckOut)
				})
			})

			r.Route("/wages", func(r chi.Router) {
				r.Get("/", wageHandler.GetHistory)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", wageHandler.RecordChange)
				})
			})

			r.Route("/earnings", func(r chi.Router) {
				r.Get("/weekly", payrollHandler.GetWeeklyEarnings)
				r.Post("/recompute", payrollHandler.RecomputeWeek)

				r.Route("/settings", func(r chi.Router) {
					r.Get("/", payrollHandler.GetSettings)

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Put("/", payrollHandler.UpdateSettings)
					})
				})
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}
