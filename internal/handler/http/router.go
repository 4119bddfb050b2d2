package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(
	attendanceHandler AttendanceHandler,
	requestHandler RequestHandler,
	payrollHandler PayrollHandler,
	kpiHandler KpiHandler,
	sweepHandler SweepHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workforce-ops"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
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

		r.Route("/attendance", func(r chi.Router) {
			r.Post("/check-in", attendanceHandler.CheckIn)
			r.Post("/check-out", attendanceHandler.CheckOut)
			r.Get("/", attendanceHandler.List)
		})

		r.Route("/requests", func(r chi.Router) {
			r.Post("/overtime", requestHandler.SubmitOvertime)
			r.Post("/leave", requestHandler.SubmitLeave)
			r.Post("/late", requestHandler.SubmitLate)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", requestHandler.Get)
				r.Post("/review", requestHandler.Review)
				r.Post("/cancel", requestHandler.Cancel)
			})
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Post("/compute", payrollHandler.Compute)
		})

		r.Route("/kpi", func(r chi.Router) {
			r.Get("/{employeeID}", kpiHandler.GetScore)
		})

		r.Route("/sweeps", func(r chi.Router) {
			r.Post("/auto-expire", sweepHandler.AutoExpireRequests)
			r.Post("/missed-checkouts", sweepHandler.FillMissedCheckouts)
		})
	})
	return r
}
