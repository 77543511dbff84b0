package http

import (
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/punch-analytics/internal/handler/http/middleware"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/jwt"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the deployment details the router needs.
type RouterOptions struct {
	Env         string
	Version     string
	CORSOrigins []string
	// LogOutput defaults to stdout.
	LogOutput io.Writer
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, punchHandler PunchHandler, attendanceHandler AttendanceHandler, statisticsHandler StatisticsHandler) *chi.Mux {
	r := chi.NewRouter()

	out := opts.LogOutput
	if out == nil {
		out = os.Stdout
	}
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "punch-analytics"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
		// the live stream stays open for as long as the client listens
		Skip: func(req *http.Request, respStatus int) bool {
			return req.URL.Path == "/api/v1/attendance/stream"
		},
	}))

	r.Use(middleware.Metrics)
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/snapshot", attendanceHandler.Snapshot)
			r.Get("/stream", attendanceHandler.Stream)
		})

		r.Get("/statistics", statisticsHandler.ForPeriod)

		r.Route("/workers", func(r chi.Router) {
			r.Get("/", attendanceHandler.Workers)
			r.Route("/{worker}", func(r chi.Router) {
				r.Get("/records", attendanceHandler.Records)
				r.Get("/weekly", statisticsHandler.Weekly)
				r.Get("/calendar", statisticsHandler.Calendar)
				r.Get("/summary", statisticsHandler.Summary)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/punches", func(r chi.Router) {
				r.Use(chiMiddleware.AllowContentType("application/json"))
				r.Post("/", punchHandler.Ingest)
				r.Delete("/", punchHandler.Clear)
			})
		})
	})
	return r
}
