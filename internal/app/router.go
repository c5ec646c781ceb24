package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/codenamekii/Jobless/internal/applications"
	"github.com/codenamekii/Jobless/internal/auth"
	"github.com/codenamekii/Jobless/internal/dashboard"
	"github.com/codenamekii/Jobless/internal/documents"
	"github.com/codenamekii/Jobless/internal/observability"
	"github.com/codenamekii/Jobless/internal/platform/httpx"
	"github.com/codenamekii/Jobless/internal/reminders"
	"github.com/codenamekii/Jobless/internal/shared"
	"github.com/codenamekii/Jobless/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger              *slog.Logger
	Config              *Config
	Gate                *auth.Middleware
	AuthHandler         *auth.Handler
	ApplicationsHandler *applications.Handler
	RemindersHandler    *reminders.Handler
	DocumentsHandler    *documents.Handler
	DashboardHandler    *dashboard.Handler
	JobHandler          *jobs.Handler
	Metrics             *observability.Metrics
}

// NewRouter constructs the chi.Router with Jobless defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "OK"})
	})

	// Public greeting with optional personalisation.
	r.With(params.Gate.OptionalAuth).Get("/", func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{"service": "jobless-api"}
		if identity, ok := shared.IdentityFromContext(r.Context()); ok {
			payload["fullName"] = identity.FullName
		}
		httpx.OK(w, http.StatusOK, payload)
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Route("/api", func(r chi.Router) {
		r.Use(params.Gate.RequireAuth)
		if params.ApplicationsHandler != nil {
			r.Route("/applications", params.ApplicationsHandler.MountRoutes)
		}
		if params.RemindersHandler != nil {
			r.Route("/reminders", params.RemindersHandler.MountRoutes)
		}
		if params.DocumentsHandler != nil {
			r.Route("/documents", params.DocumentsHandler.MountRoutes)
		}
		if params.DashboardHandler != nil {
			r.Route("/dashboard", params.DashboardHandler.MountRoutes)
		}
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
