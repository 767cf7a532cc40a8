package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wolfman30/submissions-dashboard/internal/auth"
	"github.com/wolfman30/submissions-dashboard/internal/http/handlers"
	httpmiddleware "github.com/wolfman30/submissions-dashboard/internal/http/middleware"
	"github.com/wolfman30/submissions-dashboard/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	Submissions        *handlers.SubmissionsHandler
	Sessions           *handlers.SessionHandler
	AdminAuthSecret    string
	Revoker            auth.Revoker
	LoginLimiter       *httpmiddleware.RateLimiter
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", handlers.HealthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.Sessions != nil {
			login := http.HandlerFunc(cfg.Sessions.Login)
			if cfg.LoginLimiter != nil {
				public.With(httpmiddleware.RateLimit(cfg.LoginLimiter)).Post("/auth/login", login)
			} else {
				public.Post("/auth/login", login)
			}
		}
	})

	// Admin routes (session JWT)
	r.Group(func(protected chi.Router) {
		protected.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret, cfg.Revoker))

		if cfg.Sessions != nil {
			protected.Post("/auth/logout", cfg.Sessions.Logout)
		}
		if cfg.Submissions != nil {
			protected.Route("/admin", func(admin chi.Router) {
				admin.Get("/submissions", cfg.Submissions.ListSubmissions)
				admin.Post("/submissions/refresh", cfg.Submissions.Refresh)
				admin.Get("/whatsapp-link", cfg.Submissions.WhatsAppLink)
				admin.Get("/export/csv", cfg.Submissions.ExportCSV)
				admin.Get("/export/pdf", cfg.Submissions.ExportPDF)
			})
		}
	})

	return r
}
