package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dtroode/jobboard/internal/api/http/handler"
	"github.com/dtroode/jobboard/internal/api/http/middleware"
	"github.com/dtroode/jobboard/internal/logger"
)

// Recorder is the metrics sink of the HTTP API.
type Recorder interface {
	middleware.HTTPRecorder
	middleware.RateLimitRecorder
	handler.LookupRecorder
}

// Deps holds everything the router wires together.
type Deps struct {
	AuthService   handler.AuthService
	Authenticator middleware.Authenticator
	DB            handler.Pinger
	Limiter       *middleware.RateLimiter
	Recorder      Recorder
	Metrics       http.Handler
	Version       string
	Logger        *logger.Logger
}

// New builds the chi router of the identity backend.
func New(deps Deps) *chi.Mux {
	cm := middleware.ContextManager{}

	var httpRecorder middleware.HTTPRecorder
	var lookupRecorder handler.LookupRecorder
	if deps.Recorder != nil {
		httpRecorder = deps.Recorder
		lookupRecorder = deps.Recorder
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logging(deps.Logger, httpRecorder))

	r.Method(http.MethodGet, "/health", handler.NewHealth(deps.DB, deps.Version))
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	auth := handler.NewAuth(deps.AuthService, cm, lookupRecorder, deps.Logger)
	admin := handler.NewAdmin(deps.AuthService, cm, deps.Logger)
	requireAuth := middleware.Auth(deps.Authenticator, cm, deps.Logger)

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if deps.Limiter != nil {
				r.Use(deps.Limiter.Middleware)
			}
			r.Post("/login", auth.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", auth.Me)
			r.Post("/change-password", auth.ChangePassword)
			r.Patch("/onboarding", auth.UpdateOnboarding)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/users", admin.ProvisionUser)
	})

	return r
}
