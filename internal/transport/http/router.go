package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/jobportal-auth/internal/application/account"
	"github.com/jobportal-auth/internal/application/profile"
	"github.com/jobportal-auth/internal/application/verification"
	"github.com/jobportal-auth/internal/config"
	"github.com/jobportal-auth/internal/domain"
	"github.com/jobportal-auth/internal/pkg/ratelimit"
	"github.com/jobportal-auth/internal/transport/http/handler"
	appmiddleware "github.com/jobportal-auth/internal/transport/http/middleware"
)

// Deps holds the application services the router exposes.
type Deps struct {
	Verifier  verification.Protocol
	Accounts  account.Service
	Profiles  profile.Service
	Tokens    appmiddleware.AccessVerifier
	IPLimiter *ratelimit.Keyed
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	if cfg.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	limit := appmiddleware.RateLimit(deps.IPLimiter)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(deps.Verifier, deps.Accounts)
	accountH := handler.NewAccountHandler(deps.Accounts)
	profileH := handler.NewProfileHandler(deps.Profiles)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)

		// Public auth endpoints, throttled per client IP.
		r.Group(func(r chi.Router) {
			r.Use(limit)

			r.Post("/auth/otp/request", authH.RequestOTP)
			r.Post("/auth/otp/verify", authH.VerifyOTP)
			r.Post("/auth/register", authH.Register)
			r.Post("/auth/login", authH.Login)
			r.Post("/auth/password/reset", authH.ResetPassword)
			r.Post("/auth/token/refresh", authH.Refresh)

			r.Post("/accounts/register", accountH.Register)
			r.Post("/accounts/verify-email", accountH.VerifyEmail)
			r.Post("/accounts/resend-otp", accountH.ResendOTP)
		})

		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(deps.Tokens))
			r.Use(appmiddleware.RequireRole(domain.RoleJobSeeker, domain.RoleEmployer, domain.RoleRecruiter, domain.RoleAdmin))

			r.Get("/profile", profileH.Get)
			r.Put("/profile", profileH.Update)
			r.Patch("/profile", profileH.Update)
		})
	})

	return r
}
