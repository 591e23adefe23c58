package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"whoof-notifications/internal/config"
	"whoof-notifications/pkg/jwt"
)

// NewRouter wires the middleware stack and all routes
func NewRouter(cfg *config.HTTPConfig, h *Handler, wh *WebhookHandler, tokens *jwt.TokenManager) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = cfg.RequestsPerSecond
		}
		r.Use(RateLimitMiddleware(cfg.RequestsPerSecond, burst))
	}

	r.Get("/healthz", h.Health)

	// Webhooks carry their own signature auth and skip the bearer flow
	r.Post("/webhooks/stripe", wh.Stripe)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/notifications/send", h.Send)

		r.Group(func(r chi.Router) {
			r.Use(AdminOnly(tokens))
			r.Post("/notifications/broadcast", h.Broadcast)
		})

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/recommendations", h.Recommendations)
			r.Post("/contextual-events", h.ContextualEvents)
			r.Post("/challenges/{challengeID}/progress", h.Progress)
			r.Get("/challenges/{challengeID}/progress", h.ChallengeProgress)
		})
	})

	return r
}
