package api

import (
	"net/http"

	"github.com/Rrens/shoplist/internal/api/handler"
	customMiddleware "github.com/Rrens/shoplist/internal/api/middleware"
	"github.com/Rrens/shoplist/internal/config"
	"github.com/Rrens/shoplist/internal/domain"
	"github.com/Rrens/shoplist/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Deps carries the already-wired components the router exposes over HTTP.
type Deps struct {
	Items   domain.ItemRepository
	List    *service.ListService
	Tokens  *service.TokenService
	DB      handler.Pinger
	Limiter customMiddleware.Limiter
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, deps Deps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.WriteTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:         300,
	}))

	// Health endpoints stay public
	r.Get("/health", handler.HealthCheck)
	r.Get("/ready", handler.ReadyCheck(deps.DB))

	if !cfg.API.Enabled {
		return r
	}

	listHandler := handler.NewListHandler(deps.Items, deps.List)
	authMiddleware := customMiddleware.NewAuthMiddleware(deps.Tokens)
	rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(deps.Limiter)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Use(rateLimitMiddleware.Limit)

		r.Get("/list", listHandler.Get)
		r.Post("/add", listHandler.Add)
		r.Post("/toggle", listHandler.Toggle)
		r.Post("/delete", listHandler.Delete)
		r.Post("/archive", listHandler.Archive)
		r.Post("/done", listHandler.Done)
		r.Post("/nuke", listHandler.Nuke)
	})

	return r
}
