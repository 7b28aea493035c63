package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"bazaar/config"
	_ "bazaar/docs" // swagger spec
	"bazaar/infras/metrics"
	"bazaar/internal/handlers/booking"
	"bazaar/internal/handlers/health"
	"bazaar/internal/handlers/negotiation"
	"bazaar/transport/http/middleware"
)

type DomainHandlers struct {
	Booking     booking.Handler
	Negotiation negotiation.Handler
	Health      health.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	config         *config.Config
	app            middleware.AppMiddleware
	authRole       middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	if r.config.App.CORS.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   r.config.App.CORS.AllowedOrigins,
			AllowedMethods:   r.config.App.CORS.AllowedMethods,
			AllowedHeaders:   r.config.App.CORS.AllowedHeaders,
			AllowCredentials: r.config.App.CORS.AllowCredentials,
			MaxAge:           r.config.App.CORS.MaxAgeSeconds,
		}))
	}

	router.Use(chiMiddleware.Recoverer, r.app.Tracing)

	r.DomainHandlers.Health.Router(router)

	metrics.Register()
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.app.RateLimit(), r.authRole.APIKey, r.authRole.Auth, r.authRole.RBAC)

		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Negotiation.Router(routerGroup)
	})
}

func New(
	cfg *config.Config,
	domainHandlers DomainHandlers,
	app middleware.AppMiddleware,
	authRole middleware.AuthRole,
) Router {
	return Router{
		DomainHandlers: domainHandlers,
		config:         cfg,
		app:            app,
		authRole:       authRole,
	}
}
