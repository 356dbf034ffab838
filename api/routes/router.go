package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harborcommerce/backoffice-backend/api/controllers"
	"github.com/harborcommerce/backoffice-backend/api/middleware"
	"github.com/harborcommerce/backoffice-backend/internal/dashboard"
	"github.com/harborcommerce/backoffice-backend/internal/storefront"
	"github.com/harborcommerce/backoffice-backend/pkg/config"
	"github.com/harborcommerce/backoffice-backend/pkg/logger"
	"github.com/harborcommerce/backoffice-backend/pkg/redis"
)

// upstreamPinger is the slice of the commerce client the readiness probe
// needs.
type upstreamPinger interface {
	Ping(ctx context.Context) error
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	upstream upstreamPinger,
	dashboardService dashboard.Service,
	storefrontService storefront.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	apiPolicy := middleware.NewRateLimitPolicy(
		"api",
		cfg.RateLimit.Window,
		cfg.RateLimit.TokenLimit,
		cfg.RateLimit.IPLimit,
	)
	storefrontPolicy := middleware.NewRateLimitPolicy(
		"storefront",
		cfg.RateLimit.Window,
		cfg.RateLimit.TokenLimit,
		cfg.RateLimit.IPLimit,
	)

	probes := make([]controllers.Probe, 0, 2)
	if redisClient != nil {
		probes = append(probes, controllers.Probe{Name: "redis", Ping: redisClient.Ping})
	}
	if upstream != nil {
		probes = append(probes, controllers.Probe{Name: "upstream", Ping: upstream.Ping})
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, probes...))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(logg, "admin", "staff"))
		r.Use(middleware.RequireShop(logg))
		if redisClient != nil {
			r.Use(middleware.RateLimit(apiPolicy, redisClient, logg))
		}

		r.Get("/ping", controllers.PrivatePing())
		r.Get("/dashboard", controllers.DashboardOverview(dashboardService, logg))
		r.Get("/orders", controllers.DashboardOrders(dashboardService, logg))
		r.Get("/customers", controllers.DashboardCustomers(dashboardService, logg))
		r.Get("/products", controllers.DashboardProducts(dashboardService, logg))

		r.Route("/exports", func(r chi.Router) {
			r.Post("/orders", controllers.ExportOrders(dashboardService, logg))
			r.Post("/customers", controllers.ExportCustomers(dashboardService, logg))
		})
	})

	r.Route("/api/storefront/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole(logg, "customer"))
		if redisClient != nil {
			r.Use(middleware.RateLimit(storefrontPolicy, redisClient, logg))
		}

		r.Get("/account", controllers.StorefrontAccount(storefrontService, logg))
	})

	return r
}
