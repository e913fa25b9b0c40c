package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/handler"
	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Recommend    *handler.RecommendHandler
	Subscription *handler.SubscriptionHandler
	Health       *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Health checks (before API group)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)

	// Prometheus metrics
	app.Get("/metrics", handler.MetricsHandler())

	// Per-route rate limiters. Recommendation and discovery runs fan out
	// many upstream API calls, so they get the tightest budgets.
	recommendLimiter := middleware.NewRecommendRateLimiter()
	discoveryLimiter := middleware.NewDiscoveryRateLimiter()
	subscriptionsLimiter := middleware.NewSubscriptionsRateLimiter()
	readLimiter := middleware.NewReadRateLimiter()

	// API routes
	api := app.Group("/api")

	// Subscription routes
	api.Get("/subscriptions", h.Subscription.List, readLimiter.Handler())
	api.Put("/subscriptions", h.Subscription.Replace, subscriptionsLimiter.Handler())

	// Recommendation routes
	api.Post("/recommendations", h.Recommend.Recommend, recommendLimiter.Handler())
	api.Get("/recommendations/:channelId/latest", h.Recommend.LatestRun, readLimiter.Handler())

	// Discovery routes
	api.Post("/discoveries", h.Recommend.Discover, discoveryLimiter.Handler())
}
