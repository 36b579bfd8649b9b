package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/9000fm/diggeart/internal/handler"
	"github.com/9000fm/diggeart/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Discover *handler.DiscoverHandler
	Pools    *handler.PoolHandler
	Curator  *handler.CuratorHandler
	Enrich   *handler.EnrichHandler
	Stats    *handler.StatsHandler
	Health   *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Health and metrics (before API group)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	discoverLimit := middleware.NewDiscoverRateLimiter().Handler()
	curatorLimit := middleware.NewCuratorRateLimiter().Handler()

	// API routes
	api := app.Group("/api")

	// Discovery feed and specialized pools
	api.Get("/discover", h.Discover.Feed, discoverLimit)
	api.Get("/mixes", h.Pools.Mixes, discoverLimit)
	api.Get("/samples", h.Pools.Samples, discoverLimit)

	// Curator review workflow
	api.Get("/curator", h.Curator.Next, curatorLimit)
	api.Post("/curator", h.Curator.Decide, curatorLimit)
	api.Post("/curator/undo", h.Curator.Undo, curatorLimit)
	api.Post("/curator/star", h.Curator.ToggleStar, curatorLimit)
	api.Post("/curator/clear-skips", h.Curator.ClearSkips, curatorLimit)
	api.Post("/curator/import", h.Curator.Import, middleware.NewImportRateLimiter().Handler())
	api.Delete("/curator/channels/:channelId", h.Curator.Remove, curatorLimit)

	// Genre enrichment
	api.Get("/enrich", h.Enrich.Run, middleware.NewEnrichRateLimiter().Handler())

	// Stats
	api.Get("/stats", h.Stats.Get, middleware.NewStatsRateLimiter().Handler())
}
