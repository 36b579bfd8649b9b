package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"

	"github.com/9000fm/diggeart/internal/cache"
	"github.com/9000fm/diggeart/internal/config"
	"github.com/9000fm/diggeart/internal/db"
	"github.com/9000fm/diggeart/internal/genres"
	"github.com/9000fm/diggeart/internal/handler"
	"github.com/9000fm/diggeart/internal/middleware"
	"github.com/9000fm/diggeart/internal/repository"
	"github.com/9000fm/diggeart/internal/router"
	"github.com/9000fm/diggeart/internal/service"
	"github.com/9000fm/diggeart/internal/spotify"
	"github.com/9000fm/diggeart/internal/youtube"
)

const enrichInterval = 6 * time.Hour

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	middleware.InitLogger(cfg.LogLevel, "diggeart")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	repo := repository.NewReviewRepo(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	handler.InitMetrics(pool)

	store := cache.New(time.Duration(cfg.CacheTTLMinutes) * time.Minute)
	store.Observe(handler.Metrics.CacheHits.Inc, handler.Metrics.CacheMisses.Inc)

	ytClient := youtube.NewClient(cfg.YouTubeAPIKey)
	spClient := spotify.NewClient(cfg.SpotifyClientID, cfg.SpotifyClientSecret)
	genreClient := genres.NewClient(cfg.DiscogsToken)

	fetchSvc := service.NewFetchService(ytClient, store)
	poolSvc := service.NewPoolService(fetchSvc, repo, store)
	poolSvc.ObserveBuild(func(pool string, size int) {
		handler.Metrics.PoolBuildsTotal.WithLabelValues(pool).Inc()
		handler.Metrics.PoolSize.WithLabelValues(pool).Set(float64(size))
	})
	discoverSvc := service.NewDiscoverService(spClient, poolSvc)
	curatorSvc := service.NewCuratorService(repo, fetchSvc, ytClient)
	enrichSvc := service.NewEnrichService(repo, genreClient)
	statsSvc := service.NewStatsService(repo, poolSvc, store)

	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	enrichWorker := service.NewEnrichWorker(enrichSvc, enrichInterval)
	go enrichWorker.Start(workerCtx)
	defer enrichWorker.Stop()

	app := fiber.New(fiber.Config{
		AppName:      "Diggeart API",
		ServerHeader: "Diggeart",
	})

	router.Setup(app, &router.Handlers{
		Discover: handler.NewDiscoverHandler(discoverSvc),
		Pools:    handler.NewPoolHandler(poolSvc),
		Curator:  handler.NewCuratorHandler(curatorSvc),
		Enrich:   handler.NewEnrichHandler(enrichSvc),
		Stats:    handler.NewStatsHandler(statsSvc),
		Health:   handler.NewHealthHandler(pool),
	}, cfg.CORSOrigins)

	log.Printf("Diggeart backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	log.Fatal(app.Listen(":" + cfg.Port))
}
