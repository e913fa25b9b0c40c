package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/config"
	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/db"
	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/handler"
	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/middleware"
	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/repository"
	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/router"
	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/service"
	"github.com/mathieu-neron/TubeScout/tubescout-go/internal/youtube"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "tubescout-api")

	if cfg.YouTubeAPIKey == "" {
		log.Fatal("YOUTUBE_API_KEY is required")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	ytClient := youtube.NewClient(cfg.YouTubeAPIKey)
	provider := service.NewCachedProvider(ytClient, cache)

	subscriptionRepo := repository.NewSubscriptionRepo(pool)
	recommendationRepo := repository.NewRecommendationRepo(pool)

	textSvc := service.NewTextSimilarityService()
	similaritySvc := service.NewSimilarityService(textSvc)
	rankerSvc := service.NewRankerService(provider, similaritySvc)
	discoverySvc := service.NewDiscoveryService(provider, similaritySvc)

	handler.InitMetrics(pool)
	provider.OnHit = handler.Metrics.CacheHits.Inc
	provider.OnMiss = handler.Metrics.CacheMisses.Inc

	handlers := &router.Handlers{
		Recommend:    handler.NewRecommendHandler(rankerSvc, discoverySvc, subscriptionRepo, recommendationRepo, int64(cfg.MinSubscribers)),
		Subscription: handler.NewSubscriptionHandler(subscriptionRepo),
		Health:       handler.NewHealthHandler(pool, cache.Client()),
	}

	app := fiber.New(fiber.Config{
		AppName:      "TubeScout API",
		ServerHeader: "TubeScout",
	})

	router.Setup(app, handlers, cfg.CORSOrigins)

	worker := service.NewRefreshWorker(subscriptionRepo, provider, cfg.RefreshInterval)
	go worker.Start(ctx)

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Println("shutting down")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("server shutdown error: %v", err)
		}
	}()

	log.Printf("TubeScout Go backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
