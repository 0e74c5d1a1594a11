package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kafelab/coffee-lab-backend/internal/adapters/cache"
	"github.com/kafelab/coffee-lab-backend/internal/adapters/database"
	"github.com/kafelab/coffee-lab-backend/internal/adapters/providers/ocr"
	"github.com/kafelab/coffee-lab-backend/internal/adapters/search"
	"github.com/kafelab/coffee-lab-backend/internal/api/handlers"
	"github.com/kafelab/coffee-lab-backend/internal/api/routes"
	"github.com/kafelab/coffee-lab-backend/internal/application/services"
	"github.com/kafelab/coffee-lab-backend/internal/domain/providers"
	"github.com/kafelab/coffee-lab-backend/internal/domain/repositories"
	"github.com/kafelab/coffee-lab-backend/internal/infrastructure/clients/postgres"
	"github.com/kafelab/coffee-lab-backend/internal/infrastructure/clients/redis"
	"github.com/kafelab/coffee-lab-backend/internal/infrastructure/clients/typesense"
	"github.com/kafelab/coffee-lab-backend/internal/infrastructure/observability"
	"github.com/kafelab/coffee-lab-backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	// Redis is optional; without it the catalog reads go straight to Postgres
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, continuing without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Msg("Redis client initialized")
	}

	// Typesense is optional; free-text search falls back to SQL filtering
	var searchRepo repositories.CoffeeSearchRepository
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("Typesense unavailable, continuing without search index")
	} else {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to init Typesense schema")
		}
		searchRepo = adapter
		log.Info().Msg("Typesense client initialized")
	}

	// Adapters
	baseCoffeeRepo := database.NewCoffeeAdapter(pgClient)
	coffeeRepo := baseCoffeeRepo
	if cacheProvider != nil {
		coffeeRepo = database.NewCachedCoffeeAdapter(baseCoffeeRepo, cacheProvider)
		log.Info().Msg("coffee adapter wrapped with caching layer")
	}
	originRepo := database.NewOriginAdapter(pgClient)
	recordRepo := database.NewRecordAdapter(pgClient)
	achievementRepo := database.NewAchievementAdapter(pgClient)
	unlockRepo := database.NewUserAchievementAdapter(pgClient)
	ocrCacheRepo := database.NewOCRCacheAdapter(pgClient)
	inventoryRepo := database.NewInventoryAdapter(pgClient)

	ocrProvider, err := ocr.NewProvider(ctx, &cfg.OCR)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize OCR provider")
	}

	// Services
	matcher := services.NewCatalogMatcherService()
	recognitionService := services.NewRecognitionService(ocrProvider, coffeeRepo, ocrCacheRepo, matcher, metrics)
	achievementService := services.NewAchievementService(achievementRepo, unlockRepo, recordRepo, metrics)
	recordService := services.NewRecordService(recordRepo, coffeeRepo, achievementService)
	statsService := services.NewStatsService(recordRepo, coffeeRepo, unlockRepo)
	coffeeService := services.NewCoffeeService(coffeeRepo, originRepo, searchRepo)
	inventoryService := services.NewInventoryService(inventoryRepo, coffeeRepo)

	// Handlers and routes
	router := routes.NewRouter(
		handlers.NewRecognitionHandler(recognitionService),
		handlers.NewCoffeeHandler(coffeeService),
		handlers.NewRecordHandler(recordService),
		handlers.NewAchievementHandler(achievementService, achievementRepo, unlockRepo),
		handlers.NewStatsHandler(statsService),
		handlers.NewInventoryHandler(inventoryService),
		metrics,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
