package main

// @title Coffee Finder API
// @version 1.0.0
// @description Сервис подбора кофеен для встречи двух людей: середина между точками, справедливая сортировка кандидатов, карточки магазинов, автодополнение адреса и кеш геопозиции браузера.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/coffee-finder/docs"
	"github.com/coffee-finder/internal/config"
	httpDelivery "github.com/coffee-finder/internal/delivery/http"
	"github.com/coffee-finder/internal/delivery/http/handler"
	"github.com/coffee-finder/internal/domain/repository"
	"github.com/coffee-finder/internal/infrastructure/analytics"
	"github.com/coffee-finder/internal/infrastructure/backend"
	"github.com/coffee-finder/internal/infrastructure/geocoder"
	"github.com/coffee-finder/internal/pkg/logger"
	"github.com/coffee-finder/internal/repository/cache"
	"github.com/coffee-finder/internal/repository/postgres"
	"github.com/coffee-finder/internal/repository/valkey"
	"github.com/coffee-finder/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "coffee-finder-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Coffee Finder API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("cache_driver", cfg.Cache.Driver),
		zap.String("search_source", cfg.Meeting.SearchSource),
	)

	healthChecks := map[string]handler.HealthCheck{}
	var closers []func()

	// 3. Location cache
	var locationCache repository.LocationCacheRepository
	switch cfg.Cache.Driver {
	case config.CacheDriverRedis:
		redisClient, err := cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		closers = append(closers, func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis", zap.Error(err))
			}
		})
		healthChecks["redis"] = redisClient.Health
		locationCache = cache.NewLocationCache(redisClient, cfg.Cache.LocationCacheTTL)
	case config.CacheDriverValkey:
		valkeyCache, err := valkey.New(cfg.Valkey.Addr, cfg.Cache.LocationCacheTTL, log)
		if err != nil {
			log.Fatal("Failed to connect to Valkey", zap.Error(err))
		}
		closers = append(closers, valkeyCache.Close)
		healthChecks["valkey"] = valkeyCache.Health
		locationCache = valkeyCache
	default:
		log.Warn("Using in-memory location cache, fixes are lost on restart")
		locationCache = cache.NewMemoryLocationCache(cfg.Cache.LocationCacheTTL, log)
	}

	// 4. Shop sources
	backendClient := backend.NewClient(&cfg.Backend, log)

	var searchRepo repository.ShopSearchRepository = backendClient
	if cfg.Meeting.SearchSource == config.SearchSourcePostgres {
		db, err := postgres.New(cfg, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		closers = append(closers, func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL", zap.Error(err))
			}
		})
		healthChecks["postgres"] = db.Health
		searchRepo = postgres.NewShopRepository(db)
	}

	// 5. Analytics (optional)
	var publisher repository.AnalyticsPublisher
	if cfg.Analytics.Enabled {
		natsPublisher, err := analytics.NewPublisher(&cfg.Analytics, log)
		if err != nil {
			log.Error("Analytics disabled, NATS unavailable", zap.Error(err))
		} else {
			closers = append(closers, natsPublisher.Close)
			publisher = natsPublisher
		}
	}

	log.Info("Repositories initialized")

	// 6. Use cases
	normalizer := usecase.NewShopNormalizer(log)
	shopUC := usecase.NewShopUseCase(backendClient, normalizer, log)
	meetingUC := usecase.NewMeetingUseCase(
		searchRepo,
		normalizer,
		publisher,
		log,
		cfg.Meeting.PageSize,
		cfg.Meeting.Oversample,
	)
	locationUC := usecase.NewLocationUseCase(locationCache, log, cfg.Cache.LocationCacheTTL)
	autocompleteUC := usecase.NewAutocompleteUseCase(geocoder.NewClient(&cfg.Geocoder, log), log)

	// 7. HTTP
	server := httpDelivery.NewServer(cfg, log, httpDelivery.Handlers{
		Shop:         handler.NewShopHandler(shopUC, log),
		Meeting:      handler.NewMeetingHandler(meetingUC, locationUC, usecase.NewRequestTracker(), log),
		Autocomplete: handler.NewAutocompleteHandler(autocompleteUC, log),
		Location:     handler.NewLocationHandler(locationUC, log),
		Health:       handler.NewHealthHandler(healthChecks, log),
	})

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 8. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	for i := len(closers) - 1; i >= 0; i-- {
		closers[i]()
	}

	log.Info("Server stopped successfully")
}
