package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-strategies/config"
	httpLayer "ai-strategies/http"
	"ai-strategies/repository"
	"ai-strategies/service"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.ReadConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	setLogLevel(logger, cfg.Log.Level)

	if err := run(cfg, logger); err != nil {
		logger.Fatal(err)
	}
}

// setLogLevel falls back to info when level does not parse.
func setLogLevel(logger *logrus.Logger, level string) {
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logger.WithError(err).Warnf("Invalid LOG_LEVEL %q, using info", level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
}

// run returns instead of exiting so deferred cleanup always happens.
func run(cfg *config.Config, logger *logrus.Logger) error {
	rules := service.RulesFromConfig(cfg.Rules)

	var cacheRepo repository.CacheRepository
	memoryCache := repository.NewMemoryCache()
	if cfg.Redis.Addr != "" {
		redisCache := repository.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer redisCache.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisCache.Ping(ctx)
		cancel()
		if err != nil {
			logger.WithError(err).Warn("Redis unavailable, caching results in memory")
			cacheRepo = memoryCache
		} else {
			logger.Infof("Caching results in redis at %s", cfg.Redis.Addr)
			cacheRepo = redisCache
		}
	} else {
		cacheRepo = memoryCache
	}
	resultCache := service.NewResultCache(cacheRepo, cfg.Redis.TTL, logger)

	explainer := service.NewExplanationService(cfg.AI, logger)

	handlers := httpLayer.Handlers{
		Pricing: httpLayer.NewPricingHandler(
			service.NewPricingService(rules, resultCache, logger), explainer, logger),
		ServiceImprovement: httpLayer.NewServiceImprovementHandler(
			service.NewServiceImprovementService(rules, resultCache, logger), explainer, logger),
		Maintenance: httpLayer.NewMaintenanceHandler(
			service.NewMaintenanceService(rules, resultCache, logger), explainer, logger),
		Simulation: httpLayer.NewSimulationHandler(
			service.NewSimulationService(rules, logger), logger),
	}

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Jobs.HousekeepingSpec, func() {
		logger.WithFields(logrus.Fields{
			"rate_limit_buckets": rateLimiter.Cleanup(),
			"cache_entries":      memoryCache.Evict(),
		}).Debug("Housekeeping removed stale entries")
	}); err != nil {
		return fmt.Errorf("invalid housekeeping schedule %q: %w", cfg.Jobs.HousekeepingSpec, err)
	}
	scheduler.Start()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      httpLayer.NewRouter(handlers, rateLimiter, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Errorf("Server failed: %v", err)
	case <-quit:
		logger.Info("Shutting down server...")
	}

	<-scheduler.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server exited")
	return nil
}
