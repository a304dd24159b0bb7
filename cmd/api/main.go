package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/mortgage-service/internal/config"
	"github.com/Dan9191/mortgage-service/internal/engine"
	"github.com/Dan9191/mortgage-service/internal/handler"
	"github.com/Dan9191/mortgage-service/internal/integrations/bankrates"
	"github.com/Dan9191/mortgage-service/internal/integrations/bureau"
	"github.com/Dan9191/mortgage-service/internal/integrations/ecb"
	"github.com/Dan9191/mortgage-service/internal/jobs"
	"github.com/Dan9191/mortgage-service/internal/metrics"
	"github.com/Dan9191/mortgage-service/internal/middleware"
	"github.com/Dan9191/mortgage-service/internal/models"
	"github.com/Dan9191/mortgage-service/internal/profiles"
	"github.com/Dan9191/mortgage-service/internal/ratecache"
	"github.com/Dan9191/mortgage-service/internal/repository"
	"github.com/Dan9191/mortgage-service/internal/service"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize storage
	var repo service.EvaluationRepository = repository.NewMemoryRepository()
	if cfg.DBEnabled {
		db, err := sql.Open("postgres", cfg.DBConn)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Fatalf("Failed to ping database: %v", err)
		}
		repo = repository.NewRepository(db)
	} else {
		logger.Warn("DB_ENABLED is not set, evaluations are kept in memory")
	}

	// Initialize caches
	m := metrics.New()
	var store ratecache.Store = ratecache.NewMemoryStore()
	if cfg.CacheBackend == config.CacheRedis {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := ratecache.NewRedisClient(ctx, cfg.RedisAddr)
		cancel()
		if err != nil {
			logger.Fatalf("Failed to initialize cache: %v", err)
		}
		defer rdb.Close()
		store = ratecache.NewRedisStore(rdb, "mortgage:")
	}
	cacheOpts := []ratecache.Option{
		ratecache.WithTimeout(cfg.FeedTimeout),
		ratecache.WithLogger(logger),
		ratecache.WithObserver(m.ObserveCache),
	}

	// Lender-rate and bureau feeds are wired only when configured. Without them the engine
	// ranks fallback rates and bureau enrichment is skipped.
	var svcOpts []service.Option
	var engOpts []engine.Option
	if cfg.BankRatesURL != "" {
		ratesClient := bankrates.NewClient(cfg.BankRatesURL, cfg.BankRatesAPIKey, cfg.FeedTimeout, logger)
		rateCache := ratecache.New[[]models.LenderRate]("lender_rates", store, ratesClient.GetRates, cfg.RateCacheTTL, cacheOpts...)
		engOpts = append(engOpts, engine.WithRateBook(service.RateBook(rateCache)))
		svcOpts = append(svcOpts, service.WithRateCache(rateCache))
	} else {
		logger.Warn("BANK_RATES_URL is not set, lenders are ranked on fallback rates")
	}

	ecbClient := ecb.NewClient(cfg.ECBURL, cfg.FeedTimeout, logger)
	indexCache := ratecache.New[models.IndexRate]("reference_index", store, func(ctx context.Context, _ string) (models.IndexRate, error) {
		return ecbClient.GetIndexRate(ctx)
	}, cfg.RateCacheTTL, cacheOpts...)
	svcOpts = append(svcOpts, service.WithIndexCache(indexCache))

	if cfg.BureauURL != "" {
		bureauClient := bureau.NewClient(cfg.BureauURL, cfg.BureauAPIKey, cfg.FeedTimeout, logger)
		bureauCache := ratecache.New[models.BureauReport]("bureau", store, bureauClient.GetReport, cfg.BureauCacheTTL, cacheOpts...)
		svcOpts = append(svcOpts, service.WithBureauCache(bureauCache))
	} else {
		logger.Warn("BUREAU_URL is not set, only declared credit scores are used")
	}

	// Initialize layers
	eng := engine.New(engOpts...)
	svc := service.NewService(profiles.Default(), eng, repo, logger, append(svcOpts,
		service.WithObserver(m),
		service.WithCountryFallback(cfg.AllowCountryFallback),
	)...)
	h := handler.NewHandler(svc, logger)

	scheduler, err := jobs.NewScheduler(cfg.RefreshSchedule, svc, 4*cfg.FeedTimeout, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware(logger, m))
	r.Handle("/metrics", m.Handler()).Methods("GET")
	api := r.PathPrefix("/").Subrouter()
	if cfg.RateLimitPerMinute > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute)
		defer limiter.Stop()
		api.Use(middleware.RateLimitMiddleware(limiter))
	}
	h.Routes(api)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
	}
	logger.Info("Server stopped")
}
