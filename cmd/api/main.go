package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"kelly-montecarlo/internal/api"
	"kelly-montecarlo/internal/api/middleware"
	"kelly-montecarlo/internal/engine"
	"kelly-montecarlo/internal/logging"
	"kelly-montecarlo/internal/observability"
	"kelly-montecarlo/internal/storage"
	"kelly-montecarlo/internal/storage/memory"
	"kelly-montecarlo/internal/storage/postgres"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	// Get configuration from environment
	port := envOr("API_PORT", "8080")
	env := os.Getenv("API_ENV")

	logger, err := logging.New(env, os.Getenv("LOG_LEVEL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, logger)
	if err != nil {
		logger.Fatal("open run store", zap.Error(err))
	}
	defer closeStore()

	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics("", reg)

	maxCells := engine.DefaultMaxCells
	if v := os.Getenv("MAX_CELLS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			logger.Fatal("parse MAX_CELLS", zap.String("value", v), zap.Error(err))
		}
		maxCells = n
	}

	router := api.NewRouter(api.Deps{
		Engine:      engine.New(engine.WithLogger(logger), engine.WithMaxCells(maxCells)),
		Store:       store,
		Metrics:     metrics,
		Gatherer:    reg,
		Logger:      logger,
		PresetsDir:  os.Getenv("PRESETS_DIR"),
		StaticDir:   envOr("STATIC_DIR", "./web/dist"),
		CORSOrigins: middleware.ParseOrigins(os.Getenv("CORS_ORIGINS")),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting API server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

// openStore uses Postgres when DATABASE_URL is set, otherwise an in-memory
// store whose runs expire after RUN_TTL (default 24h).
func openStore(ctx context.Context, logger *zap.Logger) (storage.RunStore, func(), error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		pool, err := postgres.NewPool(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("using postgres run store")
		return postgres.NewRunStore(pool), pool.Close, nil
	}

	ttl := 24 * time.Hour
	if v := os.Getenv("RUN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, nil, fmt.Errorf("parse RUN_TTL: %w", err)
		}
		ttl = d
	}
	store := memory.NewRunStore(ttl)
	store.StartJanitor(ctx, time.Minute)
	logger.Info("using in-memory run store", zap.Duration("ttl", ttl))
	return store, func() {}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
