// Package main is the entry point for the TripWeaver API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/tripweaver/internal/cache"
	"github.com/pkordes/tripweaver/internal/config"
	"github.com/pkordes/tripweaver/internal/handler"
	"github.com/pkordes/tripweaver/internal/itinerary"
	"github.com/pkordes/tripweaver/internal/middleware"
	"github.com/pkordes/tripweaver/internal/repo"
	"github.com/pkordes/tripweaver/internal/service"
	"github.com/pkordes/tripweaver/migrations"
	"github.com/pkordes/tripweaver/spec"
)

// shutdownTimeout bounds how long in-flight requests get after a signal.
const shutdownTimeout = 15 * time.Second

func main() {
	// --- Config -----------------------------------------------------------
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		// The JSON logger is not configured yet; report through the default slog logger.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database ---------------------------------------------------------
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if err := migrate(ctx, pool); err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	// --- Metrics ----------------------------------------------------------
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	genMetrics := itinerary.NewMetrics(reg)

	// --- Share cache ------------------------------------------------------
	// Left nil without REDIS_ADDR; services fall back to a no-op cache.
	var shares service.ShareCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()
		sc := cache.NewShareCache(rdb, cfg.ShareCacheTTL, reg)
		if err := sc.Ping(ctx); err != nil {
			// The cache is optional; lookups fall through to Postgres.
			slog.Warn("share cache unreachable", "addr", cfg.RedisAddr, "error", err)
		}
		shares = sc
	}

	// --- Itinerary generation ---------------------------------------------
	providers := itinerary.NewOrchestrator(cfg.Providers, &http.Client{}, genMetrics, logger)
	if !providers.Configured() {
		slog.Warn("no LLM provider configured; itinerary generation will fail")
	}
	generator := itinerary.NewGenerator(providers, genMetrics, logger)

	// --- Services ---------------------------------------------------------
	tripRepo := repo.NewTripRepo(pool)
	itineraryRepo := repo.NewItineraryRepo(pool)
	itineraries := service.NewItineraryService(tripRepo, itineraryRepo, generator, shares, logger)

	server := handler.NewServer(handler.Services{
		Generator:   generator,
		Trips:       service.NewTripService(tripRepo, shares, logger),
		Itineraries: itineraries,
		Plans:       service.NewPlanService(tripRepo, itineraries, logger),
		Budgets:     service.NewBudgetService(tripRepo),
		Shares:      service.NewShareService(tripRepo, itineraryRepo, shares, logger),
		Export:      service.NewExportService(tripRepo, itineraryRepo),
		Profiles:    service.NewProfileService(repo.NewProfileRepo(pool)),
	}, logger)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger →
	// Recoverer → CORS → MaxBodySize.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Get("/openapi.yaml", spec.Handler())
	r.Mount("/", server.Routes(
		middleware.NewJWTAuth([]byte(cfg.JWTSecret)),
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	))

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout must outlast a primary and a secondary provider call.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2*cfg.LLMTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// migrate applies all pending goose migrations through a database/sql view
// of the pool.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	versions, err := migrations.Up(ctx, stdlib.OpenDBFromPool(pool))
	if err != nil {
		return err
	}
	slog.Info("migrations applied", "versions", versions)
	return nil
}
