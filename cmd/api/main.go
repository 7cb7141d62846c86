// Package main is the entry point for the wedding site API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/sdweddings/backend/internal/analytics"
	"github.com/sdweddings/backend/internal/cache"
	"github.com/sdweddings/backend/internal/cms"
	"github.com/sdweddings/backend/internal/config"
	"github.com/sdweddings/backend/internal/geo"
	"github.com/sdweddings/backend/internal/handler"
	"github.com/sdweddings/backend/internal/logger"
	"github.com/sdweddings/backend/internal/mailer"
	"github.com/sdweddings/backend/internal/middleware"
	"github.com/sdweddings/backend/internal/repo"
	"github.com/sdweddings/backend/internal/service"
	"github.com/sdweddings/backend/migrations"
	"github.com/sdweddings/backend/spec"
)

const serviceName = "sdweddings-api"

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Plain stderr before the logger is configured.
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, serviceName)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger error:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx := context.Background()

	// --- Database ---------------------------------------------------------
	// pgxpool.New does not open connections immediately; Ping does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	log.Info("database connection established")

	// goose drives database/sql; borrow a handle backed by the same pool.
	sqlDB := stdlib.OpenDBFromPool(pool)
	applied, err := migrations.Up(ctx, sqlDB)
	_ = sqlDB.Close()
	if err != nil {
		return err
	}
	log.Info("migrations applied", zap.Int64s("versions", applied))

	// --- Cache ------------------------------------------------------------
	var readCache cache.Cache = cache.Noop{}
	if cfg.RedisURL != "" {
		rdb, err := cache.Open(ctx, cfg.RedisURL)
		if err != nil {
			// The site renders from the CMS directly when the cache is down.
			log.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			readCache = cache.NewRedis(rdb, "sdweddings:", cfg.CacheTTL)
			log.Info("redis cache enabled", zap.Duration("ttl", cfg.CacheTTL))
		}
	}

	// --- Analytics --------------------------------------------------------
	var tracker analytics.Tracker = analytics.NewLogTracker(log)
	if len(cfg.KafkaBrokers) > 0 {
		w := analytics.NewKafkaWriter(cfg.KafkaBrokers, cfg.AnalyticsTopic)
		defer func() {
			if err := w.Close(); err != nil {
				log.Warn("close analytics writer", zap.Error(err))
			}
		}()
		tracker = analytics.NewKafkaTracker(w, serviceName)
		log.Info("analytics publishing to kafka", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.AnalyticsTopic))
	}

	// --- Repos and services -----------------------------------------------
	sanity := cms.NewSanity(cfg.CMS)
	couples := repo.NewCachedCoupleRepo(repo.NewCoupleRepo(sanity), readCache, log)
	vendors := repo.NewCachedVendorRepo(repo.NewVendorRepo(sanity), readCache, log)
	venues := repo.NewCachedVenueRepo(repo.NewVenueRepo(sanity), readCache, log)

	content := service.NewContentService(couples, vendors, venues, geo.Builtin(), log)
	contact := service.NewContactService(
		repo.NewInquiryRepo(pool),
		mailer.NewResend("", cfg.ResendAPIKey),
		tracker,
		cfg.Mail,
		log,
	)
	export := service.NewExportService(couples)

	// --- Router -----------------------------------------------------------
	// Middleware order: RequestID → RealIP → Logger → Recoverer → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewZapLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", handler.NewServer(content, contact, export, spec.OpenAPI).Routes())

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for a signal, then give in-flight requests up
	// to 15 seconds to complete.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-stop:
	}
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
