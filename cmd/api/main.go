// Copyright (c) 2026 Kessen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Kessen HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (.env honored).
//  3. Connect to Redis when configured; otherwise use the in-memory cache.
//  4. Build the rate-limited provider queues and adapters.
//  5. Wire the unification layer and the battle engine.
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
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

	"github.com/joho/godotenv"

	"github.com/taibuivan/kessen/internal/api"
	"github.com/taibuivan/kessen/internal/battle"
	"github.com/taibuivan/kessen/internal/platform/config"
	"github.com/taibuivan/kessen/internal/platform/constants"
	redisstore "github.com/taibuivan/kessen/internal/platform/redis"
	"github.com/taibuivan/kessen/internal/source"
	"github.com/taibuivan/kessen/internal/source/anilist"
	"github.com/taibuivan/kessen/internal/source/jikan"
	"github.com/taibuivan/kessen/internal/unified"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "kessen"))
	slog.SetDefault(log)

	log.Info("[Kessen] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// A local .env is a development convenience; missing is fine.
	if err := godotenv.Load(); err == nil {
		log.Info("dotenv_loaded")
	}

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "kessen"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for the process. Cancelled on shutdown so background
	// goroutines (cache sweep, queue workers, limiter cleanup) stop.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Startup deadline so misconfiguration is caught quickly rather than
	// hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. Cache ──────────────────────────────────────────────────────────
	var (
		characterCache unified.Store
		seriesCache    unified.Store
		checkCache     func() error
	)

	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		characterCache = unified.NewRedisStore(rdb, constants.RedisPrefixCharacters, cfg.CacheTTL, log)
		seriesCache = unified.NewRedisStore(rdb, constants.RedisPrefixSeries, cfg.CacheTTL, log)
		checkCache = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}
	} else {
		characterCache = unified.NewMemoryStore(rootCtx, cfg.CacheTTL, constants.CacheSweepInterval)
		seriesCache = unified.NewMemoryStore(rootCtx, cfg.CacheTTL, constants.CacheSweepInterval)
	}

	// ── 4. Provider Queues & Adapters ─────────────────────────────────────
	aniListQueue := source.NewQueue(anilist.Provider, cfg.AniListRatePerMinute, constants.AniListCooldown, log)
	jikanQueue := source.NewQueue(jikan.Provider, cfg.JikanRatePerMinute, constants.JikanCooldown, log)

	aniListClient := anilist.NewClient(cfg.AniListURL, aniListQueue, log)
	jikanClient := jikan.NewClient(cfg.JikanURL, jikanQueue, log)

	// ── 5. Domain Wiring ──────────────────────────────────────────────────
	unifiedService := unified.NewService(aniListClient, jikanClient, aniListClient, characterCache, seriesCache, log)
	unifiedHandler := unified.NewHandler(unifiedService)

	battleEngine := battle.NewEngine(unifiedService, log)
	battleHandler := battle.NewHandler(battleEngine)

	// ── 6. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckAniList: probeURL(cfg.AniListURL),
		CheckJikan:   probeURL(cfg.JikanURL),
		CheckCache:   checkCache,
	}, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Unified:   unifiedHandler,
		Battle:    battleHandler,
	}

	server := api.NewServer(rootCtx, cfg, log, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// probeURL builds a readiness checker that issues a lightweight HEAD
// request against an upstream without consuming its rate budget.
func probeURL(target string) func() error {
	client := &http.Client{Timeout: 5 * time.Second}

	return func() error {
		request, err := http.NewRequest(http.MethodHead, target, nil)
		if err != nil {
			return err
		}

		response, err := client.Do(request)
		if err != nil {
			return err
		}
		_ = response.Body.Close()

		return nil
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
