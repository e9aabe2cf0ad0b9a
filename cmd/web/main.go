// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command web is the entry point for the KryptoTracker web frontend.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to Redis when storage or cache use it.
//  4. Open the persisted browser state (memory, Redis, PostgreSQL or SQLite).
//  5. Build the backend API client and its response cache.
//  6. Wire session manager and page handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/taibuivan/kryptotracker/internal/api"
	"github.com/taibuivan/kryptotracker/internal/kryptoapi"
	"github.com/taibuivan/kryptotracker/internal/platform/config"
	"github.com/taibuivan/kryptotracker/internal/platform/constants"
	"github.com/taibuivan/kryptotracker/internal/platform/migration"
	pgstore "github.com/taibuivan/kryptotracker/internal/platform/postgres"
	redisstore "github.com/taibuivan/kryptotracker/internal/platform/redis"
	"github.com/taibuivan/kryptotracker/internal/platform/sec"
	"github.com/taibuivan/kryptotracker/internal/session"
	"github.com/taibuivan/kryptotracker/internal/web"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("[KryptoTracker] service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("storage", cfg.StorageBackend),
		slog.String("cache", cfg.CacheBackend),
	)

	// Lives until shutdown; background sweepers stop with it.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Use a 30s deadline so misconfiguration is caught quickly rather than
	// hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	var checks []api.Check

	// ── 3. Redis ──────────────────────────────────────────────────────────
	var rdb *goredis.Client
	if cfg.UsesRedis() {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
		checks = append(checks, api.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}})
	}

	// ── 4. Persisted Browser State ────────────────────────────────────────
	var storage session.Storage
	switch cfg.StorageBackend {
	case config.BackendRedis:
		storage = session.NewRedisStorage(rdb, cfg.StorageTTL)

	case config.BackendPostgres:
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing postgres pool")
			pool.Close()
		}()

		migrations := session.Migrations()
		if cfg.MigrationPath != "" {
			migrations = os.DirFS(cfg.MigrationPath)
		}
		must(log, migration.RunUp(cfg.DatabaseURL, migrations, log), "run migrations")
		storage = session.NewPostgresStorage(pool)

	case config.BackendSQLite:
		must(log, ensureDir(cfg.SQLitePath), "create sqlite directory")
		sqlite, err := session.OpenSQLiteStorage(startupCtx, cfg.SQLitePath)
		must(log, err, "open sqlite storage")
		defer func() {
			log.Info("closing sqlite storage")
			if cerr := sqlite.Close(); cerr != nil {
				log.Error("sqlite close error", slog.Any("error", cerr))
			}
		}()
		storage = sqlite

	default:
		storage = session.NewMemoryStorage()
	}
	checks = append(checks, api.Check{Name: "storage", Ping: storage.Ping})

	// ── 5. Backend API Client ─────────────────────────────────────────────
	var cache kryptoapi.Cache = kryptoapi.NewMemoryCache(rootCtx)
	if cfg.CacheBackend == config.BackendRedis {
		cache = kryptoapi.NewRedisCache(rdb, log)
	}

	client, err := kryptoapi.New(kryptoapi.Config{
		BaseURL:    cfg.APIBaseURL,
		HTTPClient: &http.Client{Timeout: cfg.APITimeout},
		Cache:      cache,
		Limiter:    rate.NewLimiter(rate.Limit(cfg.APIRateLimitRPS), cfg.APIRateLimitBurst),
		Logger:     log,
	})
	must(log, err, "initialize api client")

	// ── 6. Sessions & Pages ───────────────────────────────────────────────
	signer, err := sec.NewCookieSigner(cfg.SessionSecret, constants.SessionIssuer)
	must(log, err, "initialize session signer")

	manager := session.NewManager(storage, signer, session.Options{
		IdleTTL:         cfg.SessionIdleTTL,
		NotificationTTL: cfg.NotificationTTL,
		CookieSecure:    cfg.SessionCookieSecure,
	}, log)
	go manager.Run(rootCtx)

	pages, err := web.NewHandler(client, web.Options{
		VerifyToken:    cfg.VerifyToken,
		AllowedOrigins: cfg.AllowedOrigins(),
	}, log)
	must(log, err, "load page templates")

	liveness, readiness := api.NewHealthHandlers(checks, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(rootCtx, cfg, log, manager, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Web:       pages,
	})

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
		rootCancel()
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	// Add global context to all log entries.
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// ensureDir creates the parent directory of a database file.
func ensureDir(path string) error {
	if path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, fs.ErrExist) {
		return err
	}
	return nil
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
