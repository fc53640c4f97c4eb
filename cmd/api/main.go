// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

// Command api is the entry point for the Melodia HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Connect to the object store holding audio and cover files.
//  6. Run database migrations (idempotent).
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
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

	"github.com/melodiahq/melodia/internal/api"
	"github.com/melodiahq/melodia/internal/billing/subscription"
	"github.com/melodiahq/melodia/internal/catalog/album"
	"github.com/melodiahq/melodia/internal/catalog/song"
	"github.com/melodiahq/melodia/internal/library/favorite"
	"github.com/melodiahq/melodia/internal/library/playlist"
	"github.com/melodiahq/melodia/internal/moderation/complaint"
	"github.com/melodiahq/melodia/internal/moderation/dispute"
	"github.com/melodiahq/melodia/internal/platform/audit"
	"github.com/melodiahq/melodia/internal/platform/config"
	"github.com/melodiahq/melodia/internal/platform/constants"
	"github.com/melodiahq/melodia/internal/platform/migration"
	pgstore "github.com/melodiahq/melodia/internal/platform/postgres"
	redisstore "github.com/melodiahq/melodia/internal/platform/redis"
	"github.com/melodiahq/melodia/internal/platform/sec"
	"github.com/melodiahq/melodia/internal/platform/storage"
	"github.com/melodiahq/melodia/internal/royalty"
	"github.com/melodiahq/melodia/internal/streaming"
	"github.com/melodiahq/melodia/internal/users/account"
	"github.com/melodiahq/melodia/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "melodia"))
	slog.SetDefault(log)

	log.Info("[Melodia] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "melodia"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Object Storage ─────────────────────────────────────────────────
	presigner, err := storage.NewPresigner(startupCtx, storage.Options{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		UseSSL:    cfg.S3UseSSL,
	}, log)
	must(log, err, "connect to object storage")

	// ── 6. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 7. Auth Service ───────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	// Platform: the audit trail records every back-office decision.
	auditService := audit.NewService(audit.NewPostgresRepository(pool), log)
	auditHandler := audit.NewHandler(auditService)

	// Users: authentication and account lifecycle.
	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(pool)
	authService := auth.NewService(
		userRepository,
		sessionRepository,
		auth.NewResetTokenStore(rdb),
		auth.NewVerificationTokenStore(rdb),
		jwtSvc,
	)
	authHandler := auth.NewHandler(authService)

	accountService := account.NewService(account.NewPostgresRepository(pool), sessionRepository, auditService, log)
	accountHandler := account.NewHandler(accountService)

	// Catalog: songs, albums, and their moderation lifecycle.
	songService := song.NewService(song.NewPostgresRepository(pool), accountService, auditService, log)
	songHandler := song.NewHandler(songService)

	albumService := album.NewService(album.NewPostgresRepository(pool), accountService, songService, auditService, log)
	albumHandler := album.NewHandler(albumService)

	// Moderation: complaints and ownership disputes.
	complaintService := complaint.NewService(complaint.NewPostgresRepository(pool), auditService, log)
	complaintHandler := complaint.NewHandler(complaintService)

	disputeService := dispute.NewService(dispute.NewPostgresRepository(pool), auditService, log)
	disputeHandler := dispute.NewHandler(disputeService)

	// Billing: subscriptions gate playback and fund the royalty pool.
	subscriptionService := subscription.NewService(subscription.NewPostgresRepository(pool), log)
	subscriptionHandler := subscription.NewHandler(subscriptionService)

	// Streaming: the play ledger plus the Redis recently-played projection.
	streamingService := streaming.NewService(
		streaming.NewPostgresRepository(pool),
		streaming.NewRedisRecentStore(rdb),
		subscriptionService,
		presigner,
		cfg.MinStreamSeconds,
		log,
	)
	streamingHandler := streaming.NewHandler(streamingService)

	// Royalty: the monthly payout engine.
	royaltyService := royalty.NewService(
		royalty.NewPostgresRepository(pool),
		subscriptionService,
		streamingService,
		auditService,
		cfg.ArtistRevenueShare,
		log,
	)
	royaltyHandler := royalty.NewHandler(royaltyService)

	// Library: favorites and playlists.
	favoriteHandler := favorite.NewHandler(favorite.NewService(favorite.NewPostgresRepository(pool)))
	playlistHandler := playlist.NewHandler(playlist.NewService(playlist.NewPostgresRepository(pool)))

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Auth:         authHandler,
		Account:      accountHandler,
		Song:         songHandler,
		Album:        albumHandler,
		Complaint:    complaintHandler,
		Dispute:      disputeHandler,
		Stream:       streamingHandler,
		Subscription: subscriptionHandler,
		Favorite:     favoriteHandler,
		Playlist:     playlistHandler,
		Royalty:      royaltyHandler,
		Audit:        auditHandler,
	}

	server := api.NewServer(context.Background(), cfg, log, jwtSvc, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
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
