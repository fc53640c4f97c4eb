// Copyright (c) 2026 Melodia. All rights reserved.
// Author: eng@melodia.app

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

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
	"github.com/melodiahq/melodia/internal/platform/middleware"
	"github.com/melodiahq/melodia/internal/platform/sec"
	"github.com/melodiahq/melodia/internal/royalty"
	"github.com/melodiahq/melodia/internal/streaming"
	"github.com/melodiahq/melodia/internal/users/account"
	"github.com/melodiahq/melodia/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles authentication routes (register, login, tokens).
	Auth *auth.Handler

	// Account handles listener profiles and artist verification.
	Account *account.Handler

	// Song handles the song catalogue and its moderation lifecycle.
	Song *song.Handler

	// Album handles albums and their submit cascade.
	Album *album.Handler

	// Complaint handles listener complaints about live songs.
	Complaint *complaint.Handler

	// Dispute handles ownership disputes (admin only).
	Dispute *dispute.Handler

	// Stream handles playback URLs and the play ledger.
	Stream *streaming.Handler

	// Subscription handles listener billing.
	Subscription *subscription.Handler

	// Favorite handles the liked-songs library.
	Favorite *favorite.Handler

	// Playlist handles user playlists.
	Playlist *playlist.Handler

	// Royalty handles artist earnings and the payout engine.
	Royalty *royalty.Handler

	// Audit exposes the admin audit trail.
	Audit *audit.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/me", h.Account.Routes())
		api.Mount("/artists", h.Account.PublicRoutes())
		api.Mount("/songs", h.Song.Routes())
		api.Mount("/albums", h.Album.Routes())
		api.Mount("/complaints", h.Complaint.Routes())
		api.Mount("/streams", h.Stream.Routes())
		api.Mount("/subscriptions", h.Subscription.Routes())
		api.Mount("/favorites", h.Favorite.Routes())
		api.Mount("/playlists", h.Playlist.Routes())
		api.Mount("/earnings", h.Royalty.Routes())

		// # Back Office
		// Every moderation and payout control sits behind the admin role.
		api.Route("/admin", func(admin chi.Router) {
			admin.Use(middleware.RequireRole(sec.RoleAdmin))

			h.Account.RegisterAdminRoutes(admin)
			h.Song.RegisterAdminRoutes(admin)
			h.Album.RegisterAdminRoutes(admin)
			h.Complaint.RegisterAdminRoutes(admin)
			h.Dispute.RegisterAdminRoutes(admin)
			h.Royalty.RegisterAdminRoutes(admin)
			h.Audit.RegisterRoutes(admin)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
