// Package api exposes the Injaz CRUD and wizard endpoints as a JSON
// REST service.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/injaz-app/injaz/internal/api/notify"
	"github.com/injaz-app/injaz/internal/i18n"
	"github.com/injaz-app/injaz/pkg/core"
)

// Server is the Injaz API server.
type Server struct {
	store        core.Store
	bundle       *i18n.Bundle
	sessionStore *sessions.CookieStore
	hub          *notify.Hub
	logger       *slog.Logger
	addr         string
	localesDir   string
	watchLocales bool
}

// Config holds the server dependencies.
type Config struct {
	Store         core.Store
	Bundle        *i18n.Bundle
	Addr          string
	SessionSecret string
	Logger        *slog.Logger
	LocalesDir    string
	WatchLocales  bool
}

// NewServer creates a server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		store:        cfg.Store,
		bundle:       cfg.Bundle,
		sessionStore: sessionStore,
		hub:          notify.NewHub(),
		logger:       logger,
		addr:         cfg.Addr,
		localesDir:   cfg.LocalesDir,
		watchLocales: cfg.WatchLocales,
	}
}

// Hub returns the server's change-event hub.
func (s *Server) Hub() *notify.Hub {
	return s.hub
}

// Serve starts the HTTP server and blocks until the context is
// cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting API server", "addr", s.addr)

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	h := NewHandlers(s.store, s.bundle, s.sessionStore, s.hub, s.logger)
	SetupRoutes(r, h)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Live-reload locale overrides in dev mode.
	if s.watchLocales && s.localesDir != "" {
		eg.Go(func() error {
			return s.bundle.Watch(egctx, s.localesDir, s.logger)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down API server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
