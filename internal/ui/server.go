// Package ui provides the planning dashboard web server.
package ui

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/planportal/internal/catalog"
	"github.com/leapstack-labs/planportal/internal/portal"
	"github.com/leapstack-labs/planportal/internal/state"
	"github.com/leapstack-labs/planportal/internal/ui/notifier"
	"github.com/leapstack-labs/planportal/internal/ui/resources"
	"github.com/leapstack-labs/planportal/internal/ui/router"
	"golang.org/x/sync/errgroup"
)

const (
	debounceDelay   = 100 * time.Millisecond
	shutdownTimeout = 5 * time.Second
)

// Server is the main UI server.
type Server struct {
	store        *state.SQLiteStore
	catalog      *catalog.Catalog
	service      *portal.Service
	queryDB      *sql.DB
	sessionStore *sessions.CookieStore
	port         int
	watch        bool
	logger       *slog.Logger
	notifier     *notifier.Notifier
}

// Config holds configuration for the UI server.
type Config struct {
	Store   *state.SQLiteStore
	Catalog *catalog.Catalog
	Service *portal.Service
	// QueryDB backs the SQL console. Defaults to the store's connection.
	QueryDB       *sql.DB
	Port          int
	Watch         bool
	SessionSecret string
	Logger        *slog.Logger
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	queryDB := cfg.QueryDB
	if queryDB == nil && cfg.Store != nil {
		queryDB = cfg.Store.DB()
	}

	return &Server{
		store:        cfg.Store,
		catalog:      cfg.Catalog,
		service:      cfg.Service,
		queryDB:      queryDB,
		sessionStore: sessionStore,
		port:         cfg.Port,
		watch:        cfg.Watch,
		logger:       logger,
		notifier:     notifier.New(),
	}
}

// Handler builds the router with middleware and every feature mounted.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	deps := router.Deps{
		Documents:    s.store,
		Regulations:  s.catalog,
		Service:      s.service,
		QueryDB:      s.queryDB,
		SessionStore: s.sessionStore,
		Notifier:     s.notifier,
	}
	if err := router.SetupRoutes(r, deps, s.IsDev()); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting UI server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	handler, err := s.Handler()
	if err != nil {
		return err
	}

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start file watcher if enabled
	if s.watch {
		eg.Go(func() error {
			return s.watchFiles(egctx)
		})
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// IsDev reports whether the binary was built with the dev tag.
func (s *Server) IsDev() bool {
	return resources.IsDev
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchFiles reloads the regulation catalog when its override file changes.
// The parent directory is watched rather than the file, since editors often
// replace files instead of writing them in place.
func (s *Server) watchFiles(ctx context.Context) error {
	path := ""
	if s.catalog != nil {
		path = s.catalog.OverridePath()
	}
	if path == "" {
		s.logger.Debug("no regulations file configured, not watching")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		s.logger.Error("failed to watch regulations file", "path", path, "error", err)
		// Don't fail - continue without watching
		return nil
	}

	target := filepath.Clean(path)

	// Debounce timer
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != target {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				s.reloadCatalog(ctx, event.Name)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// reloadCatalog reloads the regulation catalog and notifies SSE clients.
// A failed reload keeps the previous catalog.
func (s *Server) reloadCatalog(ctx context.Context, file string) {
	s.logger.Debug("regulations file changed, reloading", "file", file)
	if err := s.catalog.Reload(ctx); err != nil {
		s.logger.Error("failed to reload regulations", "error", err)
		return
	}
	s.notifier.Broadcast(notifier.CatalogReloaded)
}
