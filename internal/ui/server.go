// Package ui serves the web frontend of the demo table. It is the
// rendering layer and navigation adapter the state codec is designed
// around: the URL query string is the persisted state, and every control
// on the page is a link or form whose target was computed by dispatching
// an action against the current query map.
package ui

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/tablekit/internal/store"
	"github.com/leapstack-labs/tablekit/pkg/tablestate"
)

// Server is the web UI server.
type Server struct {
	store        *store.Store
	table        *tablestate.Table
	sessionStore *sessions.CookieStore
	addr         string
	pageSize     int
	logger       *slog.Logger
}

// Config holds configuration for the UI server.
type Config struct {
	Store         *store.Store
	Table         *tablestate.Table
	Addr          string
	PageSize      int
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

	return &Server{
		store:        cfg.Store,
		table:        cfg.Table,
		sessionStore: sessionStore,
		addr:         cfg.Addr,
		pageSize:     cfg.PageSize,
		logger:       logger,
	}
}

// Routes builds the chi router for the server.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.TablePage)
	r.Post("/actions/search", s.Search)
	r.Post("/actions/filter/{column}", s.ApplyFilter)

	return r
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("web UI listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
