package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/go-spring-projects/website/internal/config"
	"github.com/go-spring-projects/website/internal/locale"
	"github.com/go-spring-projects/website/internal/log"
	"github.com/go-spring-projects/website/internal/site"
)

// Config holds server configuration.
type Config struct {
	Host     string
	Port     int
	Root     string // directory holding the generated site
	AllowAll bool   // allow all CORS origins
}

// Server serves a generated site with clean URLs, the locale cookie and
// live reload. The site config may be swapped after a rebuild; the base
// path is fixed when the router is built.
type Server struct {
	cfg        Config
	base       string
	site       atomic.Pointer[config.Config]
	hub        *Hub
	logger     zerolog.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server for the site described by siteCfg.
func New(cfg Config, siteCfg *config.Config) *Server {
	s := &Server{
		cfg:    cfg,
		base:   siteCfg.Base,
		hub:    NewHub(),
		logger: log.WithComponent("server"),
	}
	s.site.Store(siteCfg)
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get(site.LiveReloadPath, s.hub.ServeHTTP)

	base := strings.TrimSuffix(s.base, "/")
	pages := locale.Middleware(s.resolveLocale)(http.StripPrefix(base, Files(s.cfg.Root)))
	r.Handle(base+"/*", pages)
	if base != "" {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, s.base, http.StatusFound)
		})
	}

	return r
}

// resolveLocale picks the language of the locale owning the request path.
func (s *Server) resolveLocale(r *http.Request) string {
	route := strings.TrimPrefix(r.URL.Path, strings.TrimSuffix(s.base, "/"))
	if route == "" {
		route = "/"
	}
	return s.site.Load().LocaleFor(route).Lang
}

// UpdateSite swaps in a reloaded site config so locale changes apply
// without a restart. Its base is ignored.
func (s *Server) UpdateSite(siteCfg *config.Config) {
	s.site.Store(siteCfg)
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Hub returns the live reload hub.
func (s *Server) Hub() *Hub { return s.hub }

// Addr is the address Start listens on.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
}

// Start begins listening on the configured address. It returns nil after
// a graceful Shutdown.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info().Str("addr", s.Addr()).Str("root", s.cfg.Root).Msg("dev server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listening on %s: %w", s.Addr(), err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// requestLogger writes one structured line per request.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
