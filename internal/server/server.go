// Package server is the browser-facing viewer: an HTML table page plus a
// small JSON API over the same session.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/puretable/internal/logging"
	"github.com/rshade/puretable/internal/pagination"
	"github.com/rshade/puretable/internal/session"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Timeouts.
const (
	readHeaderTimeout      = 10 * time.Second
	shutdownTimeout        = 5 * time.Second
	defaultCleanupInterval = time.Minute
	defaultMaxUploadBytes  = 32 << 20
)

// Route names, also used as the operation in request logs.
const (
	routeIndex    = "index"
	routeUpload   = "upload"
	routeView     = "api_view"
	routeColumns  = "api_columns"
	routeDocument = "api_document"
	routeHealth   = "healthz"
	routeMetrics  = "metrics"
)

// Options configures a Server.
type Options struct {
	Host            string
	Port            int
	MaxUploadBytes  int64
	DefaultPageSize int
	WindowSize      int

	// CleanupInterval is how often expired cached views are dropped.
	CleanupInterval time.Duration
}

// Server serves one session over HTTP.
type Server struct {
	opts     Options
	session  *session.Session
	logger   zerolog.Logger
	metrics  *Metrics
	template *template.Template
	router   *mux.Router
}

// New builds a Server and its routes.
func New(opts Options, sess *session.Session, logger zerolog.Logger) (*Server, error) {
	if opts.DefaultPageSize < pagination.MinPageSize {
		opts.DefaultPageSize = pagination.DefaultPageSize
	}
	if opts.WindowSize < 1 {
		opts.WindowSize = pagination.DefaultWindowSize
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		opts:     opts,
		session:  sess,
		logger:   logging.ComponentLogger(logger, "server"),
		metrics:  NewMetrics(sess.Deriver()),
		template: tmpl,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.loggingMiddleware)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet).Name(routeIndex)
	r.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost).Name(routeUpload)

	r.HandleFunc("/api/view", s.handleView).Methods(http.MethodGet).Name(routeView)
	r.HandleFunc("/api/columns", s.handleColumns).Methods(http.MethodGet).Name(routeColumns)
	r.HandleFunc("/api/document", s.handleDocument).Methods(http.MethodPost).Name(routeDocument)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet).Name(routeHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})).
		Methods(http.MethodGet).Name(routeMetrics)

	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr is the host:port the server listens on.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.opts.Host, strconv.Itoa(s.opts.Port))
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Run listens on Addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	s.logger.Info().
		Ctx(ctx).
		Str("operation", "serve").
		Str("address", ln.Addr().String()).
		Msg("viewer listening")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving HTTP: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		s.logger.Info().Ctx(ctx).Str("operation", "shutdown").Msg("viewer shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		s.cleanupLoop(gctx)
		return nil
	})

	return g.Wait()
}

// cleanupLoop drops expired cached views until ctx is done.
func (s *Server) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(s.opts.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.session.Deriver().CleanupExpired(); n > 0 {
				s.logger.Debug().
					Str("operation", "cache_cleanup").
					Int("removed", n).
					Msg("expired views dropped")
			}
		}
	}
}
