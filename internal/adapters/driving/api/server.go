package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/custodia-labs/docshelf/internal/core/ports/driving"
	"github.com/custodia-labs/docshelf/internal/logger"
	"github.com/custodia-labs/docshelf/internal/metrics"
)

const (
	// DefaultMediaPrefix is where stored files are served.
	DefaultMediaPrefix = "/media/"

	// DefaultMaxUploadBytes caps a multipart upload body.
	DefaultMaxUploadBytes = 50 << 20

	shutdownTimeout = 10 * time.Second
)

// Ports holds the services the API drives.
// Search and Document are required; Index is optional.
type Ports struct {
	Search   driving.SearchService
	Document driving.DocumentService
	Index    driving.IndexService
}

// Options configures the API server.
type Options struct {
	// MaxUploadBytes caps upload bodies. Zero means DefaultMaxUploadBytes.
	MaxUploadBytes int64

	// SearchLimit is the result limit when the request gives none.
	SearchLimit int

	// Media serves stored files under MediaPrefix. Nil disables /media/.
	Media http.Handler

	// MediaPrefix defaults to DefaultMediaPrefix.
	MediaPrefix string

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server is the HTTP API.
type Server struct {
	ports         *Ports
	opts          Options
	log           *zap.Logger
	router        chi.Router
	errorHandlers []errorHandler
}

// NewServer creates the API server and its routes.
func NewServer(ports *Ports, opts Options) (*Server, error) {
	if ports == nil || ports.Search == nil || ports.Document == nil {
		return nil, errors.New("api: search and document services are required")
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if opts.MediaPrefix == "" {
		opts.MediaPrefix = DefaultMediaPrefix
	}

	s := &Server{
		ports:         ports,
		opts:          opts,
		log:           logger.Zap().Named("api"),
		errorHandlers: defaultErrorHandlers(),
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware())
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/upload/", s.handleUpload)
		r.Get("/documents/", s.handleListDocuments)
		r.Get("/documents/{id}/", s.handleGetDocument)
		r.Get("/documents/{id}/file", s.handleDownload)
		r.Get("/search/", s.handleSearch)
		r.Get("/stats/", s.handleStats)
		r.Delete("/delete/{id}/", s.handleDelete)
		r.Post("/reindex/", s.handleReindex)
	})

	if s.opts.Media != nil {
		r.Handle(s.opts.MediaPrefix+"*", http.StripPrefix(s.opts.MediaPrefix, s.opts.Media))
	}
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// requestLogger attaches a request-scoped logger and logs each request at debug.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		l := s.log.With(zap.String("request_id", middleware.GetReqID(r.Context())))
		next.ServeHTTP(w, r.WithContext(logger.ContextWithLogger(r.Context(), l)))
		l.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadTimeout:       s.opts.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.opts.WriteTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
