// Package httpserver wires the compile API, health and metrics endpoints
// into one HTTP server.
package httpserver

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/domeafavour/hello-ast/internal/errors"
	"github.com/domeafavour/hello-ast/internal/logfields"
	"github.com/domeafavour/hello-ast/internal/metrics"
	"github.com/domeafavour/hello-ast/internal/server/handlers"
	smw "github.com/domeafavour/hello-ast/internal/server/middleware"
)

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	Addr string
	// Registry, when set, is served on /metrics.
	Registry *prom.Registry
	Compile  handlers.CompileOptions
	Logger   *slog.Logger
}

// Server serves the HTTP API.
type Server struct {
	opts         Options
	mu           sync.Mutex
	srv          *http.Server
	ln           net.Listener
	errorAdapter *errors.HTTPErrorAdapter
	handler      http.Handler
}

// New builds the routes for opts. Nothing listens until Start.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Compile.Logger == nil {
		opts.Compile.Logger = opts.Logger
	}

	s := &Server{opts: opts, errorAdapter: errors.NewHTTPErrorAdapter(opts.Logger)}

	compile := handlers.NewCompileHandlers(opts.Compile)
	monitoring := handlers.NewMonitoringHandlers(time.Now(), s.errorAdapter)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/compile", compile.HandleCompile)
	mux.HandleFunc("POST /v1/tokens", compile.HandleTokens)
	mux.HandleFunc("GET /healthz", monitoring.HandleHealthCheck)
	if opts.Registry != nil {
		mux.Handle("GET /metrics", metrics.HTTPHandler(opts.Registry))
	}

	s.handler = smw.Chain(opts.Logger, s.errorAdapter)(mux)
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start binds the listen address and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.opts.Addr)
	if err != nil {
		return errors.Wrap(err, errors.CategoryServer, errors.SeverityFatal, "failed to listen").
			WithContext("addr", s.opts.Addr)
	}
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.mu.Lock()
	s.ln, s.srv = ln, srv
	s.mu.Unlock()

	go func() {
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			s.opts.Logger.Error("HTTP server failed", logfields.Error(err))
		}
	}()
	s.opts.Logger.Info("HTTP server listening", slog.String("addr", ln.Addr().String()))
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		return errors.Wrap(err, errors.CategoryServer, errors.SeverityError, "shutdown failed")
	}
	return nil
}

// Run starts the server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	s.opts.Logger.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Stop(shutdownCtx)
}
