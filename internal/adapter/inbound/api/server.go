package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"testsmith/internal/application/common/slogger"
	"testsmith/internal/config"
	"testsmith/internal/port/inbound"
)

// Server represents the HTTP API server.
type Server struct {
	config        *config.Config
	httpServer    *http.Server
	routeRegistry *RouteRegistry
	listener      net.Listener
	isRunning     bool
	mu            sync.RWMutex
}

// ServerBuilder provides a fluent interface for building Server instances.
type ServerBuilder struct {
	config          *config.Config
	healthService   inbound.HealthService
	analysisService inbound.AnalysisService
	testCaseService inbound.TestCaseService
	errorHandler    ErrorHandler
	middleware      []MiddlewareFunc
}

// NewServerBuilder creates a new ServerBuilder.
func NewServerBuilder(cfg *config.Config) *ServerBuilder {
	return &ServerBuilder{
		config:     cfg,
		middleware: make([]MiddlewareFunc, 0),
	}
}

// WithHealthService sets the health service.
func (b *ServerBuilder) WithHealthService(service inbound.HealthService) *ServerBuilder {
	b.healthService = service
	return b
}

// WithAnalysisService sets the analysis service.
func (b *ServerBuilder) WithAnalysisService(service inbound.AnalysisService) *ServerBuilder {
	b.analysisService = service
	return b
}

// WithTestCaseService sets the test case service.
func (b *ServerBuilder) WithTestCaseService(service inbound.TestCaseService) *ServerBuilder {
	b.testCaseService = service
	return b
}

// WithErrorHandler sets the error handler.
func (b *ServerBuilder) WithErrorHandler(handler ErrorHandler) *ServerBuilder {
	b.errorHandler = handler
	return b
}

// WithMiddleware adds middleware to the chain.
func (b *ServerBuilder) WithMiddleware(middleware MiddlewareFunc) *ServerBuilder {
	b.middleware = append(b.middleware, middleware)
	return b
}

// WithDefaultMiddleware adds the standard middleware chain.
func (b *ServerBuilder) WithDefaultMiddleware() *ServerBuilder {
	return b.
		WithMiddleware(NewRecoveryMiddleware()).
		WithMiddleware(NewCorrelationMiddleware()).
		WithMiddleware(NewLoggingMiddleware()).
		WithMiddleware(NewCORSMiddleware())
}

// Build creates the Server instance.
func (b *ServerBuilder) Build() (*Server, error) {
	if err := b.validate(); err != nil {
		return nil, fmt.Errorf("server builder validation failed: %w", err)
	}

	registry := NewRouteRegistry()
	healthHandler := NewHealthHandler(b.healthService, b.errorHandler)
	analysisHandler := NewAnalysisHandler(b.analysisService, b.testCaseService, b.errorHandler)
	registry.RegisterAPIRoutes(healthHandler, analysisHandler)

	// Middleware is applied in reverse so the first registered runs outermost.
	var handler http.Handler = registry.BuildServeMux()
	for i := len(b.middleware) - 1; i >= 0; i-- {
		handler = b.middleware[i](handler)
	}

	host := b.config.API.Host
	if host == "" {
		host = "0.0.0.0"
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", host, b.config.API.Port),
		Handler:      handler,
		ReadTimeout:  b.config.API.ReadTimeout,
		WriteTimeout: b.config.API.WriteTimeout,
	}

	return &Server{
		config:        b.config,
		httpServer:    httpServer,
		routeRegistry: registry,
	}, nil
}

// validate ensures all required dependencies are set.
func (b *ServerBuilder) validate() error {
	if b.config == nil {
		return errors.New("config is required")
	}
	if b.healthService == nil {
		return errors.New("health service is required")
	}
	if b.analysisService == nil {
		return errors.New("analysis service is required")
	}
	if b.testCaseService == nil {
		return errors.New("test case service is required")
	}
	if b.errorHandler == nil {
		return errors.New("error handler is required")
	}
	return nil
}

// NewServer creates a fully wired API server with the default middleware chain.
func NewServer(
	cfg *config.Config,
	healthService inbound.HealthService,
	analysisService inbound.AnalysisService,
	testCaseService inbound.TestCaseService,
	errorHandler ErrorHandler,
) (*Server, error) {
	return NewServerBuilder(cfg).
		WithHealthService(healthService).
		WithAnalysisService(analysisService).
		WithTestCaseService(testCaseService).
		WithErrorHandler(errorHandler).
		WithDefaultMiddleware().
		Build()
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return errors.New("server is already running")
	}

	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	s.listener = listener

	// Resolve the actual port when bound to port 0.
	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		s.httpServer.Addr = fmt.Sprintf("%s:%d", s.Host(), tcpAddr.Port)
	}

	s.isRunning = true
	slogger.InfoNoCtx("API server listening", slogger.Field("address", s.httpServer.Addr))

	go func() {
		if serveErr := s.httpServer.Serve(listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slogger.ErrorNoCtx("API server stopped unexpectedly", slogger.Field("error", serveErr.Error()))
			s.mu.Lock()
			s.isRunning = false
			s.mu.Unlock()
		}
	}()

	select {
	case <-ctx.Done():
		s.isRunning = false
		_ = listener.Close()
		return ctx.Err()
	default:
		return nil
	}
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}
	s.isRunning = false

	return s.httpServer.Shutdown(ctx)
}

// Address returns the server's listening address.
func (s *Server) Address() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.httpServer.Addr
}

// Host returns the configured host, defaulting to all interfaces.
func (s *Server) Host() string {
	if s.config.API.Host == "" {
		return "0.0.0.0"
	}
	return s.config.API.Host
}

// IsRunning reports whether the server is currently serving.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// ReadTimeout returns the server's read timeout.
func (s *Server) ReadTimeout() time.Duration {
	return s.config.API.ReadTimeout
}

// WriteTimeout returns the server's write timeout.
func (s *Server) WriteTimeout() time.Duration {
	return s.config.API.WriteTimeout
}
