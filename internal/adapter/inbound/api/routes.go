package api

import (
	"fmt"
	"net/http"
	"strings"
)

// RouteRegistry manages HTTP route registration using Go 1.22+ ServeMux patterns.
type RouteRegistry struct {
	routes   map[string]http.Handler
	patterns []string
	mux      *http.ServeMux
}

// NewRouteRegistry creates a new RouteRegistry.
func NewRouteRegistry() *RouteRegistry {
	return &RouteRegistry{
		routes:   make(map[string]http.Handler),
		patterns: make([]string, 0),
		mux:      http.NewServeMux(),
	}
}

// RegisterAPIRoutes registers all API routes with their handlers.
func (r *RouteRegistry) RegisterAPIRoutes(healthHandler *HealthHandler, analysisHandler *AnalysisHandler) {
	register := func(pattern string, handler http.HandlerFunc) {
		if err := r.RegisterRoute(pattern, handler); err != nil {
			panic(fmt.Errorf("failed to register route %q: %w", pattern, err))
		}
	}

	register("GET /health", healthHandler.GetHealth)

	register("POST /analyze", analysisHandler.Analyze)

	register("POST /analyses", analysisHandler.CreateAnalysis)
	register("GET /analyses", analysisHandler.ListAnalyses)
	register("GET /analyses/{id}", analysisHandler.GetAnalysis)
	register("DELETE /analyses/{id}", analysisHandler.DeleteAnalysis)
	register("GET /analyses/{id}/test-cases", analysisHandler.GetAnalysisTestCases)
}

// RegisterRoute registers a single route with the given pattern and handler.
func (r *RouteRegistry) RegisterRoute(pattern string, handler http.Handler) error {
	if err := validatePattern(pattern); err != nil {
		return err
	}
	if _, exists := r.routes[pattern]; exists {
		return fmt.Errorf("route pattern %q already registered", pattern)
	}

	r.mux.Handle(pattern, handler)
	r.routes[pattern] = handler
	r.patterns = append(r.patterns, pattern)
	return nil
}

// BuildServeMux returns the configured ServeMux.
func (r *RouteRegistry) BuildServeMux() *http.ServeMux {
	return r.mux
}

// HasRoute checks if a route pattern is registered.
func (r *RouteRegistry) HasRoute(pattern string) bool {
	_, exists := r.routes[pattern]
	return exists
}

// RouteCount returns the number of registered routes.
func (r *RouteRegistry) RouteCount() int {
	return len(r.routes)
}

func validatePattern(pattern string) error {
	parts := strings.SplitN(pattern, " ", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid route pattern %q: must have format 'METHOD /path'", pattern)
	}

	method, path := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])

	validMethods := map[string]bool{
		"GET": true, "POST": true, "PUT": true, "DELETE": true,
		"PATCH": true, "HEAD": true, "OPTIONS": true,
	}
	if !validMethods[method] {
		return fmt.Errorf("invalid HTTP method %q in pattern %q", method, pattern)
	}
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path %q in pattern %q must start with '/'", path, pattern)
	}
	return nil
}
