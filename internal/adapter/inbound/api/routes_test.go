package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRoute_ValidatesPattern(t *testing.T) {
	handler := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	tests := []struct {
		name    string
		pattern string
		wantErr bool
	}{
		{name: "valid GET", pattern: "GET /health", wantErr: false},
		{name: "valid with path value", pattern: "GET /analyses/{id}", wantErr: false},
		{name: "missing method", pattern: "/health", wantErr: true},
		{name: "unknown method", pattern: "FETCH /health", wantErr: true},
		{name: "path without slash", pattern: "GET health", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewRouteRegistry()
			err := registry.RegisterRoute(tt.pattern, handler)
			if tt.wantErr {
				require.Error(t, err)
				assert.False(t, registry.HasRoute(tt.pattern))
			} else {
				require.NoError(t, err)
				assert.True(t, registry.HasRoute(tt.pattern))
			}
		})
	}
}

func TestRegisterRoute_RejectsDuplicates(t *testing.T) {
	registry := NewRouteRegistry()
	handler := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	require.NoError(t, registry.RegisterRoute("GET /health", handler))
	err := registry.RegisterRoute("GET /health", handler)
	require.Error(t, err)
	assert.Equal(t, 1, registry.RouteCount())
}

func TestRegisterAPIRoutes(t *testing.T) {
	registry := NewRouteRegistry()
	errorHandler := NewDefaultErrorHandler()
	healthHandler := NewHealthHandler(&fakeHealthService{}, errorHandler)
	analysisHandler := NewAnalysisHandler(&fakeAnalysisService{}, &fakeTestCaseService{}, errorHandler)

	registry.RegisterAPIRoutes(healthHandler, analysisHandler)

	expected := []string{
		"GET /health",
		"POST /analyze",
		"POST /analyses",
		"GET /analyses",
		"GET /analyses/{id}",
		"DELETE /analyses/{id}",
		"GET /analyses/{id}/test-cases",
	}
	for _, pattern := range expected {
		assert.True(t, registry.HasRoute(pattern), "expected route %q", pattern)
	}
	assert.Equal(t, len(expected), registry.RouteCount())
}
