package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"testsmith/internal/application/common/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelationMiddleware_GeneratesIDWhenMissing(t *testing.T) {
	var seen string
	handler := NewCorrelationMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.CorrelationIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get(correlationIDHeader))
}

func TestCorrelationMiddleware_PropagatesClientID(t *testing.T) {
	var seen string
	handler := NewCorrelationMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.CorrelationIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(correlationIDHeader, "client-supplied-id")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	assert.Equal(t, "client-supplied-id", seen)
	assert.Equal(t, "client-supplied-id", recorder.Header().Get(correlationIDHeader))
}

func TestRecoveryMiddleware_ConvertsPanicsTo500(t *testing.T) {
	handler := NewRecoveryMiddleware()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/analyses", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	response := decodeErrorResponse(t, recorder)
	assert.Equal(t, "INTERNAL_ERROR", response.Error)
}

func TestCORSMiddleware_AnswersPreflight(t *testing.T) {
	var reached bool
	handler := NewCORSMiddleware()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		reached = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/analyses", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.False(t, reached)
	assert.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "86400", recorder.Header().Get("Access-Control-Max-Age"))
}

func TestCORSMiddleware_PassesThroughNonPreflight(t *testing.T) {
	handler := NewCORSMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/analyses", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name     string
		prepare  func(*http.Request)
		expected string
	}{
		{
			name: "forwarded chain uses first hop",
			prepare: func(r *http.Request) {
				r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
			},
			expected: "203.0.113.7",
		},
		{
			name: "real ip header",
			prepare: func(r *http.Request) {
				r.Header.Set("X-Real-IP", "203.0.113.9")
			},
			expected: "203.0.113.9",
		},
		{
			name:     "remote addr fallback",
			prepare:  func(*http.Request) {},
			expected: "192.0.2.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			tt.prepare(req)
			assert.Equal(t, tt.expected, clientIP(req))
		})
	}
}
