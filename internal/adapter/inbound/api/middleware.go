package api

import (
	"net"
	"net/http"
	"strings"
	"time"

	"testsmith/internal/application/common/logging"
	"testsmith/internal/application/common/slogger"
	"testsmith/internal/application/dto"
)

// MiddlewareFunc defines the middleware function signature.
type MiddlewareFunc func(http.Handler) http.Handler

// correlationIDHeader carries the request correlation ID in and out of the API.
const correlationIDHeader = "X-Request-ID"

// responseWriter captures the status code written by the wrapped handler.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// NewCorrelationMiddleware propagates the inbound X-Request-ID through the
// request context, generating a fresh ID when the client sent none. The ID is
// echoed back on the response.
func NewCorrelationMiddleware() MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if id := r.Header.Get(correlationIDHeader); id != "" {
				ctx = logging.WithCorrelationID(ctx, id)
			}
			ctx, correlationID := logging.EnsureCorrelationID(ctx)

			w.Header().Set(correlationIDHeader, correlationID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// NewLoggingMiddleware logs one structured entry per completed request.
func NewLoggingMiddleware() MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapped, r)

			fields := slogger.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      wrapped.statusCode,
				"duration_ms": time.Since(start).Milliseconds(),
				"remote_ip":   clientIP(r),
			}
			if r.URL.RawQuery != "" {
				fields["query"] = r.URL.RawQuery
			}
			slogger.Info(r.Context(), "HTTP request completed", fields)
		})
	}
}

// NewCORSMiddleware adds permissive CORS headers and answers preflights.
func NewCORSMiddleware() MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")

			allowedHeaders := "Content-Type, Authorization, " + correlationIDHeader
			if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
				allowedHeaders += ", " + requested
			}
			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Max-Age", "86400")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// NewRecoveryMiddleware converts handler panics into 500 responses.
func NewRecoveryMiddleware() MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					slogger.Error(r.Context(), "Handler panicked", slogger.Fields{
						"panic":  rec,
						"method": r.Method,
						"path":   r.URL.Path,
					})
					writeJSONResponse(w, http.StatusInternalServerError,
						dto.NewErrorResponse(dto.ErrorCodeInternalError, "an internal error occurred", nil))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the originating client IP, honouring forwarding headers.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if idx := strings.Index(forwarded, ","); idx >= 0 {
			return strings.TrimSpace(forwarded[:idx])
		}
		return strings.TrimSpace(forwarded)
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
