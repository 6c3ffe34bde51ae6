package logging

import (
	"context"

	"github.com/google/uuid"
)

// contextKey is the private type for context keys owned by this package.
type contextKey string

// CorrelationIDKey carries the per-request correlation ID through contexts.
const CorrelationIDKey contextKey = "correlation_id"

// WithCorrelationID returns a context carrying the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, id)
}

// CorrelationIDFromContext extracts the correlation ID from a context,
// returning an empty string when none is set.
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return id
	}
	return ""
}

// EnsureCorrelationID returns a context guaranteed to carry a correlation ID,
// generating a new one when the incoming context has none.
func EnsureCorrelationID(ctx context.Context) (context.Context, string) {
	if id := CorrelationIDFromContext(ctx); id != "" {
		return ctx, id
	}
	id := uuid.New().String()
	return WithCorrelationID(ctx, id), id
}
