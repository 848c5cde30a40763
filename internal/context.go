package internal

import (
	"context"
	"time"
)

// DefaultLookupTimeout bounds a store lookup when no timeout is configured.
const DefaultLookupTimeout = 5 * time.Second

type traceKey struct{}

func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceKey{}, traceID)
}

// TraceIDFromContext returns the id set by ContextWithTraceID, or "".
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	traceID, _ := ctx.Value(traceKey{}).(string)
	return traceID
}

// WithTimeout derives a lookup context. Non-positive durations use
// DefaultLookupTimeout.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultLookupTimeout
	}
	return context.WithTimeout(ctx, d)
}
