package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/frahmantamala/internship-management/internal"
	"github.com/frahmantamala/internship-management/pkg/logger"
)

const TraceHeader = "X-Trace-ID"

// RequestID propagates the caller's X-Trace-ID or mints one, storing it on
// the context and on the request logger.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(TraceHeader)
		if traceID == "" || len(traceID) > 128 {
			traceID = uuid.NewString()
		}

		ctx := internal.ContextWithTraceID(r.Context(), traceID)
		ctx = logger.With(ctx, "trace_id", traceID)

		w.Header().Set(TraceHeader, traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
