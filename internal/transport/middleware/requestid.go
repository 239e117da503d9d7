package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/fintrackhq/fintrack/pkg/logger"
)

type traceIDKey struct{}

// TraceIDFromContext returns the trace ID set by RequestID, or "".
func TraceIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey{}).(string); ok {
		return id
	}
	return ""
}

func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), traceIDKey{}, traceID)
		ctx = logger.With(ctx, "traceID", traceID)

		// propagate back to response
		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
