package logging

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type traceKey string

const (
	//TraceIDHeader carries upstream request trace id
	TraceIDHeader = "X-Request-Id"
	traceIDKey    = traceKey("reqTraceId")
)

// WithTraceID returns context with supplied trace id
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceID returns context trace id or empty string
func TraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	traceID, _ := ctx.Value(traceIDKey).(string)
	return traceID
}

// Trace returns request with trace id in context, it reuses X-Request-Id header or generates a new UUID
func Trace(r *http.Request) *http.Request {
	if TraceID(r.Context()) != "" {
		return r
	}
	traceID := r.Header.Get(TraceIDHeader)
	if traceID == "" {
		traceID = uuid.New().String()
	}
	return r.WithContext(WithTraceID(r.Context(), traceID))
}

// Middleware assigns trace id to each request
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = Trace(r)
		w.Header().Set(TraceIDHeader, TraceID(r.Context()))
		next.ServeHTTP(w, r)
	})
}

func contextValues(ctx context.Context) []any {
	if traceID := TraceID(ctx); traceID != "" {
		return []any{string(traceIDKey), traceID}
	}
	return nil
}
