package middleware

import (
	"context"

	"github.com/Suhaibinator/ERouter/pkg/common"
	"github.com/google/uuid"
)

// TraceIDHeader is the response header Trace sets to the request's trace ID.
const TraceIDHeader = "X-Trace-ID"

// traceIDKey is the key used to store the trace ID in the request context
type traceIDKey struct{}

// TraceIDKey is the context key under which the trace ID is stored.
var TraceIDKey = traceIDKey{}

// NewTraceID generates a new unique trace ID.
func NewTraceID() string {
	return uuid.New().String()
}

// WithTraceID returns a copy of ctx carrying traceID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// Trace creates a handler that makes sure the request carries a trace ID and
// echoes it in the X-Trace-ID response header. An incoming X-Trace-ID request
// header is reused when present.
func Trace() common.Handler {
	return func(req *common.Request, res *common.Response, next common.Next) error {
		traceID := GetTraceID(req)
		if traceID == "" {
			traceID = req.Headers.Get(TraceIDHeader)
		}
		if traceID == "" {
			traceID = NewTraceID()
		}

		req.SetContext(WithTraceID(req.Context(), traceID))
		res.Headers.Set(TraceIDHeader, traceID)

		return next()
	}
}

// GetTraceID extracts the trace ID from the request context.
// Returns an empty string if no trace ID is found.
func GetTraceID(req *common.Request) string {
	return GetTraceIDFromContext(req.Context())
}

// GetTraceIDFromContext extracts the trace ID from a context.
// Returns an empty string if no trace ID is found.
func GetTraceIDFromContext(ctx context.Context) string {
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
		return traceID
	}
	return ""
}
