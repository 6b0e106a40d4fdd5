// Package router provides a request router for edge and serverless handlers.
// It matches one request event against an ordered route table, runs the
// matched route's handler chain, and applies an optional global CORS policy.
package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Suhaibinator/ERouter/pkg/codec"
	"github.com/Suhaibinator/ERouter/pkg/common"
	"github.com/Suhaibinator/ERouter/pkg/metrics"
	"github.com/Suhaibinator/ERouter/pkg/middleware"
	"go.uber.org/zap"
)

// Router holds an ordered route table and an optional CORS policy.
//
// Routes and CORS must be configured before the first call to Handle.
// After that the router is read-only and Handle is safe to call from any
// number of goroutines.
type Router struct {
	config   RouterConfig
	logger   *zap.Logger
	handlers common.HandlerChain
	routes   []common.Route
	cors     *corsPolicy
}

// NewRouter creates a new Router with the given configuration.
func NewRouter(config RouterConfig) *Router {
	// Set up the logger
	logger := config.Logger
	if logger == nil {
		// Create a default logger if none is provided
		var err error
		logger, err = zap.NewProduction()
		if err != nil {
			// Fallback to a no-op logger if we can't create a production logger
			logger = zap.NewNop()
		}
	}

	return &Router{
		config:   config,
		logger:   logger,
		handlers: common.NewHandlerChain(config.Handlers...),
	}
}

// Register appends a route to the route table and returns the router for chaining.
//
// method is case-insensitive and may be MethodAny. Routes are matched in
// registration order and duplicates are kept; the earliest match always wins.
// Patterns are not validated: a malformed pattern simply never matches
// (see ValidatePatterns).
func (r *Router) Register(method, pattern string, handlers ...common.Handler) *Router {
	route := common.Route{
		Method:   strings.ToUpper(method),
		Pattern:  pattern,
		Handlers: r.handlers.Append(handlers...),
	}
	r.routes = append(r.routes, route)

	r.logger.Debug("Route registered",
		zap.String("method", route.Method),
		zap.String("pattern", route.Pattern),
		zap.Int("handlers", len(route.Handlers)),
	)
	return r
}

// Connect registers a CONNECT route.
func (r *Router) Connect(pattern string, handlers ...common.Handler) *Router {
	return r.Register(http.MethodConnect, pattern, handlers...)
}

// Delete registers a DELETE route.
func (r *Router) Delete(pattern string, handlers ...common.Handler) *Router {
	return r.Register(http.MethodDelete, pattern, handlers...)
}

// Get registers a GET route.
func (r *Router) Get(pattern string, handlers ...common.Handler) *Router {
	return r.Register(http.MethodGet, pattern, handlers...)
}

// Head registers a HEAD route.
func (r *Router) Head(pattern string, handlers ...common.Handler) *Router {
	return r.Register(http.MethodHead, pattern, handlers...)
}

// Options registers an OPTIONS route.
// With CORS enabled, OPTIONS requests are answered as preflights and never reach it.
func (r *Router) Options(pattern string, handlers ...common.Handler) *Router {
	return r.Register(http.MethodOptions, pattern, handlers...)
}

// Patch registers a PATCH route.
func (r *Router) Patch(pattern string, handlers ...common.Handler) *Router {
	return r.Register(http.MethodPatch, pattern, handlers...)
}

// Post registers a POST route.
func (r *Router) Post(pattern string, handlers ...common.Handler) *Router {
	return r.Register(http.MethodPost, pattern, handlers...)
}

// Put registers a PUT route.
func (r *Router) Put(pattern string, handlers ...common.Handler) *Router {
	return r.Register(http.MethodPut, pattern, handlers...)
}

// Trace registers a TRACE route.
func (r *Router) Trace(pattern string, handlers ...common.Handler) *Router {
	return r.Register(http.MethodTrace, pattern, handlers...)
}

// Any registers a route matching every request method.
func (r *Router) Any(pattern string, handlers ...common.Handler) *Router {
	return r.Register(MethodAny, pattern, handlers...)
}

// All registers a route matching every request method.
//
// Deprecated: use Any.
func (r *Router) All(pattern string, handlers ...common.Handler) *Router {
	return r.Any(pattern, handlers...)
}

// Routes returns a copy of the route table in match order.
func (r *Router) Routes() []common.Route {
	routes := make([]common.Route, len(r.routes))
	copy(routes, r.routes)
	return routes
}

// Handle dispatches one request event and returns the finalized response.
// It never panics on handler faults; those become error responses.
func (r *Router) Handle(ctx context.Context, ev Event) *Result {
	start := time.Now()

	if ctx == nil {
		ctx = context.Background()
	}
	if r.config.EnableTraceID && middleware.GetTraceIDFromContext(ctx) == "" {
		ctx = middleware.WithTraceID(ctx, middleware.NewTraceID())
	}

	req, res, route := r.dispatch(ctx, ev)
	result := r.serialize(req, res)

	r.observe(req, route, result.Status, time.Since(start))
	return result
}

// dispatch runs every step up to, but not including, serialization.
// It returns the route label used for logs and metrics.
func (r *Router) dispatch(ctx context.Context, ev Event) (*common.Request, *common.Response, string) {
	req, path, err := normalize(ctx, ev)
	if err != nil {
		return req, r.errorResponse(req, err, "Failed to normalize request"), ""
	}

	if r.cors != nil && req.Method == http.MethodOptions {
		return req, r.cors.preflight(), metrics.RoutePreflight
	}

	route, params, ok := matchRoute(r.routes, req.Method, path)
	if !ok {
		res := common.NewResponse()
		res.Status = http.StatusNotFound
		return req, res, metrics.RouteNotFound
	}
	req.Params = params

	res := common.NewResponse()
	outcome, err := runChain(route.Handlers, req, res)
	if r.config.Metrics != nil {
		r.config.Metrics.ObserveChain(route.Pattern, string(outcome))
	}
	if err != nil {
		res = r.errorResponse(req, err, "Handler error")
	}

	if r.cors != nil {
		r.cors.merge(res)
	}

	return req, res, route.Pattern
}

// serialize converts the scratch response into a Result.
func (r *Router) serialize(req *common.Request, res *common.Response) *Result {
	body, contentType, err := codec.EncodeBody(res.Body)
	if err != nil {
		res = r.errorResponse(req, fmt.Errorf("encode response body: %w", err), "Failed to encode response")
		if r.cors != nil {
			r.cors.merge(res)
		}
		body, contentType, _ = codec.EncodeBody(res.Body)
	}

	if res.Status == http.StatusNoContent && len(body) > 0 {
		r.logger.Warn("Response body dropped from 204 No Content", r.requestFields(req,
			zap.Int("body_size", len(body)),
		)...)
		body, contentType = nil, ""
	}

	header := make(http.Header, len(res.Headers)+1)
	for _, key := range res.Headers.Keys() {
		header.Set(key, res.Headers[key])
	}
	if contentType != "" && header.Get("Content-Type") == "" {
		header.Set("Content-Type", contentType)
	}

	return &Result{
		Status: res.Status,
		Header: header,
		Body:   body,
	}
}

// errorResponse logs err and builds the response for a fault.
// It checks if the error is a specific HTTPError and uses its status code and message if available.
func (r *Router) errorResponse(req *common.Request, err error, message string) *common.Response {
	statusCode := http.StatusInternalServerError
	body := http.StatusText(http.StatusInternalServerError)

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		statusCode = httpErr.StatusCode
		body = httpErr.Message
	}

	var panicErr *PanicError
	if errors.As(err, &panicErr) {
		r.logger.Error("Panic recovered", r.requestFields(req,
			zap.Any("panic", panicErr.Value),
			zap.String("stack", string(panicErr.Stack)),
		)...)
	} else if statusCode >= http.StatusInternalServerError {
		r.logger.Error(message, r.requestFields(req, zap.Error(err))...)
	} else {
		r.logger.Warn(message, r.requestFields(req, zap.Error(err))...)
	}

	res := common.NewResponse()
	res.Status = statusCode
	res.Body = body
	res.Headers.Set("Content-Type", "text/plain; charset=utf-8")
	return res
}

// observe logs the dispatched request and records metrics.
func (r *Router) observe(req *common.Request, route string, status int, duration time.Duration) {
	if r.config.Metrics != nil && route != "" {
		r.config.Metrics.ObserveRequest(req.Method, route, status, duration)
	}

	fields := r.requestFields(req,
		zap.String("route", route),
		zap.Int("status", status),
		zap.Duration("duration", duration),
	)

	switch {
	case status >= 500:
		r.logger.Error("Server error", fields...)
	case status >= 400:
		r.logger.Warn("Client error", fields...)
	case duration > 1*time.Second:
		r.logger.Warn("Slow request", fields...)
	default:
		r.logger.Debug("Request", fields...)
	}
}

// requestFields builds the common log fields for req followed by extra.
// The trace ID is prepended when enabled and present.
func (r *Router) requestFields(req *common.Request, extra ...zap.Field) []zap.Field {
	fields := make([]zap.Field, 0, len(extra)+3)

	// Add trace ID if enabled and present
	if r.config.EnableTraceID {
		if traceID := middleware.GetTraceID(req); traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}
	}

	fields = append(fields,
		zap.String("method", req.Method),
		zap.String("path", req.Path),
	)
	return append(fields, extra...)
}
