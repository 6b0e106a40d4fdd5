// Package middleware provides a collection of reusable chain handlers for the ERouter framework.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Suhaibinator/ERouter/pkg/common"
	"go.uber.org/zap"
)

// Chain combines several handlers into one that runs them in order
func Chain(handlers ...common.Handler) common.Handler {
	return common.NewHandlerChain(handlers...).Handler()
}

// Logging is a handler that logs each request once the rest of the chain has run
func Logging(logger *zap.Logger) common.Handler {
	return func(req *common.Request, res *common.Response, next common.Next) error {
		start := time.Now()

		// Call the next handler
		err := next()

		// Calculate duration
		duration := time.Since(start)

		fields := []zap.Field{
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.Int("status", res.Status),
			zap.Duration("duration", duration),
		}
		if traceID := GetTraceID(req); traceID != "" {
			fields = append([]zap.Field{zap.String("trace_id", traceID)}, fields...)
		}

		// Use appropriate log level based on outcome, status code and duration
		switch {
		case err != nil:
			logger.Error("Handler error", append(fields, zap.Error(err))...)
		case res.Status >= 500:
			logger.Error("Server error", fields...)
		case res.Status >= 400:
			logger.Warn("Client error", fields...)
		case duration > 1*time.Second:
			logger.Warn("Slow request", fields...)
		default:
			// Normal requests at Debug level to avoid log spam
			logger.Debug("Request", fields...)
		}

		return err
	}
}

// MaxBodySize is a handler that rejects requests whose body exceeds maxSize bytes
// with 413 Request Entity Too Large.
func MaxBodySize(maxSize int64) common.Handler {
	return func(req *common.Request, res *common.Response, next common.Next) error {
		if int64(len(req.RawBody)) > maxSize {
			res.Status = http.StatusRequestEntityTooLarge
			res.Body = "Request Entity Too Large"
			return nil
		}
		return next()
	}
}

// Timeout is a handler that bounds the rest of the chain with a deadline on
// the request context. Handlers only observe it through req.Context(); when
// the deadline has passed by the time they return, the response is replaced
// with 408 Request Timeout.
func Timeout(timeout time.Duration) common.Handler {
	return func(req *common.Request, res *common.Response, next common.Next) error {
		parent := req.Context()
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()

		req.SetContext(ctx)
		err := next()
		req.SetContext(parent)

		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			res.Status = http.StatusRequestTimeout
			res.Body = "Request Timeout"
			return nil
		}
		return err
	}
}
