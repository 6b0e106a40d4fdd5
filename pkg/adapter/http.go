// Package adapter connects host platforms to the ERouter dispatcher.
// Each adapter converts a native request into a router.Event and writes the
// router.Result back in the platform's own response form.
package adapter

import (
	"io"
	"net/http"

	"github.com/Suhaibinator/ERouter/pkg/router"
	"go.uber.org/zap"
)

// HTTPEvent adapts an *http.Request to router.Event.
type HTTPEvent struct {
	Request *http.Request
	// MaxBodySize is the largest body accepted; larger bodies fail with 413.
	// Zero means no limit.
	MaxBodySize int64
	// url overrides Request.URL when set, e.g. after stripping a mount prefix
	url string
}

// NewHTTPEvent wraps req.
func NewHTTPEvent(req *http.Request) *HTTPEvent {
	return &HTTPEvent{Request: req}
}

// Method returns the request method.
func (e *HTTPEvent) Method() string {
	return e.Request.Method
}

// URL returns the request URL in origin form.
func (e *HTTPEvent) URL() string {
	if e.url != "" {
		return e.url
	}
	return e.Request.URL.RequestURI()
}

// Header returns the request headers.
func (e *HTTPEvent) Header() http.Header {
	return e.Request.Header
}

// Body reads the full request body.
func (e *HTTPEvent) Body() ([]byte, error) {
	if e.Request.Body == nil || e.Request.Body == http.NoBody {
		return nil, nil
	}
	defer e.Request.Body.Close()

	if e.MaxBodySize <= 0 {
		return io.ReadAll(e.Request.Body)
	}

	body, err := io.ReadAll(io.LimitReader(e.Request.Body, e.MaxBodySize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > e.MaxBodySize {
		return nil, router.NewHTTPError(http.StatusRequestEntityTooLarge, "Request Entity Too Large")
	}
	return body, nil
}

// HTTPHandler serves HTTP requests through a Router.
type HTTPHandler struct {
	router      *router.Router
	logger      *zap.Logger
	maxBodySize int64
}

// HTTPOption configures an HTTPHandler.
type HTTPOption func(*HTTPHandler)

// WithLogger sets the logger used to report failed response writes.
func WithLogger(logger *zap.Logger) HTTPOption {
	return func(h *HTTPHandler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithMaxBodySize rejects request bodies larger than n bytes with 413.
func WithMaxBodySize(n int64) HTTPOption {
	return func(h *HTTPHandler) {
		h.maxBodySize = n
	}
}

// NewHTTPHandler returns an http.Handler that dispatches every request to r.
// It suits platforms that hand each invocation an http.ResponseWriter and
// *http.Request, such as Cloud Functions or a plain net/http server.
func NewHTTPHandler(r *router.Router, opts ...HTTPOption) *HTTPHandler {
	h := &HTTPHandler{
		router: r,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP implements the http.Handler interface.
func (h *HTTPHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h.serve(w, req, "")
}

func (h *HTTPHandler) serve(w http.ResponseWriter, req *http.Request, url string) {
	ev := &HTTPEvent{Request: req, MaxBodySize: h.maxBodySize, url: url}
	result := h.router.Handle(req.Context(), ev)

	if err := WriteResult(w, result); err != nil {
		h.logger.Warn("Failed to write response",
			zap.Error(err),
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
		)
	}
}

// WriteResult writes a Result to an http.ResponseWriter.
func WriteResult(w http.ResponseWriter, result *router.Result) error {
	header := w.Header()
	for key, values := range result.Header {
		header[key] = append([]string(nil), values...)
	}

	w.WriteHeader(result.Status)
	if len(result.Body) == 0 {
		return nil
	}
	_, err := w.Write(result.Body)
	return err
}
