package router

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Suhaibinator/ERouter/pkg/codec"
	"github.com/Suhaibinator/ERouter/pkg/common"
)

// Event is the boundary between a host platform and the dispatcher.
// Host adapters implement it for their native request type; the dispatcher
// never sees anything else.
type Event interface {
	// Method returns the HTTP request method.
	Method() string
	// URL returns the request URL, either absolute or in origin form ("/path?query").
	URL() string
	// Header returns the request headers.
	Header() http.Header
	// Body returns the full request body. It is only called for methods that carry one.
	Body() ([]byte, error)
}

// Result is the finalized wire response produced by Router.Handle.
type Result struct {
	Status int
	Header http.Header
	Body   []byte
}

// methodHasBody reports whether the request body is exposed to handlers.
func methodHasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// normalize converts a host event into a Request.
// It returns the escaped path used for matching next to the request.
// The returned request is never nil, so callers can log it even on error.
func normalize(ctx context.Context, ev Event) (*common.Request, string, error) {
	req := common.NewRequest(ctx, ev.Method(), "/")

	u, err := url.Parse(ev.URL())
	if err != nil {
		return req, "/", NewHTTPError(http.StatusBadRequest, "Bad Request")
	}

	escaped := u.EscapedPath()
	if escaped == "" {
		escaped = "/"
	}
	req.Path = u.Path
	if req.Path == "" {
		req.Path = "/"
	}

	for key, values := range u.Query() {
		if len(values) > 0 {
			req.Query[key] = values[0]
		}
	}

	for key, values := range ev.Header() {
		req.Headers.Set(key, strings.Join(values, ", "))
	}

	if methodHasBody(req.Method) {
		raw, err := ev.Body()
		if err != nil {
			return req, escaped, fmt.Errorf("read request body: %w", err)
		}
		req.RawBody = raw
		req.Body = codec.DecodeBody(req.Headers.Get("Content-Type"), raw)
	}

	return req, escaped, nil
}
