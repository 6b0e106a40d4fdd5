// Package common provides shared types and utilities used across the ERouter framework.
package common

import (
	"context"
	"slices"
	"strings"
)

// WildcardParam is the params key under which a trailing "*" pattern segment
// stores the remainder of the request path.
const WildcardParam = "*"

// Next runs the remaining handlers of a chain and returns their error.
// Calling it after the last handler is a no-op that returns nil.
type Next func() error

// Handler is a single step of a route's handler chain.
// It may read and modify the request and response, and either call next to
// delegate to the following handler or return without calling it to stop the
// chain with whatever it has written to the response.
// A non-nil error aborts the chain and is turned into an error response.
type Handler func(req *Request, res *Response, next Next) error

// Route is one registered (method, pattern, handlers) triple.
// Routes are created once at registration and never mutated afterwards.
type Route struct {
	Method   string    // Upper-cased HTTP method, or "ANY"
	Pattern  string    // Path template with ":name" segments and an optional trailing "*"
	Handlers []Handler // Handlers in registration order
}

// Headers is a string map with case-insensitive keys.
// The methods store keys lower-cased and match existing keys of any case, so
// a value written directly into the map (h["X-Key"] = v) is still found by
// Get, Has, Set and Del.
type Headers map[string]string

// lookup returns the stored key equal to key ignoring case.
// The lower-cased form wins over other spellings, then the smallest key.
func (h Headers) lookup(key string) (string, bool) {
	lower := strings.ToLower(key)
	if _, ok := h[lower]; ok {
		return lower, true
	}

	found, ok := "", false
	for k := range h {
		if strings.EqualFold(k, key) && (!ok || k < found) {
			found, ok = k, true
		}
	}
	return found, ok
}

// Get returns the value for key, or "" if it is not set.
func (h Headers) Get(key string) string {
	if k, ok := h.lookup(key); ok {
		return h[k]
	}
	return ""
}

// Set stores value under key, replacing any previous value of any case.
func (h Headers) Set(key, value string) {
	h.Del(key)
	h[strings.ToLower(key)] = value
}

// Has reports whether key is present.
func (h Headers) Has(key string) bool {
	_, ok := h.lookup(key)
	return ok
}

// Del removes key in every case.
func (h Headers) Del(key string) {
	for k := range h {
		if strings.EqualFold(k, key) {
			delete(h, k)
		}
	}
}

// Keys returns the stored keys, one per header name, in sorted order.
// When several spellings of a name are stored, only the one Get reads is returned.
func (h Headers) Keys() []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		if canonical, _ := h.lookup(k); canonical == k {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// Request is the normalized form of an inbound request event.
type Request struct {
	Method  string            // Upper-cased HTTP method
	Path    string            // Decoded URL path
	Params  map[string]string // Values of the matched route's ":name" segments
	Query   map[string]string // Query parameters, first value wins
	Headers Headers           // Request headers
	// Body is only set for POST, PUT and PATCH. It holds the decoded JSON value
	// when the content type is JSON and the payload parses, otherwise the raw
	// body as a string.
	Body any
	// RawBody holds the body bytes exactly as received.
	RawBody []byte

	ctx context.Context
}

// NewRequest creates an empty request bound to ctx.
func NewRequest(ctx context.Context, method, path string) *Request {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Request{
		Method:  strings.ToUpper(method),
		Path:    path,
		Params:  make(map[string]string),
		Query:   make(map[string]string),
		Headers: make(Headers),
		ctx:     ctx,
	}
}

// Context returns the request's context. It is never nil.
func (r *Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// SetContext replaces the request's context. Handlers use it to pass values
// to the handlers that follow them in the chain.
func (r *Request) SetContext(ctx context.Context) {
	if ctx != nil {
		r.ctx = ctx
	}
}

// Param returns the value of a path parameter, or "" if it is absent.
func (r *Request) Param(name string) string {
	return r.Params[name]
}

// DefaultStatus is the status of a response no handler has set one on.
const DefaultStatus = 204

// Response is the scratch response threaded through a handler chain.
// Body may be a string, a []byte, or any value that encodes to JSON.
// Status starts at DefaultStatus (204 No Content): a handler that sets Body
// must also set Status, since hosts discard the body of a 204.
type Response struct {
	Headers Headers
	Status  int
	Body    any
}

// NewResponse creates an empty response with the default status.
func NewResponse() *Response {
	return &Response{
		Headers: make(Headers),
		Status:  DefaultStatus,
	}
}
