package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/Suhaibinator/ERouter/pkg/codec"
	"github.com/Suhaibinator/ERouter/pkg/router"
)

// ProxyRequest is the JSON event of an API-Gateway style proxy integration.
type ProxyRequest struct {
	HTTPMethod                      string              `json:"httpMethod"`
	Path                            string              `json:"path"`
	QueryStringParameters           map[string]string   `json:"queryStringParameters,omitempty"`
	MultiValueQueryStringParameters map[string][]string `json:"multiValueQueryStringParameters,omitempty"`
	Headers                         map[string]string   `json:"headers,omitempty"`
	MultiValueHeaders               map[string][]string `json:"multiValueHeaders,omitempty"`
	Body                            string              `json:"body"`
	IsBase64Encoded                 bool                `json:"isBase64Encoded"`
}

// ProxyResponse is the JSON response of an API-Gateway style proxy integration.
type ProxyResponse struct {
	StatusCode        int                 `json:"statusCode"`
	Headers           map[string]string   `json:"headers,omitempty"`
	MultiValueHeaders map[string][]string `json:"multiValueHeaders,omitempty"`
	Body              string              `json:"body"`
	IsBase64Encoded   bool                `json:"isBase64Encoded"`
}

// ProxyEvent adapts a ProxyRequest to router.Event.
type ProxyEvent struct {
	Request *ProxyRequest
}

// Method returns the request method.
func (e *ProxyEvent) Method() string {
	return e.Request.HTTPMethod
}

// URL rebuilds the request URI from the decoded path and query parameters.
// Multi-value parameters take precedence over single-value ones.
func (e *ProxyEvent) URL() string {
	query := make(url.Values)
	for key, value := range e.Request.QueryStringParameters {
		query.Set(key, value)
	}
	for key, values := range e.Request.MultiValueQueryStringParameters {
		query[key] = values
	}

	path := e.Request.Path
	if path == "" {
		path = "/"
	}
	u := url.URL{Path: path, RawQuery: query.Encode()}
	return u.RequestURI()
}

// Header returns the request headers.
// Multi-value headers take precedence over single-value ones.
func (e *ProxyEvent) Header() http.Header {
	header := make(http.Header, len(e.Request.Headers))
	for key, value := range e.Request.Headers {
		header.Set(key, value)
	}
	for key, values := range e.Request.MultiValueHeaders {
		header.Del(key)
		for _, value := range values {
			header.Add(key, value)
		}
	}
	return header
}

// Body returns the request body, decoding it when it was base64-encoded.
func (e *ProxyEvent) Body() ([]byte, error) {
	if !e.Request.IsBase64Encoded {
		return []byte(e.Request.Body), nil
	}
	body, err := codec.DecodeBase64(e.Request.Body)
	if err != nil {
		return nil, router.NewHTTPError(http.StatusBadRequest, "Bad Request")
	}
	return body, nil
}

// NewProxyResponse converts a Result to a ProxyResponse.
// Bodies that are not valid UTF-8 are base64-encoded.
func NewProxyResponse(result *router.Result) *ProxyResponse {
	res := &ProxyResponse{
		StatusCode: result.Status,
	}

	if len(result.Header) > 0 {
		res.Headers = make(map[string]string, len(result.Header))
		res.MultiValueHeaders = make(map[string][]string, len(result.Header))
		for key, values := range result.Header {
			res.Headers[key] = strings.Join(values, ", ")
			res.MultiValueHeaders[key] = append([]string(nil), values...)
		}
	}

	if utf8.Valid(result.Body) {
		res.Body = string(result.Body)
	} else {
		res.Body = codec.EncodeBase64(result.Body)
		res.IsBase64Encoded = true
	}
	return res
}

// ProxyHandler returns a function with the shape serverless runtimes expect
// for proxy integrations, dispatching each event to r.
func ProxyHandler(r *router.Router) func(context.Context, ProxyRequest) (ProxyResponse, error) {
	return func(ctx context.Context, req ProxyRequest) (ProxyResponse, error) {
		result := r.Handle(ctx, &ProxyEvent{Request: &req})
		return *NewProxyResponse(result), nil
	}
}

// HandleProxy dispatches a raw JSON proxy event and returns the JSON response.
// It only fails when the payload is not a valid proxy event.
func HandleProxy(ctx context.Context, r *router.Router, payload []byte) ([]byte, error) {
	var req ProxyRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("decode proxy request: %w", err)
	}

	res, err := ProxyHandler(r)(ctx, req)
	if err != nil {
		return nil, err
	}

	out, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("encode proxy response: %w", err)
	}
	return out, nil
}
