package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Suhaibinator/ERouter/pkg/codec"
	"github.com/Suhaibinator/ERouter/pkg/common"
	"github.com/Suhaibinator/ERouter/pkg/router"
)

// TestProxyHandler tests dispatching an API-Gateway style event
func TestProxyHandler(t *testing.T) {
	handle := ProxyHandler(newTestRouter())

	res, err := handle(context.Background(), ProxyRequest{
		HTTPMethod:            "GET",
		Path:                  "/users/42",
		QueryStringParameters: map[string]string{"q": "single"},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, res.StatusCode)
	}
	if res.Body != `{"id":"42","q":"single"}` {
		t.Errorf("Expected body %q, got %q", `{"id":"42","q":"single"}`, res.Body)
	}
	if res.Headers["Content-Type"] != "application/json; charset=utf-8" {
		t.Errorf("Expected Content-Type %q, got %q", "application/json; charset=utf-8", res.Headers["Content-Type"])
	}
	if res.IsBase64Encoded {
		t.Error("Expected a plain text body")
	}
}

// TestProxyEvent tests the event view of a proxy request
func TestProxyEvent(t *testing.T) {
	ev := &ProxyEvent{Request: &ProxyRequest{
		HTTPMethod:                      "POST",
		Path:                            "/docs/a b",
		QueryStringParameters:           map[string]string{"tag": "one", "page": "2"},
		MultiValueQueryStringParameters: map[string][]string{"tag": {"first", "second"}},
		Headers:                         map[string]string{"Accept": "text/html", "X-Single": "1"},
		MultiValueHeaders:               map[string][]string{"Accept": {"text/html", "application/json"}},
		Body:                            codec.EncodeBase64([]byte("binary\x00")),
		IsBase64Encoded:                 true,
	}}

	if ev.Method() != "POST" {
		t.Errorf("Expected method %q, got %q", "POST", ev.Method())
	}
	if ev.URL() != "/docs/a%20b?page=2&tag=first&tag=second" {
		t.Errorf("Expected URL %q, got %q", "/docs/a%20b?page=2&tag=first&tag=second", ev.URL())
	}

	header := ev.Header()
	if got := header.Values("Accept"); len(got) != 2 || got[1] != "application/json" {
		t.Errorf("Expected multi-value Accept header, got %v", got)
	}
	if header.Get("X-Single") != "1" {
		t.Errorf("Expected X-Single %q, got %q", "1", header.Get("X-Single"))
	}

	body, err := ev.Body()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(body) != "binary\x00" {
		t.Errorf("Expected decoded body, got %q", string(body))
	}

	bad := &ProxyEvent{Request: &ProxyRequest{HTTPMethod: "POST", Body: "!!not base64", IsBase64Encoded: true}}
	if _, err := bad.Body(); err == nil {
		t.Error("Expected an error for an invalid base64 body")
	}
	if bad.URL() != "/" {
		t.Errorf("Expected URL %q for an empty path, got %q", "/", bad.URL())
	}
}

// TestHandleProxy tests the raw JSON entry point
func TestHandleProxy(t *testing.T) {
	r := newTestRouter()
	r.Get("/bin", func(req *common.Request, res *common.Response, next common.Next) error {
		res.Status = http.StatusOK
		res.Headers.Set("Content-Type", "application/octet-stream")
		res.Body = []byte{0xff, 0xfe, 0x00}
		return nil
	})

	tests := []struct {
		name    string
		payload string
		status  int
		body    string
		base64  bool
	}{
		{
			name:    "json body",
			payload: `{"httpMethod":"POST","path":"/echo","headers":{"content-type":"application/json"},"body":"{\"a\":1}"}`,
			status:  http.StatusCreated,
			body:    `{"a":1}`,
		},
		{
			name:    "base64 request body",
			payload: `{"httpMethod":"POST","path":"/echo","body":"aGVsbG8=","isBase64Encoded":true}`,
			status:  http.StatusCreated,
			body:    "hello",
		},
		{
			name:    "invalid base64 request body",
			payload: `{"httpMethod":"POST","path":"/echo","body":"%%%","isBase64Encoded":true}`,
			status:  http.StatusBadRequest,
			body:    "Bad Request",
		},
		{
			name:    "binary response",
			payload: `{"httpMethod":"GET","path":"/bin"}`,
			status:  http.StatusOK,
			body:    "//4A",
			base64:  true,
		},
		{
			name:    "not found",
			payload: `{"httpMethod":"GET","path":"/nowhere"}`,
			status:  http.StatusNotFound,
			body:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := HandleProxy(context.Background(), r, []byte(tt.payload))
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}

			var res ProxyResponse
			if err := json.Unmarshal(out, &res); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if res.StatusCode != tt.status {
				t.Errorf("Expected status code %d, got %d", tt.status, res.StatusCode)
			}
			if res.Body != tt.body {
				t.Errorf("Expected body %q, got %q", tt.body, res.Body)
			}
			if res.IsBase64Encoded != tt.base64 {
				t.Errorf("Expected isBase64Encoded %v, got %v", tt.base64, res.IsBase64Encoded)
			}
		})
	}

	if _, err := HandleProxy(context.Background(), r, []byte("not json")); err == nil {
		t.Error("Expected an error for a malformed payload")
	}
}

// TestNewProxyResponse tests converting a Result
func TestNewProxyResponse(t *testing.T) {
	res := NewProxyResponse(&router.Result{
		Status: http.StatusOK,
		Header: http.Header{"Set-Cookie": []string{"a=1", "b=2"}},
		Body:   []byte("ok"),
	})

	if res.Headers["Set-Cookie"] != "a=1, b=2" {
		t.Errorf("Expected joined Set-Cookie %q, got %q", "a=1, b=2", res.Headers["Set-Cookie"])
	}
	if got := res.MultiValueHeaders["Set-Cookie"]; len(got) != 2 {
		t.Errorf("Expected 2 Set-Cookie values, got %v", got)
	}
	if res.Body != "ok" || res.IsBase64Encoded {
		t.Errorf("Expected plain body %q, got %q (base64 %v)", "ok", res.Body, res.IsBase64Encoded)
	}

	empty := NewProxyResponse(&router.Result{Status: http.StatusNoContent})
	if empty.Headers != nil || empty.Body != "" {
		t.Errorf("Expected no headers and no body, got %v and %q", empty.Headers, empty.Body)
	}
}
