package adapter

import (
	"net/http"
	"strings"

	"github.com/Suhaibinator/ERouter/pkg/router"
	"github.com/julienschmidt/httprouter"
)

// mountMethods are the verbs Mount registers on the httprouter tree.
var mountMethods = []string{
	http.MethodConnect,
	http.MethodDelete,
	http.MethodGet,
	http.MethodHead,
	http.MethodOptions,
	http.MethodPatch,
	http.MethodPost,
	http.MethodPut,
	http.MethodTrace,
}

// Mount delegates every request under prefix on an existing httprouter tree
// to r. The prefix is stripped before dispatch, so r's patterns are written
// relative to it ("/users/:id", not "/edge/users/:id").
//
// prefix must not end in "/" and must not overlap other routes on hr;
// httprouter panics on conflicting registrations.
func Mount(hr *httprouter.Router, prefix string, r *router.Router, opts ...HTTPOption) {
	h := NewHTTPHandler(r, opts...)
	pattern := prefix + "/*path"

	handle := func(w http.ResponseWriter, req *http.Request, _ httprouter.Params) {
		h.serve(w, req, stripPrefix(req, prefix))
	}

	for _, method := range mountMethods {
		hr.Handle(method, pattern, handle)
	}
}

// stripPrefix returns the request URI with prefix removed from the escaped path.
func stripPrefix(req *http.Request, prefix string) string {
	path := strings.TrimPrefix(req.URL.EscapedPath(), prefix)
	if path == "" {
		path = "/"
	}
	if req.URL.RawQuery != "" {
		return path + "?" + req.URL.RawQuery
	}
	return path
}
