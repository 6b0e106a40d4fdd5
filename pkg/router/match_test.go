package router

import (
	"reflect"
	"testing"

	"github.com/Suhaibinator/ERouter/pkg/common"
)

// TestMatchPattern tests segment matching and parameter extraction
func TestMatchPattern(t *testing.T) {
	testCases := []struct {
		name    string
		pattern string
		path    string
		match   bool
		params  map[string]string
	}{
		{"root", "/", "/", true, map[string]string{}},
		{"literal", "/users", "/users", true, map[string]string{}},
		{"literal mismatch", "/users", "/posts", false, nil},
		{"literal is case-sensitive", "/users", "/Users", false, nil},
		{"named segment", "/users/:id", "/users/42", true, map[string]string{"id": "42"}},
		{"named segment too short", "/users/:id", "/users", false, nil},
		{"named segment too long", "/users/:id", "/users/42/edit", false, nil},
		{"named segment empty value", "/users/:id", "/users/", false, nil},
		{"two named segments", "/users/:id/posts/:post", "/users/7/posts/9", true, map[string]string{"id": "7", "post": "9"}},
		{"trailing slash is significant", "/users", "/users/", false, nil},
		{"trailing slash pattern", "/users/", "/users/", true, map[string]string{}},
		{"repeated slash is a literal empty segment", "/a//b", "/a//b", true, map[string]string{}},
		{"repeated slash never fills a parameter", "/a/:x/b", "/a//b", false, nil},
		{"empty parameter name never matches", "/a/:", "/a/b", false, nil},
		{"wildcard", "/files/*", "/files/a/b/c", true, map[string]string{common.WildcardParam: "a/b/c"}},
		{"wildcard single segment", "/files/*", "/files/a", true, map[string]string{common.WildcardParam: "a"}},
		{"wildcard empty remainder", "/files/*", "/files/", true, map[string]string{common.WildcardParam: ""}},
		{"wildcard needs its segment", "/files/*", "/files", false, nil},
		{"wildcard with parameter", "/u/:id/*", "/u/3/x/y", true, map[string]string{"id": "3", common.WildcardParam: "x/y"}},
		{"wildcard keeps trailing slash", "/files/*", "/files/a/", true, map[string]string{common.WildcardParam: "a/"}},
		{"non-final star is a literal", "/a/*/b", "/a/*/b", true, map[string]string{}},
		{"non-final star does not glob", "/a/*/b", "/a/x/b", false, nil},
		{"encoded slash stays in segment", "/users/:id", "/users/a%2Fb", true, map[string]string{"id": "a/b"}},
		{"encoded literal", "/hello world", "/hello%20world", true, map[string]string{}},
		{"invalid escape kept raw", "/users/:id", "/users/%zz", true, map[string]string{"id": "%zz"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			params, ok := matchPattern(tc.pattern, tc.path)
			if ok != tc.match {
				t.Fatalf("matchPattern(%q, %q): expected match %v, got %v", tc.pattern, tc.path, tc.match, ok)
			}
			if ok && !reflect.DeepEqual(params, tc.params) {
				t.Errorf("Expected params %v, got %v", tc.params, params)
			}
		})
	}
}

// TestMatchRouteOrder tests that the first registered match wins
func TestMatchRouteOrder(t *testing.T) {
	routes := []common.Route{
		{Method: "GET", Pattern: "/users/:id"},
		{Method: "GET", Pattern: "/users/me"},
		{Method: "ANY", Pattern: "/users/me"},
	}

	route, params, ok := matchRoute(routes, "GET", "/users/me")
	if !ok {
		t.Fatal("Expected a match")
	}
	if route != &routes[0] {
		t.Errorf("Expected the first route to win, got %q", route.Pattern)
	}
	if params["id"] != "me" {
		t.Errorf("Expected id %q, got %q", "me", params["id"])
	}

	// Method filtering skips the GET routes
	route, _, ok = matchRoute(routes, "post", "/users/me")
	if !ok || route != &routes[2] {
		t.Errorf("Expected the ANY route to match POST")
	}

	// Method matching is case-insensitive
	if _, _, ok := matchRoute(routes, "get", "/users/1"); !ok {
		t.Error("Expected lower-case method to match")
	}

	// No match
	if _, _, ok := matchRoute(routes, "GET", "/missing"); ok {
		t.Error("Expected no match")
	}
}
