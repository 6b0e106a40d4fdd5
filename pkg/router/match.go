package router

import (
	"net/url"
	"strings"

	"github.com/Suhaibinator/ERouter/pkg/common"
)

// matchRoute returns the first route, in registration order, whose method and
// pattern match the request, together with the extracted path parameters.
// path must be the escaped path so that an encoded "/" never splits a segment.
func matchRoute(routes []common.Route, method, path string) (*common.Route, map[string]string, bool) {
	for i := range routes {
		route := &routes[i]
		if route.Method != MethodAny && !strings.EqualFold(route.Method, method) {
			continue
		}
		if params, ok := matchPattern(route.Pattern, path); ok {
			return route, params, true
		}
	}
	return nil, nil, false
}

// matchPattern matches an escaped request path against a route pattern.
//
// Both are split on "/". Segment counts must be equal, unless the pattern ends
// in a "*" segment, which captures the remaining path (possibly empty) under
// common.WildcardParam. Literal segments must equal the decoded path segment;
// ":name" segments match any non-empty segment. Empty segments produced by
// repeated or trailing slashes are literal and never satisfy ":name".
func matchPattern(pattern, path string) (map[string]string, bool) {
	patternSegments := strings.Split(pattern, "/")
	pathSegments := strings.Split(path, "/")

	last := len(patternSegments) - 1
	wildcard := patternSegments[last] == "*"

	if wildcard {
		if len(patternSegments) > len(pathSegments) {
			return nil, false
		}
	} else if len(patternSegments) != len(pathSegments) {
		return nil, false
	}

	params := make(map[string]string)
	for i, segment := range patternSegments {
		if wildcard && i == last {
			params[common.WildcardParam] = unescape(strings.Join(pathSegments[i:], "/"))
			break
		}

		value := unescape(pathSegments[i])
		if name, ok := strings.CutPrefix(segment, ":"); ok {
			if name == "" || value == "" {
				return nil, false
			}
			params[name] = value
			continue
		}
		if segment != value {
			return nil, false
		}
	}

	return params, true
}

// unescape percent-decodes a path segment, keeping it as is when it is not
// validly encoded.
func unescape(segment string) string {
	if !strings.Contains(segment, "%") {
		return segment
	}
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return segment
	}
	return decoded
}
