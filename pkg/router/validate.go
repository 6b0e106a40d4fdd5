package router

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// ValidatePatterns checks every registered pattern and returns all problems
// found, combined into one error. It is optional: invalid patterns never
// match at dispatch time, so calling it only surfaces them earlier.
//
// A pattern is reported when it does not start with "/", has a ":" segment
// with no name, repeats a parameter name, or uses "*" anywhere but as the
// final segment.
func (r *Router) ValidatePatterns() error {
	var err error
	for _, route := range r.routes {
		err = multierr.Append(err, validatePattern(route.Pattern))
	}
	return err
}

func validatePattern(pattern string) error {
	if !strings.HasPrefix(pattern, "/") {
		return fmt.Errorf("pattern %q: must start with \"/\"", pattern)
	}

	var err error
	segments := strings.Split(pattern, "/")
	seen := make(map[string]bool)

	for i, segment := range segments {
		switch {
		case segment == "*" && i != len(segments)-1:
			err = multierr.Append(err, fmt.Errorf("pattern %q: wildcard must be the last segment", pattern))
		case strings.HasPrefix(segment, ":"):
			name := segment[1:]
			if name == "" {
				err = multierr.Append(err, fmt.Errorf("pattern %q: segment %d has an empty parameter name", pattern, i))
				continue
			}
			if seen[name] {
				err = multierr.Append(err, fmt.Errorf("pattern %q: duplicate parameter %q", pattern, name))
			}
			seen[name] = true
		}
	}
	return err
}
