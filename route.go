// Copyright 2025 The Resto Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package resto

import (
	"fmt"
	"net/url"
	"strings"
)

// Route is a registered route. Convention routes are named automatically
// ("api.v1.users.show"); manually added routes can opt in via Named.
type Route struct {
	router  *Router
	method  string
	path    string
	name    string
	reverse *ReversePattern
}

// Method returns the HTTP method.
func (r *Route) Method() string { return r.method }

// Path returns the registered path template.
func (r *Route) Path() string { return r.path }

// Name returns the route name, or "" for anonymous routes.
func (r *Route) Name() string { return r.name }

// Named registers the route under a name for reverse lookup. It panics on a
// duplicate name: naming happens at definition time, and a clash is a
// programming error that must not survive startup.
func (r *Route) Named(name string) *Route {
	if err := r.router.registerNamedRoute(name, r); err != nil {
		panic(fmt.Sprintf("resto: %v", err))
	}
	r.name = name

	return r
}

// reversePattern returns the path template compiled at registration. Routes
// are immutable after addRoute, so helpers may read this concurrently.
func (r *Route) reversePattern() *ReversePattern {
	return r.reverse
}

// ReversePattern is a compiled route path used for URL building. Parameter
// positions are precomputed so building does not re-scan the template.
type ReversePattern struct {
	Segments []Segment
}

// Segment is one path segment: static text or a named parameter.
type Segment struct {
	Static bool
	Value  string
}

// ParseReversePattern parses a path template into segments.
// Example: "/users/:id/edit" -> [{static:"users"}, {param:"id"}, {static:"edit"}].
func ParseReversePattern(path string) *ReversePattern {
	segments := make([]Segment, 0, strings.Count(path, "/"))

	for part := range strings.SplitSeq(strings.Trim(path, "/"), "/") {
		if part == "" {
			continue
		}
		if key, ok := strings.CutPrefix(part, ":"); ok {
			segments = append(segments, Segment{Static: false, Value: key})
		} else {
			segments = append(segments, Segment{Static: true, Value: part})
		}
	}

	return &ReversePattern{Segments: segments}
}

// ParamNames returns the parameter names in path order.
func (p *ReversePattern) ParamNames() []string {
	var names []string
	for _, seg := range p.Segments {
		if !seg.Static {
			names = append(names, seg.Value)
		}
	}

	return names
}

// BuildURL builds a path from named parameters plus an optional query string.
func (p *ReversePattern) BuildURL(params map[string]string, query url.Values) (string, error) {
	var buf strings.Builder
	buf.WriteByte('/')

	for i, seg := range p.Segments {
		if i > 0 {
			buf.WriteByte('/')
		}

		if seg.Static {
			buf.WriteString(seg.Value)

			continue
		}

		val, ok := params[seg.Value]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrMissingRouteParameter, seg.Value)
		}
		buf.WriteString(url.PathEscape(val))
	}

	if len(query) > 0 {
		buf.WriteByte('?')
		buf.WriteString(query.Encode())
	}

	return buf.String(), nil
}

// BuildPath builds a path from ordered parameter values, matching them to
// parameters in path order. All parameters must be covered, no more, no less.
func (p *ReversePattern) BuildPath(values ...string) (string, error) {
	var buf strings.Builder
	buf.WriteByte('/')

	next := 0
	for i, seg := range p.Segments {
		if i > 0 {
			buf.WriteByte('/')
		}

		if seg.Static {
			buf.WriteString(seg.Value)

			continue
		}

		if next >= len(values) {
			return "", fmt.Errorf("%w: %s", ErrMissingRouteParameter, seg.Value)
		}
		buf.WriteString(url.PathEscape(values[next]))
		next++
	}

	if next < len(values) {
		return "", fmt.Errorf("%w: got %d, route has %d", ErrTooManyRouteParameters, len(values), next)
	}

	return buf.String(), nil
}
