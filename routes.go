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
	"sort"
)

// RouteInfo describes a registered route for introspection and the
// structured helper facade: a (method, path) pair plus the route name and
// its parameter names in path order.
type RouteInfo struct {
	Name   string
	Method string
	Path   string
	Params []string
}

// Routes returns all registered routes, sorted by method then path.
func (r *Router) Routes() []RouteInfo {
	r.mu.RLock()
	routes := make([]RouteInfo, len(r.routes))
	copy(routes, r.routes)
	r.mu.RUnlock()

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Method == routes[j].Method {
			return routes[i].Path < routes[j].Path
		}

		return routes[i].Method < routes[j].Method
	})

	return routes
}

// RouteFor returns the structured route for a name: its method, path
// template, and parameter names.
//
// Example:
//
//	info, _ := r.RouteFor("api.v1.users.show")
//	// info.Method == "GET", info.Path == "/api/v1/users/:id"
func (r *Router) RouteFor(name string) (RouteInfo, error) {
	rt, ok := r.namedRoute(name)
	if !ok {
		return RouteInfo{}, fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}

	return RouteInfo{
		Name:   name,
		Method: rt.method,
		Path:   rt.path,
		Params: rt.reversePattern().ParamNames(),
	}, nil
}

// PathFor builds the path for a named route from ordered parameter values.
// Values fill the route's parameters in path order and must cover all of
// them exactly.
//
// Example:
//
//	path, _ := r.PathFor("projects.users.show", "7", "42")
//	// path == "/projects/7/users/42"
func (r *Router) PathFor(name string, values ...string) (string, error) {
	rt, ok := r.namedRoute(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}

	return rt.reversePattern().BuildPath(values...)
}

// URLFor builds the path for a named route from named parameters plus an
// optional query string.
//
// Example:
//
//	u, _ := r.URLFor("users.index", nil, url.Values{"page": {"2"}})
//	// u == "/users?page=2"
func (r *Router) URLFor(name string, params map[string]string, query url.Values) (string, error) {
	rt, ok := r.namedRoute(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}

	return rt.reversePattern().BuildURL(params, query)
}

// MustURLFor is like URLFor but panics on error. Intended for templates and
// startup wiring where a bad route name is a programming error.
func (r *Router) MustURLFor(name string, params map[string]string, query url.Values) string {
	u, err := r.URLFor(name, params, query)
	if err != nil {
		panic(fmt.Sprintf("resto: MustURLFor: %v", err))
	}

	return u
}

func (r *Router) namedRoute(name string) (*Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rt, ok := r.namedRoutes[name]

	return rt, ok
}
