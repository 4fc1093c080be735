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
	"net/http"
	"strings"
)

// Group scopes routes under a path prefix with its own middleware. Group
// middleware runs after the router's global middleware and before the route
// handlers.
//
//	admin := r.Group("/admin", requireAdmin)
//	admin.GET("/stats", statsHandler)
//	admin.MustResources("Users", adminUsers{})
//	// GET /admin/stats, GET /admin/users, ...
type Group struct {
	router     *Router
	prefix     string
	middleware []HandlerFunc
}

// Group creates a route group under prefix.
func (r *Router) Group(prefix string, middleware ...HandlerFunc) *Group {
	return &Group{
		router:     r,
		prefix:     strings.TrimSuffix(prefix, "/"),
		middleware: middleware,
	}
}

// Group creates a nested group. The child inherits the parent's prefix and
// middleware.
func (g *Group) Group(prefix string, middleware ...HandlerFunc) *Group {
	merged := make([]HandlerFunc, 0, len(g.middleware)+len(middleware))
	merged = append(merged, g.middleware...)
	merged = append(merged, middleware...)

	return &Group{
		router:     g.router,
		prefix:     g.prefix + strings.TrimSuffix(prefix, "/"),
		middleware: merged,
	}
}

// Use appends middleware to the group. Affects routes registered afterwards.
func (g *Group) Use(middleware ...HandlerFunc) {
	g.router.checkNotFrozen()
	g.middleware = append(g.middleware, middleware...)
}

// GET registers a route matching GET requests under the group prefix.
func (g *Group) GET(path string, handlers ...HandlerFunc) *Route {
	return g.handle(http.MethodGet, path, handlers)
}

// POST registers a route matching POST requests under the group prefix.
func (g *Group) POST(path string, handlers ...HandlerFunc) *Route {
	return g.handle(http.MethodPost, path, handlers)
}

// PUT registers a route matching PUT requests under the group prefix.
func (g *Group) PUT(path string, handlers ...HandlerFunc) *Route {
	return g.handle(http.MethodPut, path, handlers)
}

// PATCH registers a route matching PATCH requests under the group prefix.
func (g *Group) PATCH(path string, handlers ...HandlerFunc) *Route {
	return g.handle(http.MethodPatch, path, handlers)
}

// DELETE registers a route matching DELETE requests under the group prefix.
func (g *Group) DELETE(path string, handlers ...HandlerFunc) *Route {
	return g.handle(http.MethodDelete, path, handlers)
}

// Resources registers a controller's actions under the group prefix. Route
// names come from the base name alone; the prefix shapes paths only.
func (g *Group) Resources(base string, controller any, opts ...ResourceOption) error {
	return g.router.resources(g.prefix, g.middleware, base, controller, opts)
}

// MustResources is like Resources but panics on error.
func (g *Group) MustResources(base string, controller any, opts ...ResourceOption) {
	if err := g.Resources(base, controller, opts...); err != nil {
		panic("resto: " + err.Error())
	}
}

func (g *Group) handle(method, path string, handlers []HandlerFunc) *Route {
	chain := make([]HandlerFunc, 0, len(g.middleware)+len(handlers))
	chain = append(chain, g.middleware...)
	chain = append(chain, handlers...)

	return g.router.handle(method, joinPaths(g.prefix, path), chain)
}

// joinPaths concatenates a group prefix and a route path, keeping exactly one
// slash between them. A "/" route under a prefix maps to the prefix itself.
func joinPaths(prefix, path string) string {
	if prefix == "" {
		return path
	}
	if path == "/" || path == "" {
		return prefix
	}

	return prefix + "/" + strings.TrimPrefix(path, "/")
}
