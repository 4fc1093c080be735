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
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/resto-dev/resto/problem"
)

// Router matches requests against routes registered directly (GET, POST, ...)
// or generated from naming conventions (Resources, MountManifest).
//
// Registration happens during a single-threaded configuration phase. The
// first request freezes the router: trees become immutable and are read
// without locks from then on. Registering after the freeze panics — every
// definition-time error must surface before the router serves traffic.
type Router struct {
	trees       *methodTrees
	middleware  []HandlerFunc
	namedRoutes map[string]*Route
	routes      []RouteInfo
	noRoute     HandlerFunc

	logger   *slog.Logger
	obs      ObservabilityRecorder
	problems *problem.Formatter

	frozen atomic.Bool
	mu     sync.RWMutex // guards registration structures before the freeze
	pool   sync.Pool
}

// New creates a Router with the given options. Construction cannot fail
// today, but the error return keeps room for options that validate.
func New(opts ...Option) (*Router, error) {
	r := &Router{
		trees:       newMethodTrees(),
		namedRoutes: make(map[string]*Route),
		logger:      slog.Default(),
		problems:    problem.NewFormatter(""),
	}
	r.pool.New = func() any {
		return &Context{router: r, params: make([]Param, 0, 8)}
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Router {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("resto: %v", err))
	}

	return r
}

// Use appends global middleware. Middleware runs before route handlers in
// registration order. Chains are baked at registration, so Use panics once
// any route exists: later middleware would silently miss earlier routes.
func (r *Router) Use(middleware ...HandlerFunc) {
	r.checkNotFrozen()

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.routes) > 0 {
		panic("resto: Use must be called before any route is registered")
	}
	r.middleware = append(r.middleware, middleware...)
}

// NoRoute sets the handler invoked when no route matches. The default writes
// an RFC 9457 problem detail with status 404.
func (r *Router) NoRoute(handler HandlerFunc) {
	r.checkNotFrozen()
	r.noRoute = handler
}

// GET registers a route matching GET requests.
//
// Example:
//
//	r.GET("/healthz", func(c *resto.Context) { c.String(http.StatusOK, "ok") })
func (r *Router) GET(path string, handlers ...HandlerFunc) *Route {
	return r.handle(http.MethodGet, path, handlers)
}

// POST registers a route matching POST requests.
func (r *Router) POST(path string, handlers ...HandlerFunc) *Route {
	return r.handle(http.MethodPost, path, handlers)
}

// PUT registers a route matching PUT requests.
func (r *Router) PUT(path string, handlers ...HandlerFunc) *Route {
	return r.handle(http.MethodPut, path, handlers)
}

// PATCH registers a route matching PATCH requests.
func (r *Router) PATCH(path string, handlers ...HandlerFunc) *Route {
	return r.handle(http.MethodPatch, path, handlers)
}

// DELETE registers a route matching DELETE requests.
func (r *Router) DELETE(path string, handlers ...HandlerFunc) *Route {
	return r.handle(http.MethodDelete, path, handlers)
}

// HEAD registers a route matching HEAD requests.
func (r *Router) HEAD(path string, handlers ...HandlerFunc) *Route {
	return r.handle(http.MethodHead, path, handlers)
}

// OPTIONS registers a route matching OPTIONS requests.
func (r *Router) OPTIONS(path string, handlers ...HandlerFunc) *Route {
	return r.handle(http.MethodOptions, path, handlers)
}

// handle registers a route, panicking on definition-time errors: manual
// registration is driven by literals, and a malformed table must not
// survive startup.
func (r *Router) handle(method, path string, handlers []HandlerFunc) *Route {
	rt, err := r.addRoute(method, path, handlers)
	if err != nil {
		panic(fmt.Sprintf("resto: %v", err))
	}

	return rt
}

func (r *Router) addRoute(method, path string, handlers []HandlerFunc) (*Route, error) {
	if r.frozen.Load() {
		return nil, fmt.Errorf("%w: cannot register %s %s", ErrRoutesFrozen, method, path)
	}
	if !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("path must start with /: %q", path)
	}

	tree := r.trees.tree(method)
	if tree == nil {
		return nil, fmt.Errorf("unsupported method %q", method)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// New slice: global middleware is frozen into the chain at registration.
	chain := make([]HandlerFunc, 0, len(r.middleware)+len(handlers))
	chain = append(chain, r.middleware...)
	chain = append(chain, handlers...)

	if err := tree.addRoute(path, chain); err != nil {
		return nil, err
	}

	// Compiled here, while registration still holds the lock: the helper
	// facade reads the pattern concurrently once the router is serving.
	rt := &Route{router: r, method: method, path: path, reverse: ParseReversePattern(path)}
	r.routes = append(r.routes, RouteInfo{
		Method: method,
		Path:   path,
		Params: rt.reverse.ParamNames(),
	})

	return rt, nil
}

// registerNamedRoute indexes a route under a unique name.
func (r *Router) registerNamedRoute(name string, rt *Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.namedRoutes[name]; ok {
		return fmt.Errorf("%w: %q (existing: %s %s, new: %s %s)",
			ErrDuplicateRouteName, name,
			existing.method, existing.path, rt.method, rt.path)
	}
	r.namedRoutes[name] = rt

	for i := range r.routes {
		if r.routes[i].Method == rt.method && r.routes[i].Path == rt.path {
			r.routes[i].Name = name

			break
		}
	}

	return nil
}

func (r *Router) checkNotFrozen() {
	if r.frozen.Load() {
		panic("resto: " + ErrRoutesFrozen.Error())
	}
}

// Freeze seals the router. Called automatically on the first request; call
// it explicitly to assert that registration is complete.
func (r *Router) Freeze() {
	r.frozen.Store(true)
}

// Frozen reports whether the router has been frozen.
func (r *Router) Frozen() bool {
	return r.frozen.Load()
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.frozen.Store(true)

	var state any
	if r.obs != nil {
		ctx, st := r.obs.OnRequestStart(req.Context(), req)
		req = req.WithContext(ctx)
		state = st
		if state != nil {
			w = r.obs.WrapResponseWriter(w, state)
		}
	}

	pattern := r.dispatch(w, req)

	if r.obs != nil && state != nil {
		r.obs.OnRequestEnd(req.Context(), state, w, pattern)
	}
}

// dispatch matches and serves the request, returning the matched route
// pattern or RouteNotFound.
func (r *Router) dispatch(w http.ResponseWriter, req *http.Request) string {
	tree := r.trees.tree(req.Method)
	if tree == nil {
		r.problemResponse(w, req, http.StatusNotImplemented, nil)

		return RouteNotFound
	}

	c := r.pool.Get().(*Context)
	defer r.pool.Put(c)
	c.reset(w, req)

	target := tree.search(req.URL.Path, &c.params)
	if target == nil {
		r.handleUnmatched(c, req)

		return RouteNotFound
	}

	c.handlers = target.handlers
	c.routePattern = target.pattern
	c.routeName = r.nameForPattern(req.Method, target.pattern)
	c.Next()

	return target.pattern
}

// handleUnmatched produces the 405 or 404 response for an unmatched request.
func (r *Router) handleUnmatched(c *Context, req *http.Request) {
	if allowed := r.allowedMethods(req); len(allowed) > 0 {
		c.Writer.Header().Set("Allow", strings.Join(allowed, ", "))
		r.problemResponse(c.Writer, req, http.StatusMethodNotAllowed,
			fmt.Errorf("method %s not allowed", req.Method))

		return
	}

	if r.noRoute != nil {
		c.handlers = []HandlerFunc{r.noRoute}
		c.routePattern = RouteNotFound
		c.Next()

		return
	}

	r.problemResponse(c.Writer, req, http.StatusNotFound, nil)
}

// allowedMethods returns the methods other than the request's own under
// which the path would have matched.
func (r *Router) allowedMethods(req *http.Request) []string {
	var allowed []string
	scratch := make([]Param, 0, 8)

	r.trees.iterate(func(method string, tree *node) {
		if method == req.Method {
			return
		}
		scratch = scratch[:0]
		if tree.search(req.URL.Path, &scratch) != nil {
			allowed = append(allowed, method)
		}
	})

	return allowed
}

func (r *Router) problemResponse(w http.ResponseWriter, req *http.Request, status int, err error) {
	if werr := r.problems.Write(w, req, status, err); werr != nil {
		r.logger.Error("writing problem response", "error", werr, "path", req.URL.Path)
	}
}

// nameForPattern finds the registered name for a method/pattern pair.
// Called once per matched request; the registry is small and read-mostly.
func (r *Router) nameForPattern(method, pattern string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.routes {
		if r.routes[i].Method == method && r.routes[i].Path == pattern {
			return r.routes[i].Name
		}
	}

	return ""
}
