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
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, r *Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))

	return w
}

func TestRouterServesRegisteredRoutes(t *testing.T) {
	r := MustNew()
	r.GET("/users", func(c *Context) { _ = c.String(http.StatusOK, "index") })
	r.GET("/users/:id", func(c *Context) { _ = c.String(http.StatusOK, "user "+c.Param("id")) })
	r.POST("/users", func(c *Context) { c.Status(http.StatusCreated) })

	w := serve(t, r, http.MethodGet, "/users")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "index", w.Body.String())

	w = serve(t, r, http.MethodGet, "/users/42")
	assert.Equal(t, "user 42", w.Body.String())

	w = serve(t, r, http.MethodPost, "/users")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRouterRootPath(t *testing.T) {
	r := MustNew()
	r.GET("/", func(c *Context) { _ = c.String(http.StatusOK, "root") })

	w := serve(t, r, http.MethodGet, "/")
	assert.Equal(t, "root", w.Body.String())
}

func TestRouterStaticWinsOverParam(t *testing.T) {
	r := MustNew()
	r.GET("/users/new", func(c *Context) { _ = c.String(http.StatusOK, "new") })
	r.GET("/users/:id", func(c *Context) { _ = c.String(http.StatusOK, "show "+c.Param("id")) })

	w := serve(t, r, http.MethodGet, "/users/new")
	assert.Equal(t, "new", w.Body.String())

	w = serve(t, r, http.MethodGet, "/users/7")
	assert.Equal(t, "show 7", w.Body.String())
}

func TestRouterNotFoundProblem(t *testing.T) {
	r := MustNew()
	r.GET("/users", func(c *Context) { c.NoContent() })

	w := serve(t, r, http.MethodGet, "/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	var detail map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, float64(http.StatusNotFound), detail["status"])
	assert.Equal(t, "Not Found", detail["title"])
}

func TestRouterMethodNotAllowed(t *testing.T) {
	r := MustNew()
	r.GET("/users/:id", func(c *Context) { c.NoContent() })
	r.DELETE("/users/:id", func(c *Context) { c.NoContent() })

	w := serve(t, r, http.MethodPut, "/users/42")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "GET, DELETE", w.Header().Get("Allow"))
}

func TestRouterUnsupportedMethod(t *testing.T) {
	r := MustNew()

	w := serve(t, r, "TRACE", "/anything")
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}

func TestRouterNoRouteHandler(t *testing.T) {
	r := MustNew()
	r.NoRoute(func(c *Context) {
		_ = c.String(http.StatusNotFound, "custom not found")
	})

	w := serve(t, r, http.MethodGet, "/missing")
	assert.Equal(t, "custom not found", w.Body.String())
}

func TestRouterMiddlewareOrderAndAbort(t *testing.T) {
	var order []string

	r := MustNew()
	r.Use(
		func(c *Context) { order = append(order, "first") },
		func(c *Context) {
			order = append(order, "second")
			if c.Query("block") == "1" {
				c.Abort()
				c.Status(http.StatusForbidden)
			}
		},
	)
	r.GET("/users", func(c *Context) {
		order = append(order, "handler")
		c.NoContent()
	})

	serve(t, r, http.MethodGet, "/users")
	assert.Equal(t, []string{"first", "second", "handler"}, order)

	order = nil
	w := serve(t, r, http.MethodGet, "/users?block=1")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestRouterUseAfterRoutesPanics(t *testing.T) {
	r := MustNew()
	r.GET("/users", func(c *Context) { c.NoContent() })

	assert.Panics(t, func() {
		r.Use(func(c *Context) {})
	})
}

func TestRouterFreezesOnFirstRequest(t *testing.T) {
	r := MustNew()
	r.GET("/users", func(c *Context) { c.NoContent() })

	assert.False(t, r.Frozen())
	serve(t, r, http.MethodGet, "/users")
	assert.True(t, r.Frozen())

	assert.Panics(t, func() {
		r.GET("/late", func(c *Context) {})
	})
	assert.ErrorIs(t, r.Resources("Posts", fullController{}), ErrRoutesFrozen)
}

func TestRouterRegistrationPanics(t *testing.T) {
	t.Run("path without leading slash", func(t *testing.T) {
		r := MustNew()
		assert.Panics(t, func() { r.GET("users", func(c *Context) {}) })
	})

	t.Run("duplicate route", func(t *testing.T) {
		r := MustNew()
		r.GET("/users", func(c *Context) {})
		assert.Panics(t, func() { r.GET("/users", func(c *Context) {}) })
	})

	t.Run("param name conflict", func(t *testing.T) {
		r := MustNew()
		r.GET("/users/:id", func(c *Context) {})
		assert.Panics(t, func() { r.GET("/users/:uid/posts", func(c *Context) {}) })
	})

	t.Run("duplicate route name", func(t *testing.T) {
		r := MustNew()
		r.GET("/a", func(c *Context) {}).Named("dup")
		rt := r.GET("/b", func(c *Context) {})
		assert.Panics(t, func() { rt.Named("dup") })
	})
}

func TestRouterContextRouteMetadata(t *testing.T) {
	r := MustNew()
	var name, pattern string
	r.GET("/users/:id", func(c *Context) {
		name = c.RouteName()
		pattern = c.RoutePattern()
		c.NoContent()
	}).Named("users.show")

	serve(t, r, http.MethodGet, "/users/42")
	assert.Equal(t, "users.show", name)
	assert.Equal(t, "/users/:id", pattern)
}

// recordingObserver captures the lifecycle calls the router makes.
type recordingObserver struct {
	started  int
	ended    int
	patterns []string
	skip     bool
}

func (o *recordingObserver) OnRequestStart(ctx context.Context, req *http.Request) (context.Context, any) {
	o.started++
	if o.skip {
		return ctx, nil
	}

	return ctx, o
}

func (o *recordingObserver) WrapResponseWriter(w http.ResponseWriter, state any) http.ResponseWriter {
	return w
}

func (o *recordingObserver) OnRequestEnd(ctx context.Context, state any, w http.ResponseWriter, routePattern string) {
	o.ended++
	o.patterns = append(o.patterns, routePattern)
}

func TestRouterObservabilityLifecycle(t *testing.T) {
	obs := &recordingObserver{}
	r := MustNew(WithObservability(obs))
	r.GET("/users/:id", func(c *Context) { c.NoContent() })

	serve(t, r, http.MethodGet, "/users/42")
	serve(t, r, http.MethodGet, "/missing")

	assert.Equal(t, 2, obs.started)
	assert.Equal(t, 2, obs.ended)
	assert.Equal(t, []string{"/users/:id", RouteNotFound}, obs.patterns)
}

func TestRouterObservabilityNilStateSkipsEnd(t *testing.T) {
	obs := &recordingObserver{skip: true}
	r := MustNew(WithObservability(obs))
	r.GET("/healthz", func(c *Context) { c.NoContent() })

	serve(t, r, http.MethodGet, "/healthz")

	assert.Equal(t, 1, obs.started)
	assert.Equal(t, 0, obs.ended)
}
