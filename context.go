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
	"encoding/json"
	"net/http"
)

// HandlerFunc handles a matched request.
type HandlerFunc func(*Context)

// Context carries a single request through the middleware chain and handler.
// Contexts are pooled; handlers must not retain one past the request.
type Context struct {
	Request *http.Request
	Writer  http.ResponseWriter

	router       *Router
	params       []Param
	handlers     []HandlerFunc
	index        int
	routeName    string
	routePattern string
	aborted      bool
}

func (c *Context) reset(w http.ResponseWriter, req *http.Request) {
	c.Request = req
	c.Writer = w
	c.params = c.params[:0]
	c.handlers = nil
	c.index = 0
	c.routeName = ""
	c.routePattern = ""
	c.aborted = false
}

// Next runs the remaining handlers in the chain. Middleware calls it to pass
// control onward; omitting the call short-circuits the chain.
func (c *Context) Next() {
	for c.index < len(c.handlers) && !c.aborted {
		h := c.handlers[c.index]
		c.index++
		h(c)
	}
}

// Abort stops the remaining handlers from running.
func (c *Context) Abort() {
	c.aborted = true
}

// Param returns the value of a path parameter, or "".
func (c *Context) Param(key string) string {
	for i := range c.params {
		if c.params[i].Key == key {
			return c.params[i].Value
		}
	}

	return ""
}

// Params returns a copy of all captured path parameters in path order.
func (c *Context) Params() []Param {
	out := make([]Param, len(c.params))
	copy(out, c.params)

	return out
}

// Query returns the first value of a URL query parameter, or "".
func (c *Context) Query(key string) string {
	return c.Request.URL.Query().Get(key)
}

// RouteName returns the matched route's name, or "" for anonymous routes.
func (c *Context) RouteName() string { return c.routeName }

// RoutePattern returns the matched path template, e.g. "/users/:id".
// Use this, not the raw path, as a metrics or tracing dimension.
func (c *Context) RoutePattern() string { return c.routePattern }

// Status writes the response header with the given status code.
func (c *Context) Status(code int) {
	c.Writer.WriteHeader(code)
}

// NoContent responds with 204 and no body.
func (c *Context) NoContent() {
	c.Writer.WriteHeader(http.StatusNoContent)
}

// String writes a text/plain response.
func (c *Context) String(code int, body string) error {
	c.Writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.Writer.WriteHeader(code)
	_, err := c.Writer.Write([]byte(body))

	return err
}

// JSON writes an application/json response.
func (c *Context) JSON(code int, v any) error {
	c.Writer.Header().Set("Content-Type", "application/json")
	c.Writer.WriteHeader(code)

	return json.NewEncoder(c.Writer).Encode(v)
}

// Problem writes an RFC 9457 problem detail response using the router's
// formatter and aborts the chain.
func (c *Context) Problem(status int, err error) error {
	c.Abort()

	return c.router.problems.Write(c.Writer, c.Request, status, err)
}

// PathFor builds a path for a named route from ordered parameter values.
// See Router.PathFor.
func (c *Context) PathFor(name string, values ...string) (string, error) {
	return c.router.PathFor(name, values...)
}
