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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextParams(t *testing.T) {
	r := MustNew()
	var params []Param
	var missing string
	r.GET("/projects/:project_id/users/:id", func(c *Context) {
		params = c.Params()
		missing = c.Param("nope")
		c.NoContent()
	})

	serve(t, r, http.MethodGet, "/projects/7/users/42")

	assert.Equal(t, []Param{
		{Key: "project_id", Value: "7"},
		{Key: "id", Value: "42"},
	}, params)
	assert.Empty(t, missing)
}

func TestContextQuery(t *testing.T) {
	r := MustNew()
	var page string
	r.GET("/users", func(c *Context) {
		page = c.Query("page")
		c.NoContent()
	})

	serve(t, r, http.MethodGet, "/users?page=2&page=3")
	assert.Equal(t, "2", page)
}

func TestContextJSON(t *testing.T) {
	r := MustNew()
	r.GET("/users/:id", func(c *Context) {
		_ = c.JSON(http.StatusOK, map[string]string{"id": c.Param("id")})
	})

	w := serve(t, r, http.MethodGet, "/users/42")
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "42", body["id"])
}

func TestContextProblem(t *testing.T) {
	r := MustNew()
	var reached bool
	r.GET("/users/:id", func(c *Context) {
		_ = c.Problem(http.StatusConflict, nil)
	}, func(c *Context) {
		reached = true
	})

	w := serve(t, r, http.MethodGet, "/users/42")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
	assert.False(t, reached, "Problem must abort the chain")
}

func TestContextPathFor(t *testing.T) {
	r := MustNew()
	require.NoError(t, r.Resources("Users", readOnlyController{}))

	var location string
	r.POST("/signup", func(c *Context) {
		location, _ = c.PathFor("users.show", "42")
		c.Writer.Header().Set("Location", location)
		c.Status(http.StatusCreated)
	})

	w := serve(t, r, http.MethodPost, "/signup")
	assert.Equal(t, "/users/42", w.Header().Get("Location"))
}

func TestContextPoolReuseResetsState(t *testing.T) {
	r := MustNew()
	r.GET("/a/:id", func(c *Context) { c.NoContent() })
	r.GET("/b", func(c *Context) {
		assert.Empty(t, c.Params())
		assert.Empty(t, c.RouteName())
		c.NoContent()
	})

	serve(t, r, http.MethodGet, "/a/7")
	serve(t, r, http.MethodGet, "/b")
}
