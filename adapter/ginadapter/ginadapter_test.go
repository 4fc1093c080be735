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

package ginadapter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resto-dev/resto"
	"github.com/resto-dev/resto/action"
)

type usersController struct{}

func (usersController) Index(c *gin.Context) { c.String(http.StatusOK, "index") }
func (usersController) Show(c *gin.Context)  { c.String(http.StatusOK, "show "+c.Param("id")) }
func (usersController) Update(c *gin.Context) {
	c.String(http.StatusOK, "update "+c.Param("id"))
}

type nestedUsersController struct{}

func (nestedUsersController) Index(c *gin.Context) {
	c.String(http.StatusOK, "project "+c.Param("project_id"))
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)

	return gin.New()
}

func serve(t *testing.T, engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))

	return w
}

func TestResourcesServesImplementedActions(t *testing.T) {
	engine := newEngine()
	b := New(engine)
	require.NoError(t, b.Resources("Api::V1::Users", usersController{}))

	w := serve(t, engine, http.MethodGet, "/api/v1/users")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "index", w.Body.String())

	w = serve(t, engine, http.MethodGet, "/api/v1/users/42")
	assert.Equal(t, "show 42", w.Body.String())

	w = serve(t, engine, http.MethodPut, "/api/v1/users/42")
	assert.Equal(t, "update 42", w.Body.String())

	// PATCH is opt-in.
	w = serve(t, engine, http.MethodPatch, "/api/v1/users/42")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResourcesAllowPatch(t *testing.T) {
	engine := newEngine()
	b := New(engine)
	require.NoError(t, b.Resources("Users", usersController{}, AllowPatch()))

	w := serve(t, engine, http.MethodPatch, "/users/42")
	assert.Equal(t, "update 42", w.Body.String())
}

func TestResourcesNested(t *testing.T) {
	engine := newEngine()
	b := New(engine)
	require.NoError(t, b.Resources("Projects::Users", nestedUsersController{}, Nested()))

	w := serve(t, engine, http.MethodGet, "/projects/7/users")
	assert.Equal(t, "project 7", w.Body.String())

	path, err := b.PathFor("projects.users.index", "7")
	require.NoError(t, err)
	assert.Equal(t, "/projects/7/users", path)
}

func TestResourcesOnlyAndExcept(t *testing.T) {
	engine := newEngine()
	b := New(engine)
	require.NoError(t, b.Resources("Users", usersController{},
		Only(action.Index, action.Show), Except(action.Show)))

	w := serve(t, engine, http.MethodGet, "/users/42")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResourcesErrors(t *testing.T) {
	b := New(newEngine())

	err := b.Resources("Users", struct{}{})
	assert.ErrorIs(t, err, resto.ErrNoActions)

	err = b.Resources("Users", usersController{}, Only(action.Delete))
	assert.ErrorIs(t, err, resto.ErrActionNotImplemented)

	err = b.Resources("Users", nestedUsersController{}, Nested())
	assert.ErrorIs(t, err, action.ErrMissingParent)
}

func TestPathHelpers(t *testing.T) {
	b := New(newEngine())
	require.NoError(t, b.Resources("Api::V1::Users", usersController{}))

	path, err := b.PathFor("api.v1.users.show", "42")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/users/42", path)

	_, err = b.PathFor("api.v1.users.delete")
	assert.ErrorIs(t, err, resto.ErrRouteNotFound)

	assert.Equal(t,
		[]string{"api.v1.users.index", "api.v1.users.show", "api.v1.users.update"},
		b.Paths().Names())
}
