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

package echoadapter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resto-dev/resto"
	"github.com/resto-dev/resto/action"
)

type usersController struct{}

func (usersController) Index(c echo.Context) error {
	return c.String(http.StatusOK, "index")
}

func (usersController) Show(c echo.Context) error {
	return c.String(http.StatusOK, "show "+c.Param("id"))
}

func (usersController) Delete(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

type nestedUsersController struct{}

func (nestedUsersController) Index(c echo.Context) error {
	return c.String(http.StatusOK, "project "+c.Param("project_id"))
}

func serve(t *testing.T, e *echo.Echo, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(method, path, nil))

	return w
}

func TestResourcesServesImplementedActions(t *testing.T) {
	e := echo.New()
	b := New(e)
	require.NoError(t, b.Resources("Api::V1::Users", usersController{}))

	w := serve(t, e, http.MethodGet, "/api/v1/users")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "index", w.Body.String())

	w = serve(t, e, http.MethodGet, "/api/v1/users/42")
	assert.Equal(t, "show 42", w.Body.String())

	w = serve(t, e, http.MethodDelete, "/api/v1/users/42")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestResourcesNested(t *testing.T) {
	e := echo.New()
	b := New(e)
	require.NoError(t, b.Resources("Projects::Users", nestedUsersController{}, Nested()))

	w := serve(t, e, http.MethodGet, "/projects/7/users")
	assert.Equal(t, "project 7", w.Body.String())
}

func TestResourcesOnGroup(t *testing.T) {
	e := echo.New()
	b := New(e.Group("/admin"))
	require.NoError(t, b.Resources("Users", usersController{}, Only(action.Index)))

	w := serve(t, e, http.MethodGet, "/admin/users")
	assert.Equal(t, "index", w.Body.String())
}

func TestRoutesAreNamedForEchoReverse(t *testing.T) {
	e := echo.New()
	b := New(e)
	require.NoError(t, b.Resources("Api::V1::Users", usersController{}))

	assert.Equal(t, "/api/v1/users/42", e.Reverse("api.v1.users.show", "42"))
}

func TestResourcesErrors(t *testing.T) {
	b := New(echo.New())

	err := b.Resources("Users", struct{}{})
	assert.ErrorIs(t, err, resto.ErrNoActions)

	err = b.Resources("Users", usersController{}, Only(action.Update))
	assert.ErrorIs(t, err, resto.ErrActionNotImplemented)

	err = b.Resources("", usersController{})
	assert.ErrorIs(t, err, action.ErrEmptyName)
}

func TestPathHelpers(t *testing.T) {
	b := New(echo.New())
	require.NoError(t, b.Resources("Projects::Users", nestedUsersController{}, Nested()))

	path, err := b.PathFor("projects.users.index", "7")
	require.NoError(t, err)
	assert.Equal(t, "/projects/7/users", path)

	u, err := b.URLFor("projects.users.index", map[string]string{"project_id": "7"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "/projects/7/users", u)
}
