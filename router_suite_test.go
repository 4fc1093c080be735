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
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/resto-dev/resto/manifest"
)

// RouterSuite drives a fully assembled router: a manifest-mounted API, a
// grouped admin section, and a direct health route, exercised together the
// way an application wires them.
type RouterSuite struct {
	suite.Suite

	router *Router
}

func (s *RouterSuite) SetupTest() {
	m, err := manifest.Parse([]byte(`
namespace: Api::V1
resources:
  - name: Users
    only: [index, show]
  - name: Projects::Users
    nested: true
    only: [index]
`), "yaml")
	s.Require().NoError(err)

	s.router = MustNew()
	s.Require().NoError(s.router.MountManifest(m, ControllerMap{
		"Users":           readOnlyController{},
		"Projects::Users": nestedController{},
	}))

	admin := s.router.Group("/admin")
	s.Require().NoError(admin.Resources("Accounts", fullController{}))

	s.router.GET("/healthz", func(c *Context) { _ = c.String(http.StatusOK, "ok") }).Named("healthz")
}

func (s *RouterSuite) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	return w
}

func (s *RouterSuite) TestManifestRoutesServe() {
	s.Equal("show 42", s.get("/api/v1/users/42").Body.String())
	s.Equal("project 7", s.get("/api/v1/projects/7/users").Body.String())
}

func (s *RouterSuite) TestGroupedResourcesServe() {
	s.Equal("edit 9", s.get("/admin/accounts/9/edit").Body.String())
}

func (s *RouterSuite) TestDirectRouteServes() {
	s.Equal("ok", s.get("/healthz").Body.String())
}

func (s *RouterSuite) TestHelpersCoverAllSources() {
	path, err := s.router.PathFor("api.v1.users.show", "42")
	s.Require().NoError(err)
	s.Equal("/api/v1/users/42", path)

	path, err = s.router.PathFor("accounts.edit", "9")
	s.Require().NoError(err)
	s.Equal("/admin/accounts/9/edit", path)

	path, err = s.router.PathFor("healthz")
	s.Require().NoError(err)
	s.Equal("/healthz", path)
}

func (s *RouterSuite) TestUnknownPathIsProblem() {
	w := s.get("/nope")
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("application/problem+json", w.Header().Get("Content-Type"))
}

func (s *RouterSuite) TestRoutesIntrospection() {
	names := make(map[string]bool)
	for _, rt := range s.router.Routes() {
		if rt.Name != "" {
			names[rt.Name] = true
		}
	}
	s.True(names["api.v1.users.index"])
	s.True(names["api.v1.projects.users.index"])
	s.True(names["accounts.create"])
	s.True(names["healthz"])
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}
