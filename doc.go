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

// Package resto is a convention-over-configuration resource router for Go.
//
// Controllers implement some subset of seven action interfaces (Index, Show,
// New, Create, Edit, Update, Delete); registering a controller under a
// namespace-qualified resource name generates the RESTful routes the naming
// conventions prescribe:
//
//	type usersController struct{}
//
//	func (usersController) Index(c *resto.Context) { c.JSON(200, listUsers()) }
//	func (usersController) Show(c *resto.Context)  { c.JSON(200, findUser(c.Param("id"))) }
//
//	r := resto.MustNew()
//	r.MustResources("Api::V1::Users", usersController{})
//	// GET /api/v1/users     (named api.v1.users.index)
//	// GET /api/v1/users/:id (named api.v1.users.show)
//	http.ListenAndServe(":8080", r)
//
// Nested resources scope a resource under its parent's identifier:
//
//	r.MustResources("Projects::Users", projectUsers{}, resto.Nested())
//	// GET /projects/:project_id/users
//
// # Route Helpers
//
// Every convention route is named after its action ("api.v1.users.show").
// Helpers build paths and structured routes from those names:
//
//	path, _ := r.PathFor("api.v1.users.show", "42") // "/api/v1/users/42"
//	info, _ := r.RouteFor("api.v1.users.show")      // {GET /api/v1/users/:id}
//	u, _ := r.URLFor("api.v1.users.index", nil, url.Values{"page": {"2"}})
//
// # Definition-Time Errors
//
// Everything that can be wrong with a route table — an unrecognized action
// kind, a controller without the declared action, a duplicate name — is
// reported when the table is built. The first request freezes the router;
// registration afterwards panics.
//
// # Direct Routes
//
// Routes outside the conventions register the usual way and may opt into
// naming:
//
//	r.GET("/healthz", healthHandler)
//	r.GET("/search", searchHandler).Named("search")
//
// # Manifests
//
// The manifest package loads a declarative route table from YAML or TOML;
// Router.MountManifest wires it to controllers.
//
// # Observability
//
// WithObservability installs a lifecycle recorder; the telemetry package
// ships an OpenTelemetry implementation (metrics, traces, access logs) with
// Prometheus and stdout exporters. Recorders are keyed by route pattern, not
// raw path, so metric cardinality stays bounded.
//
// # Constructor Pattern
//
// New returns an error for forward compatibility; options that only assign
// fields cannot fail. MustNew and MustResources panic, which is appropriate
// for route tables built from literals during startup.
package resto
