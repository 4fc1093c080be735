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

// Package action resolves convention-based action names into HTTP routes.
//
// An action name is a namespace-qualified identifier ending in one of seven
// recognized action kinds:
//
//	Index, Show, New, Create, Edit, Update, Delete
//
// Each kind deterministically fixes the HTTP method and path shape of the
// resolved route. The segment immediately preceding the kind is the resource;
// everything before it is the namespace. Multi-word segments are converted to
// lower snake_case path segments:
//
//	Users.Index                → GET    /users
//	Users.Show                 → GET    /users/:id
//	Api.V1.Users.Show          → GET    /api/v1/users/:id
//	MyAdminSection.Users.Show  → GET    /my_admin_section/users/:id
//
// Nested resolution treats the segment before the resource as a parent
// resource whose singular form contributes an identifier parameter:
//
//	Projects.Users.Index  (nested) → GET /projects/:project_id/users
//	Projects.Users.Update (nested) → PUT /projects/:project_id/users/:id
//
// Resolution is a pure function of the name and mode. It never touches the
// network or filesystem, and resolving the same name twice yields identical
// output. Names whose terminal segment is not a recognized kind fail with
// ErrUnrecognizedActionKind; callers are expected to surface that error at
// definition time, before any request handling is wired.
//
// Both "." and the source-framework spelling "::" are accepted as segment
// separators; the canonical String form uses ".".
package action
