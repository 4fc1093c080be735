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

package telemetry

// Attribute keys shared by metrics, traces, and access logs. They follow
// OpenTelemetry semantic conventions so output interoperates with standard
// observability tooling.
const (
	// AttrHTTPMethod stores the HTTP request method.
	AttrHTTPMethod = "http.request.method"

	// AttrHTTPRoute stores the matched route pattern, never the raw path
	// (e.g. "/users/:id"), keeping attribute cardinality bounded.
	AttrHTTPRoute = "http.route"

	// AttrHTTPTarget stores the actual requested path (e.g. "/users/42").
	// Used only on spans and logs, never as a metric dimension.
	AttrHTTPTarget = "http.target"

	// AttrHTTPStatusCode stores the numeric response status code.
	AttrHTTPStatusCode = "http.response.status_code"
)
