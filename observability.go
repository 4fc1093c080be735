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
	"net/http"
)

// RouteNotFound is the route pattern reported to observability when no route
// matched the request.
const RouteNotFound = "_not_found"

// ObservabilityRecorder provides request lifecycle hooks for metrics, tracing,
// and access logging. The telemetry package ships the default implementation.
//
// Lifecycle:
//  1. OnRequestStart(ctx, req) returns an enriched context and an opaque
//     state token. A nil token excludes the request from recording, but the
//     enriched context still applies so downstream trace propagation works.
//  2. When the token is non-nil the router wraps the ResponseWriter via
//     WrapResponseWriter and calls OnRequestEnd after the handler returns,
//     passing the matched route pattern (or RouteNotFound).
//
// Implementations must be safe for concurrent use. Recorders receive the
// route pattern, never the raw path, to keep metric cardinality bounded.
type ObservabilityRecorder interface {
	OnRequestStart(ctx context.Context, req *http.Request) (context.Context, any)
	WrapResponseWriter(w http.ResponseWriter, state any) http.ResponseWriter
	OnRequestEnd(ctx context.Context, state any, w http.ResponseWriter, routePattern string)
}

// ResponseInfo exposes response metadata from wrapped writers so recorders
// can extract status and size in OnRequestEnd.
type ResponseInfo interface {
	StatusCode() int
	Size() int64
}
