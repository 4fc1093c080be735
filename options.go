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
	"log/slog"

	"github.com/resto-dev/resto/problem"
)

// Option configures a Router at construction time.
type Option func(*Router)

// WithLogger sets the structured logger used for router diagnostics
// (definition-time warnings, serve errors). Defaults to slog.Default().
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	r := resto.MustNew(resto.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithObservability installs a request lifecycle recorder.
// See the telemetry package for the OpenTelemetry implementation.
//
// Example:
//
//	rec, _ := telemetry.New(telemetry.WithPrometheus(prometheus.NewRegistry()))
//	r := resto.MustNew(resto.WithObservability(rec))
func WithObservability(recorder ObservabilityRecorder) Option {
	return func(r *Router) {
		r.obs = recorder
	}
}

// WithProblemFormatter replaces the RFC 9457 formatter used for the default
// 404/405 responses and Context.Problem. The default formatter has an empty
// base URL ("about:blank" problem types).
func WithProblemFormatter(f *problem.Formatter) Option {
	return func(r *Router) {
		r.problems = f
	}
}
