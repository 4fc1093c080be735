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

import (
	"log/slog"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

type config struct {
	serviceName     string
	durationBuckets []float64
	skipPaths       []string
	accessLog       *slog.Logger

	// Exactly one metric source: an injected provider, or a reader factory
	// for a provider the recorder owns.
	meterProvider metric.MeterProvider
	newReader     func() (sdkmetric.Reader, *promclient.Registry, error)

	tracerProvider  trace.TracerProvider
	newSpanExporter func() (sdktrace.SpanExporter, error)
}

func defaultConfig() config {
	return config{
		serviceName:     "resto",
		durationBuckets: DefaultDurationBuckets,
		newReader: func() (sdkmetric.Reader, *promclient.Registry, error) {
			registry := promclient.NewRegistry()
			exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
			if err != nil {
				return nil, nil, err
			}

			return exporter, registry, nil
		},
	}
}

// Option configures a Recorder.
type Option func(*config) error

// WithServiceName sets the service name attached to exported telemetry.
func WithServiceName(name string) Option {
	return func(cfg *config) error {
		cfg.serviceName = name

		return nil
	}
}

// WithDurationBuckets overrides the request duration histogram boundaries,
// in seconds.
func WithDurationBuckets(buckets []float64) Option {
	return func(cfg *config) error {
		cfg.durationBuckets = buckets

		return nil
	}
}

// WithPrometheus exports metrics through the given registry instead of the
// recorder's private one. Handler returns nil in this mode; serve the
// registry yourself.
func WithPrometheus(registry *promclient.Registry) Option {
	return func(cfg *config) error {
		cfg.newReader = func() (sdkmetric.Reader, *promclient.Registry, error) {
			exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
			if err != nil {
				return nil, nil, err
			}

			return exporter, nil, nil
		}

		return nil
	}
}

// WithStdoutMetrics periodically prints metrics to stdout. Intended for
// development.
func WithStdoutMetrics(interval time.Duration) Option {
	return func(cfg *config) error {
		cfg.newReader = func() (sdkmetric.Reader, *promclient.Registry, error) {
			exporter, err := stdoutmetric.New()
			if err != nil {
				return nil, nil, err
			}

			return sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval)), nil, nil
		}

		return nil
	}
}

// WithMeterProvider records metrics through an existing provider. The caller
// keeps ownership; Shutdown will not stop it.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(cfg *config) error {
		cfg.meterProvider = provider

		return nil
	}
}

// WithStdoutTraces prints completed spans to stdout. Intended for
// development.
func WithStdoutTraces() Option {
	return func(cfg *config) error {
		cfg.newSpanExporter = func() (sdktrace.SpanExporter, error) {
			return stdouttrace.New(stdouttrace.WithPrettyPrint())
		}

		return nil
	}
}

// WithTracerProvider records spans through an existing provider. The caller
// keeps ownership; Shutdown will not stop it.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(cfg *config) error {
		cfg.tracerProvider = provider

		return nil
	}
}

// WithAccessLog emits one structured log line per recorded request.
func WithAccessLog(logger *slog.Logger) Option {
	return func(cfg *config) error {
		cfg.accessLog = logger

		return nil
	}
}

// WithSkipPaths excludes exact request paths from metrics, spans, and access
// logs. Useful for health checks and the metrics endpoint itself.
func WithSkipPaths(paths ...string) Option {
	return func(cfg *config) error {
		cfg.skipPaths = append(cfg.skipPaths, paths...)

		return nil
	}
}
