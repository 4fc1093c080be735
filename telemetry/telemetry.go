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

// Package telemetry implements resto's ObservabilityRecorder on OpenTelemetry.
//
// A Recorder combines the three pillars for every matched request: an otel
// request counter and duration histogram keyed by route pattern, a trace span
// renamed to the matched route once it is known, and an optional slog access
// log line. Metrics export through Prometheus by default; stdout exporters
// are available for development.
//
//	registry := prometheus.NewRegistry()
//	rec, err := telemetry.New(telemetry.WithPrometheus(registry))
//	if err != nil { ... }
//	r := resto.MustNew(resto.WithObservability(rec))
//	http.Handle("/metrics", rec.Handler())
package telemetry

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// DefaultDurationBuckets are histogram boundaries for request duration in
// seconds, covering sub-millisecond to ten-second responses.
var DefaultDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

const (
	meterName  = "github.com/resto-dev/resto/telemetry"
	tracerName = "github.com/resto-dev/resto/telemetry"
)

// Recorder records request metrics, traces, and access logs. It implements
// resto.ObservabilityRecorder and is safe for concurrent use.
type Recorder struct {
	cfg config

	requests metric.Int64Counter
	duration metric.Float64Histogram
	tracer   trace.Tracer

	// Providers owned by the recorder, shut down via Shutdown. Injected
	// providers are the caller's to manage.
	ownedMeter  *sdkmetric.MeterProvider
	ownedTracer *sdktrace.TracerProvider

	registry *promclient.Registry
	skip     map[string]bool
}

// New builds a Recorder. Without options, metrics export to a private
// Prometheus registry (exposed via Handler) and no spans are recorded.
func New(opts ...Option) (*Recorder, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	rec := &Recorder{cfg: cfg, skip: make(map[string]bool, len(cfg.skipPaths))}
	for _, p := range cfg.skipPaths {
		rec.skip[p] = true
	}

	if err := rec.initMetrics(); err != nil {
		return nil, err
	}
	if err := rec.initTracer(); err != nil {
		return nil, err
	}

	return rec, nil
}

func (rec *Recorder) initMetrics() error {
	provider := rec.cfg.meterProvider
	if provider == nil {
		reader, registry, err := rec.cfg.newReader()
		if err != nil {
			return fmt.Errorf("telemetry: creating metric reader: %w", err)
		}
		owned := sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(reader),
			sdkmetric.WithResource(rec.serviceResource()),
		)
		rec.ownedMeter = owned
		rec.registry = registry
		provider = owned
	}

	meter := provider.Meter(meterName)

	var err error
	rec.requests, err = meter.Int64Counter("http.server.request.count",
		metric.WithDescription("Number of HTTP requests handled"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return fmt.Errorf("telemetry: creating request counter: %w", err)
	}

	rec.duration, err = meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(rec.cfg.durationBuckets...),
	)
	if err != nil {
		return fmt.Errorf("telemetry: creating duration histogram: %w", err)
	}

	return nil
}

func (rec *Recorder) initTracer() error {
	switch {
	case rec.cfg.tracerProvider != nil:
		rec.tracer = rec.cfg.tracerProvider.Tracer(tracerName)
	case rec.cfg.newSpanExporter != nil:
		exporter, err := rec.cfg.newSpanExporter()
		if err != nil {
			return fmt.Errorf("telemetry: creating span exporter: %w", err)
		}
		rec.ownedTracer = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(rec.serviceResource()),
		)
		rec.tracer = rec.ownedTracer.Tracer(tracerName)
	default:
		rec.tracer = noop.NewTracerProvider().Tracer(tracerName)
	}

	return nil
}

func (rec *Recorder) serviceResource() *resource.Resource {
	return resource.NewSchemaless(attribute.String("service.name", rec.cfg.serviceName))
}

// state carries per-request recording data between lifecycle hooks.
type state struct {
	start  time.Time
	method string
	target string
	span   trace.Span
}

// OnRequestStart implements resto.ObservabilityRecorder. Requests on skip
// paths are excluded from recording but still receive the enriched context.
func (rec *Recorder) OnRequestStart(ctx context.Context, req *http.Request) (context.Context, any) {
	ctx, span := rec.tracer.Start(ctx, req.Method,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String(AttrHTTPMethod, req.Method),
			attribute.String(AttrHTTPTarget, req.URL.Path),
		),
	)

	if rec.skip[req.URL.Path] {
		span.End()

		return ctx, nil
	}

	return ctx, &state{
		start:  time.Now(),
		method: req.Method,
		target: req.URL.Path,
		span:   span,
	}
}

// WrapResponseWriter implements resto.ObservabilityRecorder.
func (rec *Recorder) WrapResponseWriter(w http.ResponseWriter, st any) http.ResponseWriter {
	if st == nil {
		return w
	}

	return &responseWriter{ResponseWriter: w}
}

// OnRequestEnd implements resto.ObservabilityRecorder.
func (rec *Recorder) OnRequestEnd(ctx context.Context, st any, w http.ResponseWriter, routePattern string) {
	s, ok := st.(*state)
	if !ok {
		return
	}

	elapsed := time.Since(s.start)

	status := http.StatusOK
	var size int64
	if info, ok := w.(interface {
		StatusCode() int
		Size() int64
	}); ok {
		status = info.StatusCode()
		size = info.Size()
	}

	attrs := metric.WithAttributes(
		attribute.String(AttrHTTPMethod, s.method),
		attribute.String(AttrHTTPRoute, routePattern),
		attribute.Int(AttrHTTPStatusCode, status),
	)
	rec.requests.Add(ctx, 1, attrs)
	rec.duration.Record(ctx, elapsed.Seconds(), attrs)

	s.span.SetName(s.method + " " + routePattern)
	s.span.SetAttributes(
		attribute.String(AttrHTTPRoute, routePattern),
		attribute.Int(AttrHTTPStatusCode, status),
	)
	if status >= http.StatusInternalServerError {
		s.span.SetStatus(codes.Error, http.StatusText(status))
	}
	s.span.End()

	if rec.cfg.accessLog != nil {
		rec.cfg.accessLog.InfoContext(ctx, "request",
			AttrHTTPMethod, s.method,
			AttrHTTPRoute, routePattern,
			AttrHTTPTarget, s.target,
			AttrHTTPStatusCode, status,
			"duration_ms", elapsed.Milliseconds(),
			"bytes", size,
		)
	}
}

// Handler returns the Prometheus scrape handler for the recorder's own
// registry, or nil when metrics export through an injected provider.
func (rec *Recorder) Handler() http.Handler {
	if rec.registry == nil {
		return nil
	}

	return promhttp.HandlerFor(rec.registry, promhttp.HandlerOpts{})
}

// Shutdown flushes and stops the providers the recorder owns.
func (rec *Recorder) Shutdown(ctx context.Context) error {
	if rec.ownedMeter != nil {
		if err := rec.ownedMeter.Shutdown(ctx); err != nil {
			return err
		}
	}
	if rec.ownedTracer != nil {
		if err := rec.ownedTracer.Shutdown(ctx); err != nil {
			return err
		}
	}

	return nil
}

// responseWriter captures status and size for OnRequestEnd.
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int64
}

func (w *responseWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *responseWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.size += int64(n)

	return n, err
}

// StatusCode implements resto.ResponseInfo.
func (w *responseWriter) StatusCode() int {
	if w.status == 0 {
		return http.StatusOK
	}

	return w.status
}

// Size implements resto.ResponseInfo.
func (w *responseWriter) Size() int64 { return w.size }

// Flush forwards to the underlying writer so streaming handlers keep working
// behind the instrumented wrapper.
func (w *responseWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack forwards to the underlying writer for handlers that take over the
// connection, such as websocket upgrades.
func (w *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := w.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}

	return nil, nil, errors.New("telemetry: underlying ResponseWriter does not support hijacking")
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *responseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
