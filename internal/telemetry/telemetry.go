// Package telemetry wires OpenTelemetry tracing. Spans leave the process over
// OTLP/HTTP; cmd/darkidle points the exporter at Honeycomb.
package telemetry

import (
	"context"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	serviceName    = "darkidle"
	serviceVersion = "0.1.0"
)

// Shutdown flushes buffered spans and stops the provider.
type Shutdown func(context.Context) error

// Setup installs a global provider exporting over OTLP/HTTP. Endpoint and
// headers come from OTEL_EXPORTER_OTLP_ENDPOINT and OTEL_EXPORTER_OTLP_HEADERS.
func Setup(ctx context.Context) (Shutdown, error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}
	return SetupWithExporter(ctx, exporter)
}

// SetupWithExporter installs a global provider batching into exporter.
func SetupWithExporter(ctx context.Context, exporter sdktrace.SpanExporter) (Shutdown, error) {
	// resource.Default() carries its own schema URL; merging it fails on mismatch.
	res, err := resource.New(ctx, resource.WithAttributes(processAttributes()...))
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

func processAttributes() []attribute.KeyValue {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	return []attribute.KeyValue{
		attribute.String("service.name", serviceName),
		attribute.String("service.version", serviceVersion),
		attribute.String("host.name", host),
		attribute.String("os.type", runtime.GOOS),
		attribute.String("process.runtime.name", "go"),
		attribute.String("process.runtime.version", runtime.Version()),
		attribute.String("telemetry.sdk.language", "go"),
	}
}

// Tracer returns a tracer from the global provider, named per component
// ("game", "storage"). Before Setup it is a no-op.
func Tracer(component string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + component)
}

// NoopTracer returns a tracer that records nothing.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(serviceName + "/noop")
}
