package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetupWithExporter(t *testing.T) {
	ctx := context.Background()
	exporter := tracetest.NewInMemoryExporter()

	shutdown, err := SetupWithExporter(ctx, exporter)
	if err != nil {
		t.Fatalf("SetupWithExporter() error = %v", err)
	}

	defer func() {
		if err := shutdown(ctx); err != nil {
			t.Errorf("shutdown() error = %v", err)
		}
	}()

	_, span := Tracer("test").Start(ctx, "test.span")
	span.End()

	// The in-memory exporter drops its spans on shutdown, so flush instead.
	tp, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	if !ok {
		t.Fatalf("global provider is %T, want *sdktrace.TracerProvider", otel.GetTracerProvider())
	}
	if err := tp.ForceFlush(ctx); err != nil {
		t.Fatalf("ForceFlush() error = %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("exported %d spans, want 1", len(spans))
	}
	if spans[0].Name != "test.span" {
		t.Errorf("span name = %q, want %q", spans[0].Name, "test.span")
	}
	if got := spans[0].InstrumentationScope.Name; got != "darkidle/test" {
		t.Errorf("scope = %q, want %q", got, "darkidle/test")
	}
}

func TestNoopTracer(t *testing.T) {
	_, span := NoopTracer().Start(context.Background(), "ignored")
	defer span.End()

	if span.SpanContext().IsValid() {
		t.Error("noop span should have an invalid span context")
	}
}
