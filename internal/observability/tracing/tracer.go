// Package tracing provides OpenTelemetry tracing for the search pipeline.
package tracing

import (
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the global tracer instance for the newssearch application.
var tracer = otel.Tracer("newssearch")

// GetTracer returns the global tracer for creating spans.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}

// InitProvider installs a basic SDK tracer provider and returns a shutdown
// function for graceful teardown. Exporters can be attached via standard
// OTEL environment configuration; by default spans are recorded but not
// exported.
func InitProvider() *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	return tp
}
