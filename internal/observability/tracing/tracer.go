// Package tracing provides OpenTelemetry tracing for HTTP requests.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("newswire")

// GetTracer returns the application tracer for creating spans.
func GetTracer() trace.Tracer {
	return tracer
}
