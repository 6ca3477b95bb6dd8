package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var (
	apiTracer = otel.Tracer("leagueday/internal/interfaces/httpapi")
	// inertSpan absorbs End() calls on paths that should not emit a span.
	inertSpan = trace.SpanFromContext(context.Background())
)

// startSpan opens a handler span under the otelhttp request span. Helpers and
// filtered routes (health checks) get an inert span so they never produce
// standalone roots or close the request span early.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() || !shouldCreateHTTPAPISpan(name) {
		return ctx, inertSpan
	}
	return apiTracer.Start(ctx, name)
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}
