package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var (
	usecaseTracer    = otel.Tracer("leagueday/internal/usecase")
	usecaseInertSpan = trace.SpanFromContext(context.Background())
)

// startUsecaseSpan nests a service span under the caller's span. Untraced
// callers (the sweeper ticking outside a request) get an inert span back.
func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, usecaseInertSpan
	}
	return usecaseTracer.Start(ctx, name)
}
