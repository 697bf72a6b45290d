package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/LyraHealth/auto-thunk/store"
)

// tracerName is the instrumentation scope name for dispatch tracing.
const tracerName = "github.com/LyraHealth/auto-thunk"

// Tracing returns middleware that wraps each dispatch in an OpenTelemetry
// span. If no TracerProvider is configured globally, the default noop
// tracer is used and this middleware becomes a pass-through.
//
// Span attributes: autothunk.unit.kind, autothunk.unit.name. On error, the
// span status is set to codes.Error with the error message.
func Tracing() store.Middleware {
	return TracingWithTracer(otel.Tracer(tracerName))
}

// TracingWithTracer returns tracing middleware using the provided tracer.
func TracingWithTracer(tracer trace.Tracer) store.Middleware {
	return func(ctx context.Context, _ store.API, unit any, next store.DispatchFunc) (any, error) {
		info := describe(unit)
		ctx, span := tracer.Start(ctx, "autothunk.dispatch",
			trace.WithAttributes(
				attribute.String("autothunk.unit.kind", info.kind),
				attribute.String("autothunk.unit.name", info.name),
			),
			trace.WithSpanKind(trace.SpanKindInternal),
		)
		defer span.End()

		v, err := next(ctx, unit)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return v, err
	}
}
