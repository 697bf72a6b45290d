package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/LyraHealth/auto-thunk/store"
)

// meterName is the instrumentation scope name for dispatch metrics.
const meterName = "github.com/LyraHealth/auto-thunk"

// Metrics returns middleware that records per-dispatch metrics using the
// global OTel MeterProvider. If no MeterProvider is configured, noop
// instruments are used.
//
// Instruments:
//   - autothunk.dispatch.duration (Float64Histogram): seconds, with
//     attributes unit_kind, unit_name, status ("ok" or "error")
//   - autothunk.dispatch.count (Int64Counter): total dispatches, same
//     attributes
func Metrics() store.Middleware {
	return MetricsWithMeter(otel.Meter(meterName))
}

// MetricsWithMeter returns metrics middleware using the provided meter.
func MetricsWithMeter(meter metric.Meter) store.Middleware {
	// On error the API returns noop instruments.
	duration, _ := meter.Float64Histogram(
		"autothunk.dispatch.duration",
		metric.WithDescription("Duration of dispatch in seconds"),
		metric.WithUnit("s"),
	)
	count, _ := meter.Int64Counter(
		"autothunk.dispatch.count",
		metric.WithDescription("Total number of dispatches"),
		metric.WithUnit("{dispatch}"),
	)

	return func(ctx context.Context, _ store.API, unit any, next store.DispatchFunc) (any, error) {
		info := describe(unit)
		start := time.Now()
		v, err := next(ctx, unit)
		elapsed := time.Since(start).Seconds()

		status := "ok"
		if err != nil {
			status = "error"
		}

		attrs := metric.WithAttributes(
			attribute.String("unit_kind", info.kind),
			attribute.String("unit_name", info.name),
			attribute.String("status", status),
		)
		duration.Record(ctx, elapsed, attrs)
		count.Add(ctx, 1, attrs)

		return v, err
	}
}
