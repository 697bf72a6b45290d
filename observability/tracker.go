package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/LyraHealth/auto-thunk/thunk"
)

// meterName is the instrumentation scope name for tracked events.
const meterName = "github.com/LyraHealth/auto-thunk/observability"

// Compile-time interface check.
var _ thunk.Tracker = (*Tracker)(nil)

// Tracker counts telemetry events on the autothunk.track.events counter,
// attributed by event name and, for failure events, status.
type Tracker struct {
	events metric.Int64Counter
	logger *slog.Logger
}

// NewTracker returns a Tracker using the global MeterProvider.
func NewTracker() *Tracker {
	return NewTrackerWithMeter(otel.Meter(meterName))
}

// NewTrackerWithMeter returns a Tracker using the provided meter.
func NewTrackerWithMeter(meter metric.Meter) *Tracker {
	// On error the API returns a noop counter.
	events, _ := meter.Int64Counter(
		"autothunk.track.events",
		metric.WithDescription("Telemetry events sent by request descriptors"),
		metric.WithUnit("{event}"),
	)
	return &Tracker{events: events, logger: slog.Default()}
}

// WithLogger returns t writing a debug record per event to l.
func (t *Tracker) WithLogger(l *slog.Logger) *Tracker {
	t.logger = l
	return t
}

// Track implements thunk.Tracker.
func (t *Tracker) Track(ctx context.Context, e thunk.Event) {
	attrs := []attribute.KeyValue{attribute.String("event", e.Name)}
	if status, ok := e.Properties["status"].(int); ok {
		attrs = append(attrs, attribute.Int("status", status))
	}
	t.events.Add(ctx, 1, metric.WithAttributes(attrs...))

	t.logger.Debug("thunk event tracked",
		slog.String("event", e.Name),
		slog.Any("properties", e.Properties),
	)
}
