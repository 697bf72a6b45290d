// Package observability provides the default log and track capabilities
// for the thunk resolver.
//
// [Logger] writes a descriptor's log identifier and payload through slog.
// [Tracker] counts a descriptor's telemetry events on an OpenTelemetry
// counter, so success and failure events can be charted per event name.
//
//	r, err := thunk.New(thunk.Config{
//		HTTPClient: client,
//		Logger:     observability.NewLogger(slog.Default()),
//		Tracker:    observability.NewTracker(),
//	})
//
// For per-dispatch tracing and metrics, see the middleware package:
// middleware.Tracing() and middleware.Metrics().
package observability
