package thunk

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/LyraHealth/auto-thunk/action"
	"github.com/LyraHealth/auto-thunk/httpclient"
	"github.com/LyraHealth/auto-thunk/id"
	"github.com/LyraHealth/auto-thunk/request"
	"github.com/LyraHealth/auto-thunk/store"
)

// tracerName is the instrumentation scope name for thunk tracing.
const tracerName = "github.com/LyraHealth/auto-thunk/thunk"

// Logger receives a descriptor's Log identifier with the response payload,
// or with the server's error reply on failure.
type Logger interface {
	Log(ctx context.Context, identifier string, payload any)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(ctx context.Context, identifier string, payload any)

// Log calls f.
func (f LoggerFunc) Log(ctx context.Context, identifier string, payload any) { f(ctx, identifier, payload) }

// Tracker receives a descriptor's telemetry events.
type Tracker interface {
	Track(ctx context.Context, e Event)
}

// TrackerFunc adapts a function to Tracker.
type TrackerFunc func(ctx context.Context, e Event)

// Track calls f.
func (f TrackerFunc) Track(ctx context.Context, e Event) { f(ctx, e) }

type nopLogger struct{}

func (nopLogger) Log(context.Context, string, any) {}

type nopTracker struct{}

func (nopTracker) Track(context.Context, Event) {}

// Config holds the resolver's capabilities. HTTPClient is required; the
// others default to DefaultErrorHandler and no-ops.
type Config struct {
	HTTPClient   httpclient.Client
	ErrorHandler ErrorHandler
	Tracker      Tracker
	Logger       Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithExtraArgument sets the value passed as extra to every Func.
func WithExtraArgument(v any) Option {
	return func(r *Resolver) { r.extra = v }
}

// WithSlog sets the structured logger for the resolver's own diagnostics.
func WithSlog(l *slog.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// WithTracer sets the tracer used for thunk spans.
func WithTracer(t trace.Tracer) Option {
	return func(r *Resolver) { r.tracer = t }
}

// Resolver classifies dispatched units and runs descriptors. Its
// configuration is fixed at construction, so it is safe for concurrent use.
type Resolver struct {
	cfg    Config
	extra  any
	logger *slog.Logger
	tracer trace.Tracer
}

// New builds a Resolver, filling defaults for the optional capabilities.
func New(cfg Config, opts ...Option) (*Resolver, error) {
	r := newResolver(opts)
	if cfg.HTTPClient == nil {
		return nil, ErrNoHTTPClient
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = DefaultErrorHandler
	}
	if cfg.Tracker == nil {
		cfg.Tracker = nopTracker{}
	}
	if cfg.Logger == nil {
		cfg.Logger = nopLogger{}
	}
	r.cfg = cfg
	return r, nil
}

func newResolver(opts []Option) *Resolver {
	r := &Resolver{
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Middleware builds a Resolver and returns its store middleware. A
// configuration error is logged once and yields a middleware that forwards
// every unit unchanged.
func Middleware(cfg Config, opts ...Option) store.Middleware {
	r, err := New(cfg, opts...)
	if err != nil {
		newResolver(opts).logger.Error("thunk resolver disabled", slog.String("error", err.Error()))
		return func(ctx context.Context, _ store.API, unit any, next store.DispatchFunc) (any, error) {
			return next(ctx, unit)
		}
	}
	return r.Middleware()
}

// Middleware returns r as store middleware.
func (r *Resolver) Middleware() store.Middleware {
	return r.Intercept
}

// Intercept handles one unit. Nil units are ignored; transitions and
// unrecognized units go to next; functions and descriptors are invoked
// with the store's dispatch and getState.
func (r *Resolver) Intercept(ctx context.Context, api store.API, unit any, next store.DispatchFunc) (any, error) {
	u := Classify(unit)
	switch u.Kind {
	case KindNone:
		return nil, nil
	case KindFunc:
		return u.Func(ctx, api.Dispatch, api.GetState, r.extra)
	case KindDescriptor:
		if u.Err != nil {
			return nil, u.Err
		}
		fn, err := r.BuildThunk(*u.Descriptor)
		if err != nil {
			return nil, err
		}
		return fn(ctx, api.Dispatch, api.GetState, r.extra)
	default:
		return next(ctx, unit)
	}
}

// BuildThunk normalizes d's request and returns the Func that executes it.
// The request is validated once; each invocation hands the client its own
// copy.
func (r *Resolver) BuildThunk(d Descriptor) (Func, error) {
	req, err := request.Prepare(d.Request, d.BodyType)
	if err != nil {
		return nil, invalidDescriptor(err)
	}

	return func(ctx context.Context, dispatch store.DispatchFunc, _ func() any, _ any) (any, error) {
		thunkID := id.NewThunkID()
		ctx = id.NewContext(ctx, thunkID)

		ctx, span := r.tracer.Start(ctx, "autothunk.thunk",
			trace.WithAttributes(
				attribute.String("autothunk.thunk.id", thunkID.String()),
				attribute.String("autothunk.request.method", req.Method),
				attribute.String("autothunk.request.url", req.URL),
			),
			trace.WithSpanKind(trace.SpanKindInternal),
		)
		defer span.End()

		call, err := req.Normalize()
		if err != nil {
			return nil, invalidDescriptor(err)
		}
		resp, err := r.cfg.HTTPClient.Request(ctx, call)
		if err != nil {
			f := r.fail(ctx, d, dispatch, err)
			span.RecordError(f)
			span.SetStatus(codes.Error, f.Error())
			return nil, f
		}

		var data any
		if resp != nil {
			data = resp.Data
		}
		if d.Log != nil && d.Log.Identifier != "" {
			r.cfg.Logger.Log(ctx, d.Log.Identifier, d.Log.payload(data))
		}
		if d.Track != nil {
			r.cfg.Tracker.Track(ctx, d.Track.Success)
		}

		transitions := action.Resolve(d.Action, data)
		for _, a := range transitions {
			if _, err := dispatch(ctx, a); err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return nil, fmt.Errorf("thunk: dispatch %s: %w", a.Type, err)
			}
		}
		span.SetAttributes(attribute.Int("autothunk.transitions", len(transitions)))
		span.SetStatus(codes.Ok, "")
		return data, nil
	}, nil
}

// fail runs the failure path: log, track, then the error handler exactly once.
func (r *Resolver) fail(ctx context.Context, d Descriptor, dispatch store.DispatchFunc, err error) *Failure {
	resp := httpclient.ResponseOf(err)

	if d.Log != nil && d.Log.Identifier != "" && resp != nil {
		r.cfg.Logger.Log(ctx, d.Log.Identifier, resp)
	}
	if d.Track != nil && d.Track.Failure != nil {
		r.cfg.Tracker.Track(ctx, failureEvent(*d.Track.Failure, resp, err))
	}

	handler := r.cfg.ErrorHandler
	if d.ErrorHandler != nil {
		handler = d.ErrorHandler
	}
	signal := handler(ctx, err, dispatch, d.Action)

	thunkID, _ := id.FromContext(ctx)
	r.logger.Debug("thunk request failed",
		slog.String("thunk_id", thunkID.String()),
		slog.String("error", err.Error()),
		slog.Bool("signaled", signal != nil),
	)
	return &Failure{Err: err, Signal: signal}
}

func failureEvent(e Event, resp *httpclient.ErrorResponse, err error) Event {
	if resp == nil {
		return e.With("message", err.Error())
	}
	e = e.With("status", resp.Status)
	if resp.Message != "" {
		return e.With("message", resp.Message)
	}
	return e.With("message", err.Error())
}
