package autothunk

import (
	"log/slog"

	"github.com/LyraHealth/auto-thunk/httpclient"
	"github.com/LyraHealth/auto-thunk/middleware"
	"github.com/LyraHealth/auto-thunk/observability"
	"github.com/LyraHealth/auto-thunk/store"
	"github.com/LyraHealth/auto-thunk/thunk"
)

// Option configures a Store.
type Option func(*builder) error

// builder collects options before the store is assembled.
type builder struct {
	config  Config
	logger  *slog.Logger
	initial any
	client  httpclient.Client
	thunk   thunk.Config
	extra   any
	mws     []store.Middleware
}

// Store is a store.Store with the thunk resolver installed.
//
// Create one with New() and functional options.
type Store struct {
	*store.Store

	config   Config
	logger   *slog.Logger
	client   httpclient.Client
	resolver *thunk.Resolver
}

// New assembles the HTTP client, the resolver and the middleware chain
// around reducer.
func New(reducer store.Reducer, opts ...Option) (*Store, error) {
	b := &builder{
		config: DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	client := b.client
	if client == nil {
		client = httpclient.New(b.config.HTTP, httpclient.WithLogger(b.logger))
	}

	tc := b.thunk
	tc.HTTPClient = client
	if tc.Logger == nil {
		tc.Logger = observability.NewLogger(b.logger)
	}
	if tc.Tracker == nil && b.config.Metrics {
		tc.Tracker = observability.NewTracker().WithLogger(b.logger)
	}
	resolver, err := thunk.New(tc, thunk.WithExtraArgument(b.extra), thunk.WithSlog(b.logger))
	if err != nil {
		return nil, err
	}

	mws := []store.Middleware{middleware.Recover(b.logger)}
	if b.config.Logging {
		mws = append(mws, middleware.Logging(b.logger))
	}
	if b.config.Tracing {
		mws = append(mws, middleware.Tracing())
	}
	if b.config.Metrics {
		mws = append(mws, middleware.Metrics())
	}
	mws = append(mws, b.mws...)
	mws = append(mws, resolver.Middleware())

	s, err := store.New(reducer, b.initial,
		store.WithMiddleware(mws...),
		store.WithLogger(b.logger),
		store.WithSubscriberBuffer(b.config.SubscriberBuffer),
	)
	if err != nil {
		return nil, err
	}

	return &Store{
		Store:    s,
		config:   b.config,
		logger:   b.logger,
		client:   client,
		resolver: resolver,
	}, nil
}

// Logger returns the store's logger.
func (s *Store) Logger() *slog.Logger { return s.logger }

// Config returns a copy of the store's configuration.
func (s *Store) Config() Config { return s.config }

// HTTPClient returns the client the resolver calls.
func (s *Store) HTTPClient() httpclient.Client { return s.client }

// Resolver returns the installed thunk resolver.
func (s *Store) Resolver() *thunk.Resolver { return s.resolver }

// WithConfig replaces the configuration.
func WithConfig(cfg Config) Option {
	return func(b *builder) error {
		b.config = cfg
		return nil
	}
}

// WithConfigFile loads the configuration from a YAML file.
func WithConfigFile(path string) Option {
	return func(b *builder) error {
		cfg, err := LoadConfig(path)
		if err != nil {
			return err
		}
		b.config = cfg
		return nil
	}
}

// WithLogger sets the structured logger used by every component.
func WithLogger(l *slog.Logger) Option {
	return func(b *builder) error {
		b.logger = l
		return nil
	}
}

// WithInitialState sets the state passed to the reducer's init call.
func WithInitialState(state any) Option {
	return func(b *builder) error {
		b.initial = state
		return nil
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c httpclient.Client) Option {
	return func(b *builder) error {
		if c == nil {
			return ErrNoHTTPClient
		}
		b.client = c
		return nil
	}
}

// WithErrorHandler sets the resolver's default error handler.
func WithErrorHandler(h thunk.ErrorHandler) Option {
	return func(b *builder) error {
		b.thunk.ErrorHandler = h
		return nil
	}
}

// WithTracker sets the resolver's telemetry capability.
func WithTracker(t thunk.Tracker) Option {
	return func(b *builder) error {
		b.thunk.Tracker = t
		return nil
	}
}

// WithThunkLogger sets the resolver's log capability.
func WithThunkLogger(l thunk.Logger) Option {
	return func(b *builder) error {
		b.thunk.Logger = l
		return nil
	}
}

// WithExtraArgument sets the value passed to every thunk.Func.
func WithExtraArgument(v any) Option {
	return func(b *builder) error {
		b.extra = v
		return nil
	}
}

// WithMiddleware adds middleware between the built-in middleware and the
// resolver.
func WithMiddleware(mws ...store.Middleware) Option {
	return func(b *builder) error {
		b.mws = append(b.mws, mws...)
		return nil
	}
}
