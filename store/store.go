package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/LyraHealth/auto-thunk/action"
)

// Compile-time interface check.
var _ API = (*Store)(nil)

// DefaultBufferSize is the default per-subscription change buffer.
const DefaultBufferSize = 64

// Store holds state and routes units through the middleware chain.
// Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	state   any
	reducer Reducer
	chain   Middleware
	mws     []Middleware
	logger  *slog.Logger

	// subs is guarded by mu; changes are delivered while mu is held so a
	// subscription never observes changes out of order or after close.
	subs       map[string]*Subscription
	bufferSize int
}

// Option configures a Store.
type Option func(*Store)

// WithMiddleware appends middleware to the store's chain.
func WithMiddleware(mws ...Middleware) Option {
	return func(s *Store) { s.mws = append(s.mws, mws...) }
}

// WithLogger sets the structured logger for the store.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithSubscriberBuffer sets the default buffer size for new subscriptions.
func WithSubscriberBuffer(n int) Option {
	return func(s *Store) { s.bufferSize = n }
}

// New creates a store. The reducer is called once with ActionInit to
// derive the initial state from initial.
func New(reducer Reducer, initial any, opts ...Option) (*Store, error) {
	if reducer == nil {
		return nil, ErrNilReducer
	}
	s := &Store{
		reducer:    reducer,
		logger:     slog.Default(),
		subs:       make(map[string]*Subscription),
		bufferSize: DefaultBufferSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.chain = Chain(s.mws...)
	s.state = reducer(initial, action.Action{Type: ActionInit})
	return s, nil
}

// GetState returns the current state.
func (s *Store) GetState() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch sends unit through the middleware chain. For actions that reach
// the reducer the result is the applied action; middleware may return
// anything else (a thunk returns its payload).
func (s *Store) Dispatch(ctx context.Context, unit any) (any, error) {
	return s.chain(ctx, s, unit, s.reduce)
}

// Result is the outcome of an asynchronous dispatch.
type Result struct {
	Value any
	Err   error
}

// DispatchAsync runs Dispatch on its own goroutine. The returned channel
// receives exactly one Result and is then closed.
func (s *Store) DispatchAsync(ctx context.Context, unit any) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		v, err := s.Dispatch(ctx, unit)
		ch <- Result{Value: v, Err: err}
	}()
	return ch
}

// reduce is the terminal stage of the chain.
func (s *Store) reduce(_ context.Context, unit any) (any, error) {
	a, err := toAction(unit)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.reducer(s.state, a)
	s.publish(Change{Action: a, State: s.state})
	return a, nil
}

func toAction(unit any) (action.Action, error) {
	switch u := unit.(type) {
	case action.Action:
		if u.Type == "" {
			return action.Action{}, fmt.Errorf("%w: %w", ErrInvalidAction, action.ErrMissingType)
		}
		return u, nil
	case *action.Action:
		if u == nil || u.Type == "" {
			return action.Action{}, fmt.Errorf("%w: %w", ErrInvalidAction, action.ErrMissingType)
		}
		return *u, nil
	case map[string]any:
		a, err := action.FromMap(u)
		if err != nil {
			return action.Action{}, fmt.Errorf("%w: %w", ErrInvalidAction, err)
		}
		return a, nil
	default:
		return action.Action{}, fmt.Errorf("%w: got %T", ErrInvalidAction, unit)
	}
}
