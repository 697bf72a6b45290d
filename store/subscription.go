package store

import (
	"log/slog"
	"sync/atomic"

	"github.com/LyraHealth/auto-thunk/action"
	"github.com/LyraHealth/auto-thunk/id"
)

// Change is delivered to subscriptions after an action is applied.
type Change struct {
	Action action.Action
	State  any
}

// Subscription receives changes from a store.
type Subscription struct {
	id     id.SubscriptionID
	store  *Store
	ch     chan Change
	filter func(Change) bool

	delivered atomic.Int64
	dropped   atomic.Int64

	// closed is guarded by store.mu.
	closed bool
}

// SubscribeOption configures a Subscription.
type SubscribeOption func(*Subscription)

// WithFilter delivers only changes matching fn.
func WithFilter(fn func(Change) bool) SubscribeOption {
	return func(s *Subscription) { s.filter = fn }
}

// WithActionTypes delivers only changes caused by the given action types.
func WithActionTypes(types ...string) SubscribeOption {
	set := make(map[string]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return WithFilter(func(c Change) bool {
		_, ok := set[c.Action.Type]
		return ok
	})
}

// WithBuffer sets the subscription's buffer size.
func WithBuffer(n int) SubscribeOption {
	return func(s *Subscription) {
		if n >= 0 {
			s.ch = make(chan Change, n)
		}
	}
}

// Subscribe registers a new subscription.
func (s *Store) Subscribe(opts ...SubscribeOption) *Subscription {
	sub := &Subscription{
		id:    id.NewSubscriptionID(),
		store: s,
		ch:    make(chan Change, s.bufferSize),
	}
	for _, opt := range opts {
		opt(sub)
	}

	s.mu.Lock()
	s.subs[sub.id.String()] = sub
	s.mu.Unlock()
	return sub
}

// ID returns the subscription identifier.
func (sub *Subscription) ID() id.SubscriptionID { return sub.id }

// C returns the read-only change channel. It is closed by Close.
func (sub *Subscription) C() <-chan Change { return sub.ch }

// Delivered returns the number of changes sent to the channel.
func (sub *Subscription) Delivered() int64 { return sub.delivered.Load() }

// Dropped returns the number of changes dropped because the buffer was full.
func (sub *Subscription) Dropped() int64 { return sub.dropped.Load() }

// Close unregisters the subscription and closes its channel. Safe to call
// multiple times.
func (sub *Subscription) Close() {
	s := sub.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub.closed {
		return
	}
	sub.closed = true
	delete(s.subs, sub.id.String())
	close(sub.ch)
}

// Stats describes the store's subscriptions.
type Stats struct {
	Subscribers    int
	TotalDelivered int64
	TotalDropped   int64
}

// Stats returns subscription statistics.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Stats{Subscribers: len(s.subs)}
	for _, sub := range s.subs {
		st.TotalDelivered += sub.delivered.Load()
		st.TotalDropped += sub.dropped.Load()
	}
	return st
}

// publish fans c out to subscriptions. The caller holds s.mu.
func (s *Store) publish(c Change) {
	for _, sub := range s.subs {
		if sub.filter != nil && !sub.filter(c) {
			continue
		}
		select {
		case sub.ch <- c:
			sub.delivered.Add(1)
		default:
			sub.dropped.Add(1)
			s.logger.Debug("store change dropped",
				slog.String("subscription_id", sub.id.String()),
				slog.String("action_type", c.Action.Type),
			)
		}
	}
}
