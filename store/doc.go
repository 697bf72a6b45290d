// Package store is a reducer-based state container with a dispatch
// middleware pipeline.
//
// Every unit of work enters through [Store.Dispatch] and passes through the
// configured [Middleware] chain before reaching the terminal stage, which
// applies [action.Action] values to state with the store's [Reducer]. Units
// that are not actions must be handled by a middleware (the thunk resolver,
// for example); if one reaches the reducer, Dispatch returns
// [ErrInvalidAction].
//
//	s, err := store.New(
//	    store.CombineReducers(map[string]store.Reducer{"foos": foos}),
//	    nil,
//	    store.WithMiddleware(resolver.Middleware()),
//	)
//	v, err := s.Dispatch(ctx, action.New("ADD_FOO", foo))
//
// # Middleware
//
// Middleware are applied right-to-left: the first middleware in the slice is
// the outermost wrapper. The [API] a middleware receives dispatches through
// the whole chain again, so units produced by a middleware are seen by every
// stage.
//
// # Subscriptions
//
// [Store.Subscribe] returns a buffered feed of [Change] values. Delivery is
// non-blocking: when a subscriber's buffer is full the change is dropped and
// counted rather than stalling dispatch.
package store
