package store

import "context"

// DispatchFunc submits a unit of work and returns its result.
type DispatchFunc func(ctx context.Context, unit any) (any, error)

// API is what a middleware sees of the store.
type API interface {
	// Dispatch sends a unit through the full middleware chain.
	Dispatch(ctx context.Context, unit any) (any, error)

	// GetState returns the current state.
	GetState() any
}

// Middleware intercepts a unit on its way to the reducer. It receives the
// store API, the unit, and the next stage. Middleware MUST call next to
// continue the chain unless it handles the unit itself.
type Middleware func(ctx context.Context, api API, unit any, next DispatchFunc) (any, error)

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the
// list is the outermost wrapper.
//
// Example: Chain(logging, recover, thunks) executes as:
//
//	logging → recover → thunks → reducer
func Chain(mws ...Middleware) Middleware {
	return func(ctx context.Context, api API, unit any, next DispatchFunc) (any, error) {
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context, unit any) (any, error) {
				return mw(ctx, api, unit, prev)
			}
		}
		return h(ctx, unit)
	}
}
