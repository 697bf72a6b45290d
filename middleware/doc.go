// Package middleware provides store middleware for cross-cutting concerns.
//
// Each constructor returns a [store.Middleware]. Install them with
// [store.WithMiddleware]; the first middleware listed is the outermost
// wrapper, so a resolver placed after these sees units already inside their
// span and recovery scope:
//
//	s, err := store.New(reducer, nil, store.WithMiddleware(
//		middleware.Recover(logger),
//		middleware.Logging(logger),
//		middleware.Tracing(),
//		middleware.Metrics(),
//		thunk.Middleware(cfg),
//	))
//
// # Built-in Middleware
//
//   - [Logging] logs the unit kind, action type, duration and outcome
//   - [Recover] catches panics and converts them to errors
//   - [Tracing] wraps dispatch in an OpenTelemetry span
//   - [Metrics] records per-dispatch duration and outcome counters
//
// # Writing Custom Middleware
//
//	func MyMiddleware() store.Middleware {
//	    return func(ctx context.Context, api store.API, unit any, next store.DispatchFunc) (any, error) {
//	        // pre-processing
//	        v, err := next(ctx, unit)
//	        // post-processing
//	        return v, err
//	    }
//	}
//
// Middleware MUST call next to continue the chain unless intentionally
// short-circuiting.
package middleware
