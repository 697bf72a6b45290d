// Package autothunk lets a reducer-based store accept declarative request
// descriptors alongside ordinary actions.
//
// A descriptor names a network call and the actions that follow it. The
// thunk resolver middleware executes the call through an injected HTTP
// client and dispatches the follow-up actions with the response payload.
// Failures go through a pluggable error handler and reach the caller of
// Dispatch as a single error value.
//
// # Quick Start
//
//	s, err := autothunk.New(reducer,
//	    autothunk.WithConfig(cfg),
//	    autothunk.WithLogger(logger),
//	)
//	foos, err := s.Dispatch(ctx, thunk.Descriptor{
//	    Action:  action.Name("ADD_FOOS"),
//	    Request: request.T("get", "/foos"),
//	})
//
// # Architecture
//
// The store, the resolver, the HTTP client and the cross-cutting
// middleware live in their own packages and can be assembled by hand.
// [New] wires them together from a [Config]: recovery first, then logging,
// tracing and metrics as configured, then caller middleware, then the
// resolver closest to the reducer.
//
// Thunk executions carry type-prefixed, K-sortable, UUIDv7-based
// identifiers on their context.
package autothunk

// Version is the module version.
const Version = "0.3.0"
