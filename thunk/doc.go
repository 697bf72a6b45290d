// Package thunk is the resolver that sits between Dispatch and the reducer.
//
// Every unit submitted to a store is classified into one of three kinds:
//
//   - [KindFunc]: an executable [Func], invoked with the store's dispatch,
//     getState and the resolver's extra argument.
//   - [KindTransition]: an action record, forwarded unchanged.
//   - [KindDescriptor]: a [Descriptor] naming a network call and the
//     transitions that follow it. The resolver synthesizes a Func from it
//     with [Resolver.BuildThunk] and invokes that.
//
// Descriptors can be written as Go values or decoded from JSON:
//
//	{"action": "ADD_FOOS", "request": ["get", "/foos"]}
//	{"action": [{"type": "SET_X", "version": "v2"}, {"type": "UPDATE_Y", "data": {"color": "red"}}],
//	 "request": {"method": "put", "url": "/foos/5", "data": {"color": "red"}}}
//
// When the call succeeds, the descriptor's action spec is resolved against
// the response payload and dispatched in order, and the payload is returned
// to the caller of Dispatch. When it fails, the error handler runs exactly
// once and the caller receives a *[Failure] carrying both the original error
// and the handler's signal.
//
// Typical wiring:
//
//	client, _ := httpclient.New(httpclient.Config{BaseURL: "https://api.example.com"})
//	s, err := store.New(reducer, nil, store.WithMiddleware(
//		thunk.Middleware(thunk.Config{HTTPClient: client}),
//	))
//	data, err := s.Dispatch(ctx, thunk.Descriptor{
//		Request: request.T("get", "/foos"),
//		Action:  action.Name("ADD_FOOS"),
//	})
package thunk
