package thunk_test

import (
	"context"
	"fmt"

	"github.com/LyraHealth/auto-thunk/action"
	"github.com/LyraHealth/auto-thunk/httpclient"
	"github.com/LyraHealth/auto-thunk/request"
	"github.com/LyraHealth/auto-thunk/store"
	"github.com/LyraHealth/auto-thunk/thunk"
)

func Example() {
	client := httpclient.ClientFunc(func(_ context.Context, r *request.Request) (*httpclient.Response, error) {
		if r.URL == "/missing" {
			return nil, httpclient.NewStatusError(r.Method, r.URL, 404, "", nil)
		}
		return &httpclient.Response{Status: 200, Data: []string{"foo1", "foo2"}}, nil
	})

	foos := func(state any, a action.Action) any {
		if a.Type == "ADD_FOOS" {
			return a.Data
		}
		return state
	}

	s, _ := store.New(foos, nil, store.WithMiddleware(
		thunk.Middleware(thunk.Config{HTTPClient: client}),
	))

	ctx := context.Background()
	_, _ = s.Dispatch(ctx, thunk.Descriptor{
		Action:  action.Name("ADD_FOOS"),
		Request: request.T("get", "/foos"),
	})
	fmt.Println(s.GetState())

	_, err := s.Dispatch(ctx, thunk.Descriptor{Request: request.T("get", "/missing")})
	fmt.Println(err)

	// Output:
	// [foo1 foo2]
	// Nothing found for the requested service
}
