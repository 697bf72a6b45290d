package thunk_test

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/LyraHealth/auto-thunk/action"
	"github.com/LyraHealth/auto-thunk/httpclient"
	"github.com/LyraHealth/auto-thunk/request"
	"github.com/LyraHealth/auto-thunk/store"
	"github.com/LyraHealth/auto-thunk/thunk"
)

// dispatchDescriptor runs d against a fresh store backed by client and
// returns the transitions applied.
func dispatchDescriptor(client httpclient.Client, d thunk.Descriptor, cfg thunk.Config) ([]action.Action, any, error) {
	cfg.HTTPClient = client
	r, err := thunk.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	rec := &recorder{}
	s, err := store.New(rec.reduce, nil, store.WithMiddleware(r.Middleware()))
	if err != nil {
		return nil, nil, err
	}
	v, err := s.Dispatch(context.Background(), d)
	return rec.actions, v, err
}

func TestProperties_Resolution(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("bare name dispatches exactly one transition with the payload", prop.ForAll(
		func(name string, payload string) bool {
			got, v, err := dispatchDescriptor(respondWith(payload), thunk.Descriptor{
				Request: request.T("get", "/x"),
				Action:  action.Name(name),
			}, thunk.Config{})
			return err == nil && v == payload &&
				len(got) == 1 && got[0].Type == name && got[0].Data == payload
		},
		gen.Identifier(),
		gen.AlphaString(),
	))

	properties.Property("list dispatches in order, filling only absent data", prop.ForAll(
		func(names []string, explicit []bool) bool {
			list := make(action.List, 0, len(names))
			for i, name := range names {
				a := action.Action{Type: name}
				if i < len(explicit) && explicit[i] {
					a.Data = "explicit"
				}
				list = append(list, a)
			}

			got, _, err := dispatchDescriptor(respondWith("payload"), thunk.Descriptor{
				Request: request.T("get", "/x"),
				Action:  list,
			}, thunk.Config{})
			if err != nil || len(got) != len(names) {
				return false
			}
			for i, a := range got {
				want := "payload"
				if i < len(explicit) && explicit[i] {
					want = "explicit"
				}
				if a.Type != names[i] || a.Data != want {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Identifier()),
		gen.SliceOf(gen.Bool()),
	))

	properties.Property("no action dispatches nothing and returns the payload", prop.ForAll(
		func(payload int) bool {
			got, v, err := dispatchDescriptor(respondWith(payload), thunk.Descriptor{
				Request: request.T("get", "/x"),
			}, thunk.Config{})
			return err == nil && len(got) == 0 && v == payload
		},
		gen.Int(),
	))

	properties.Property("failing calls invoke the handler once and reject", prop.ForAll(
		func(status int, override bool) bool {
			var configured, perDescriptor int
			handler := func(context.Context, error, store.DispatchFunc, action.Spec) error {
				configured++
				return nil
			}
			d := thunk.Descriptor{Request: request.T("get", "/x"), Action: action.Name("NEVER")}
			if override {
				d.ErrorHandler = func(context.Context, error, store.DispatchFunc, action.Spec) error {
					perDescriptor++
					return nil
				}
			}

			got, _, err := dispatchDescriptor(
				failWith(httpclient.NewStatusError("GET", "/x", status, "", nil)),
				d,
				thunk.Config{ErrorHandler: handler},
			)
			if err == nil || len(got) != 0 {
				return false
			}
			if override {
				return configured == 0 && perDescriptor == 1
			}
			return configured == 1 && perDescriptor == 0
		},
		gen.IntRange(400, 599),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestProperties_TransitionPassThrough(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("transitions are applied once and unchanged", prop.ForAll(
		func(typ string, data string) bool {
			got, _, err := func() ([]action.Action, any, error) {
				r, err := thunk.New(thunk.Config{HTTPClient: respondWith(nil)})
				if err != nil {
					return nil, nil, err
				}
				rec := &recorder{}
				s, err := store.New(rec.reduce, nil, store.WithMiddleware(r.Middleware()))
				if err != nil {
					return nil, nil, err
				}
				v, err := s.Dispatch(context.Background(), action.New(typ, data))
				return rec.actions, v, err
			}()
			return err == nil && len(got) == 1 && got[0].Type == typ && got[0].Data == data
		},
		gen.Identifier(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
