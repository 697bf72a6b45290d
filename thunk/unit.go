package thunk

import (
	"context"
	"encoding/json"

	"github.com/LyraHealth/auto-thunk/action"
	"github.com/LyraHealth/auto-thunk/request"
	"github.com/LyraHealth/auto-thunk/store"
)

// Func is an executable unit. dispatch re-enters the full middleware chain;
// extra is the resolver's extra argument.
type Func func(ctx context.Context, dispatch store.DispatchFunc, getState func() any, extra any) (any, error)

// Kind tags the interpretation of a unit of work.
type Kind int

const (
	// KindNone is a nil unit. It is ignored.
	KindNone Kind = iota
	// KindFunc is an executable Func.
	KindFunc
	// KindTransition is an action record.
	KindTransition
	// KindDescriptor is a request descriptor.
	KindDescriptor
	// KindUnknown is anything else. It is forwarded unchanged.
	KindUnknown
)

var kindNames = [...]string{"none", "func", "transition", "descriptor", "unknown"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Unit is a classified unit of work. Exactly one of Func, Transition and
// Descriptor is meaningful, selected by Kind. Raw is the original value.
type Unit struct {
	Kind       Kind
	Func       Func
	Transition action.Action
	Descriptor *Descriptor
	Raw        any

	// Err is set when Raw looked like a descriptor but could not be decoded.
	Err error
}

// Classify tags v. Functions are checked first, then the "type"
// discriminant, then the descriptor shapes.
func Classify(v any) Unit {
	u := Unit{Raw: v}

	switch t := v.(type) {
	case nil:
		u.Kind = KindNone
		return u
	case Func:
		if t == nil {
			return u
		}
		u.Kind, u.Func = KindFunc, t
		return u
	case func(context.Context, store.DispatchFunc, func() any, any) (any, error):
		if t == nil {
			return u
		}
		u.Kind, u.Func = KindFunc, Func(t)
		return u
	}

	if a, ok := transitionOf(v); ok {
		u.Kind, u.Transition = KindTransition, a
		return u
	}

	switch t := v.(type) {
	case Descriptor:
		u.Kind, u.Descriptor = KindDescriptor, &t
	case *Descriptor:
		if t == nil {
			return u
		}
		u.Kind, u.Descriptor = KindDescriptor, t
	case request.Triple:
		u.Kind, u.Descriptor = KindDescriptor, &Descriptor{Request: t}
	case []any:
		u.Kind, u.Descriptor = KindDescriptor, &Descriptor{Request: request.Triple(t)}
	case request.Request:
		u.Kind, u.Descriptor = KindDescriptor, &Descriptor{Request: t}
	case *request.Request:
		if t == nil {
			return u
		}
		u.Kind, u.Descriptor = KindDescriptor, &Descriptor{Request: t}
	case map[string]any:
		if src, ok := t["request"]; !ok || src == nil {
			u.Kind = KindUnknown
			return u
		}
		u.Kind = KindDescriptor
		d, err := descriptorFromMap(t)
		if err != nil {
			u.Err = invalidDescriptor(err)
			return u
		}
		u.Descriptor = d
	default:
		u.Kind = KindUnknown
	}
	return u
}

// transitionOf reports whether v carries a "type" discriminant. A map whose
// "type" is unusable is still a transition; the store decides what to do
// with it.
func transitionOf(v any) (action.Action, bool) {
	switch t := v.(type) {
	case action.Action:
		return t, t.Type != ""
	case *action.Action:
		if t == nil || t.Type == "" {
			return action.Action{}, false
		}
		return *t, true
	case map[string]any:
		if _, ok := t[action.KeyType]; !ok {
			return action.Action{}, false
		}
		a, _ := action.FromMap(t)
		return a, true
	}
	return action.Action{}, false
}

func descriptorFromMap(m map[string]any) (*Descriptor, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var d Descriptor
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
