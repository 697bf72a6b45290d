package action

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Spec describes the transitions dispatched after a request succeeds.
// It is implemented by [Name], [Action], *[Action] and [List] only.
type Spec interface {
	resolve(payload any) []Action
}

// Name is a bare discriminant. It resolves to {Type: name, Data: payload}.
type Name string

func (n Name) resolve(payload any) []Action {
	if n == "" {
		return nil
	}
	return []Action{{Type: string(n), Data: payload}}
}

// A full record keeps an explicit Data and receives the payload otherwise.
func (a Action) resolve(payload any) []Action {
	if a.Data == nil {
		a.Data = payload
	}
	return []Action{a}
}

// List is an ordered sequence of specs. Its transitions are dispatched in
// list order.
type List []Spec

func (l List) resolve(payload any) []Action {
	out := make([]Action, 0, len(l))
	for _, s := range l {
		out = append(out, Resolve(s, payload)...)
	}
	return out
}

// Resolve expands spec into the concrete transitions to dispatch, filling
// absent Data fields with payload. A nil spec yields no transitions.
func Resolve(spec Spec, payload any) []Action {
	if spec == nil {
		return nil
	}
	if p, ok := spec.(*Action); ok && p == nil {
		return nil
	}
	return spec.resolve(payload)
}

// IsEmpty reports whether spec describes no transitions at all.
func IsEmpty(spec Spec) bool {
	switch s := spec.(type) {
	case nil:
		return true
	case Name:
		return s == ""
	case *Action:
		return s == nil
	case List:
		for _, e := range s {
			if !IsEmpty(e) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ParseSpec decodes a JSON spec: a string, an action record, an array of
// either, or null.
func ParseSpec(data []byte) (Spec, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	switch data[0] {
	case '"':
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return nil, err
		}
		return Name(name), nil
	case '{':
		var a Action
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, err
		}
		return a, nil
	case '[':
		var raws []json.RawMessage
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, err
		}
		list := make(List, 0, len(raws))
		for i, raw := range raws {
			s, err := ParseSpec(raw)
			if err != nil {
				return nil, fmt.Errorf("action: spec[%d]: %w", i, err)
			}
			if s != nil {
				list = append(list, s)
			}
		}
		return list, nil
	default:
		return nil, fmt.Errorf("action: unsupported spec %s", data)
	}
}
