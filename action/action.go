// Package action defines the transition records consumed by reducers and the
// specs describing which transitions follow a completed request.
//
// An [Action] is the only unit the store applies to state. Its Type is the
// discriminant reducers switch on; Data carries the payload. Any other
// caller-supplied fields travel in Meta and are flattened next to "type" and
// "data" when the action is encoded.
package action

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingType is returned when a record has no usable "type" discriminant.
var ErrMissingType = errors.New("action: missing type")

// Reserved keys of the flattened record form.
const (
	KeyType = "type"
	KeyData = "data"
)

// Action is a discriminated state transition.
type Action struct {
	// Type is the discriminant reducers match on.
	Type string

	// Data is the transition payload. A nil Data on a spec is filled with the
	// response payload when the spec is resolved.
	Data any

	// Meta holds any other caller-supplied fields.
	Meta map[string]any
}

// New returns an action with the given type and payload.
func New(typ string, data any) Action {
	return Action{Type: typ, Data: data}
}

// Field returns a Meta field by key.
func (a Action) Field(key string) (any, bool) {
	v, ok := a.Meta[key]
	return v, ok
}

// With returns a copy of a with the Meta field key set to v.
func (a Action) With(key string, v any) Action {
	meta := make(map[string]any, len(a.Meta)+1)
	for k, mv := range a.Meta {
		meta[k] = mv
	}
	meta[key] = v
	a.Meta = meta
	return a
}

// Map returns the flattened record form of the action.
func (a Action) Map() map[string]any {
	m := make(map[string]any, len(a.Meta)+2)
	for k, v := range a.Meta {
		m[k] = v
	}
	m[KeyType] = a.Type
	if a.Data != nil {
		m[KeyData] = a.Data
	}
	return m
}

// FromMap builds an action from its flattened record form. The map must carry
// a non-empty string under "type".
func FromMap(m map[string]any) (Action, error) {
	raw, ok := m[KeyType]
	if !ok {
		return Action{}, ErrMissingType
	}
	typ, ok := raw.(string)
	if !ok || typ == "" {
		return Action{}, fmt.Errorf("%w: got %T", ErrMissingType, raw)
	}

	a := Action{Type: typ, Data: m[KeyData]}
	for k, v := range m {
		if k == KeyType || k == KeyData {
			continue
		}
		if a.Meta == nil {
			a.Meta = make(map[string]any, len(m)-1)
		}
		a.Meta[k] = v
	}
	return a, nil
}

// MarshalJSON encodes the flattened record form.
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Map())
}

// UnmarshalJSON decodes the flattened record form.
func (a *Action) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	parsed, err := FromMap(m)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// String returns the action type.
func (a Action) String() string { return a.Type }
