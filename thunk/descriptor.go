package thunk

import (
	"bytes"
	"encoding/json"
	"maps"

	"github.com/LyraHealth/auto-thunk/action"
	"github.com/LyraHealth/auto-thunk/request"
)

// Descriptor declares a network call and the transitions that follow it.
type Descriptor struct {
	// Request is the call to make. Required.
	Request request.Source

	// Action is dispatched after a successful call, resolved against the
	// response payload. Nil dispatches nothing.
	Action action.Spec

	// BodyType set to request.BodyFormData re-encodes the body as a
	// multipart field-set.
	BodyType request.BodyType

	// Log, when set, is passed to the Logger with the response payload, or
	// with the server's error reply on failure.
	Log *Log

	// Track, when set, is sent to the Tracker.
	Track *Track

	// ErrorHandler overrides the resolver's handler for this descriptor.
	ErrorHandler ErrorHandler
}

// Log names a descriptor's log entry. A non-nil Data replaces the response
// payload on success.
type Log struct {
	Identifier string `json:"identifier"`
	Data       any    `json:"data,omitempty"`
}

// payload returns what is logged for a successful call returning data.
func (l *Log) payload(data any) any {
	if l.Data != nil {
		return l.Data
	}
	return data
}

// UnmarshalJSON accepts a bare identifier string or an
// {"identifier", "data"} object.
func (l *Log) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '"' {
		var ident string
		if err := json.Unmarshal(trimmed, &ident); err != nil {
			return err
		}
		*l = Log{Identifier: ident}
		return nil
	}
	type plain Log
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*l = Log(p)
	return nil
}

// Track names the telemetry events for a descriptor.
type Track struct {
	Success Event  `json:"success"`
	Failure *Event `json:"failure,omitempty"`
}

// Event is a telemetry event.
type Event struct {
	Name       string         `json:"name"`
	Properties map[string]any `json:"properties,omitempty"`
}

// With returns a copy of e with the property key set to v.
func (e Event) With(key string, v any) Event {
	props := make(map[string]any, len(e.Properties)+1)
	maps.Copy(props, e.Properties)
	props[key] = v
	e.Properties = props
	return e
}

type descriptorJSON struct {
	Request  json.RawMessage  `json:"request"`
	Action   json.RawMessage  `json:"action,omitempty"`
	BodyType request.BodyType `json:"bodyType,omitempty"`
	Log      *Log             `json:"log,omitempty"`
	Track    *Track           `json:"track,omitempty"`
}

// UnmarshalJSON decodes the declarative form. "request" may be a
// [method, url, body] array or an object; "action" may be a string, an
// object, or an array of either.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	var raw descriptorJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	src, err := request.ParseSource(raw.Request)
	if err != nil {
		return err
	}
	spec, err := action.ParseSpec(raw.Action)
	if err != nil {
		return err
	}

	*d = Descriptor{
		Request:  src,
		Action:   spec,
		BodyType: raw.BodyType,
		Log:      raw.Log,
		Track:    raw.Track,
	}
	return nil
}

// ParseDescriptor decodes a JSON descriptor.
func ParseDescriptor(data []byte) (*Descriptor, error) {
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, invalidDescriptor(err)
	}
	return &d, nil
}
