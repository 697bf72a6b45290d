// Package request defines the canonical shape of a deferred network call and
// the shorthand forms it can be written in.
//
// A descriptor's request is any [Source]. The canonical form is [Request];
// [Triple] is the positional [method, url, body] sugar. [Prepare] turns a
// source into a fresh canonical request and applies the body encoding the
// descriptor asks for.
package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidTriple is returned when a positional request is malformed.
	ErrInvalidTriple = errors.New("request: invalid [method, url, body] triple")

	// ErrMissingURL is returned when a request has no URL.
	ErrMissingURL = errors.New("request: missing url")

	// ErrNoSource is returned when a descriptor carries no request at all.
	ErrNoSource = errors.New("request: no request source")
)

// Source is anything that can be normalized into a canonical [Request].
type Source interface {
	Normalize() (*Request, error)
}

// Compile-time interface checks.
var (
	_ Source = Triple(nil)
	_ Source = Request{}
	_ Source = (*Request)(nil)
)

// Request is the canonical request descriptor handed to the HTTP client.
type Request struct {
	Method  string            `json:"method"`
	URL     string            `json:"url"`
	Data    any               `json:"data,omitempty"`
	Params  map[string]any    `json:"params,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
}

// Normalize returns a copy of r. The copy's maps and any *FormData body are
// cloned so later body encoding never touches the caller's value.
func (r Request) Normalize() (*Request, error) {
	if r.URL == "" {
		return nil, ErrMissingURL
	}
	out := r
	if r.Params != nil {
		out.Params = make(map[string]any, len(r.Params))
		for k, v := range r.Params {
			out.Params[k] = v
		}
	}
	if r.Headers != nil {
		out.Headers = make(map[string]string, len(r.Headers))
		for k, v := range r.Headers {
			out.Headers[k] = v
		}
	}
	if form, ok := r.Data.(*FormData); ok {
		out.Data = form.Clone()
	}
	return &out, nil
}

// Triple is the positional form [method, url] or [method, url, body].
type Triple []any

// T builds a Triple.
func T(method, url string, body ...any) Triple {
	t := Triple{method, url}
	if len(body) > 0 {
		t = append(t, body[0])
	}
	return t
}

// Normalize maps the positions onto {Method, URL, Data}.
func (t Triple) Normalize() (*Request, error) {
	if len(t) < 2 || len(t) > 3 {
		return nil, fmt.Errorf("%w: want 2 or 3 items, got %d", ErrInvalidTriple, len(t))
	}
	method, ok := t[0].(string)
	if !ok {
		return nil, fmt.Errorf("%w: method is %T", ErrInvalidTriple, t[0])
	}
	url, ok := t[1].(string)
	if !ok {
		return nil, fmt.Errorf("%w: url is %T", ErrInvalidTriple, t[1])
	}
	if url == "" {
		return nil, ErrMissingURL
	}

	r := &Request{Method: method, URL: url}
	if len(t) == 3 {
		r.Data = t[2]
	}
	return r, nil
}

// ParseSource decodes a JSON request written either as an array triple or
// as an object.
func ParseSource(data []byte) (Source, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, ErrNoSource
	}

	switch data[0] {
	case '[':
		var t Triple
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, err
		}
		return t, nil
	case '{':
		var r Request
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("request: unsupported request %s", data)
	}
}

// BodyType selects how a request body is encoded.
type BodyType string

const (
	// BodyDefault leaves the body to the client's codec.
	BodyDefault BodyType = ""

	// BodyFormData re-encodes the body as a multipart field-set.
	BodyFormData BodyType = "formData"
)

// Prepare normalizes src and, when bodyType is BodyFormData and a body is
// present, replaces the body with its [FormData] field-set.
func Prepare(src Source, bodyType BodyType) (*Request, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	if r, ok := src.(*Request); ok && r == nil {
		return nil, ErrNoSource
	}

	r, err := src.Normalize()
	if err != nil {
		return nil, err
	}

	if bodyType == BodyFormData && r.Data != nil {
		form, err := EncodeForm(r.Data)
		if err != nil {
			return nil, err
		}
		r.Data = form
	}
	return r, nil
}
