package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"sort"
	"strconv"
)

// ErrFormBody is returned when a body has no key/value mapping to encode.
var ErrFormBody = errors.New("request: form body must be a key/value mapping")

// Field is a single form field.
type Field struct {
	Name  string
	Value string
}

// FormData is a multipart/form-data field-set.
type FormData struct {
	Fields []Field
}

// Append adds a field.
func (f *FormData) Append(name, value string) {
	f.Fields = append(f.Fields, Field{Name: name, Value: value})
}

// Get returns the first value stored under name.
func (f *FormData) Get(name string) (string, bool) {
	for _, fld := range f.Fields {
		if fld.Name == name {
			return fld.Value, true
		}
	}
	return "", false
}

// Clone returns a copy of f whose fields can be changed independently.
func (f *FormData) Clone() *FormData {
	if f == nil {
		return nil
	}
	return &FormData{Fields: append([]Field(nil), f.Fields...)}
}

// Len returns the number of fields.
func (f *FormData) Len() int { return len(f.Fields) }

// Encode writes the field-set as a multipart body and returns the matching
// Content-Type header value.
func (f *FormData) Encode(w io.Writer) (string, error) {
	mw := multipart.NewWriter(w)
	for _, fld := range f.Fields {
		if err := mw.WriteField(fld.Name, fld.Value); err != nil {
			return "", fmt.Errorf("request: write form field %q: %w", fld.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", err
	}
	return mw.FormDataContentType(), nil
}

// EncodeForm builds a field-set from the entries of body. Entries whose value
// is nil are skipped; object values are stored as their JSON text. Fields
// are appended in key order.
func EncodeForm(body any) (*FormData, error) {
	switch b := body.(type) {
	case *FormData:
		return b.Clone(), nil
	case FormData:
		return b.Clone(), nil
	}

	entries, err := entriesOf(body)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	form := &FormData{Fields: make([]Field, 0, len(keys))}
	for _, k := range keys {
		v := entries[k]
		if isNil(v) {
			continue
		}
		s, err := fieldText(v)
		if err != nil {
			return nil, fmt.Errorf("request: form field %q: %w", k, err)
		}
		form.Append(k, s)
	}
	return form, nil
}

// entriesOf returns the key/value mapping of body. Maps with string keys are
// read directly; anything else goes through its JSON object form.
func entriesOf(body any) (map[string]any, error) {
	switch b := body.(type) {
	case map[string]any:
		return b, nil
	case map[string]string:
		m := make(map[string]any, len(b))
		for k, v := range b {
			m[k] = v
		}
		return m, nil
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormBody, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: got %T", ErrFormBody, body)
	}
	return m, nil
}

func fieldText(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case bool:
		return strconv.FormatBool(x), nil
	case json.Number:
		return x.String(), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(x), nil
	case fmt.Stringer:
		return x.String(), nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
