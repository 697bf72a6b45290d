package action_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/LyraHealth/auto-thunk/action"
)

func TestFromMap(t *testing.T) {
	a, err := action.FromMap(map[string]any{
		"type":    "SET_VERSION",
		"data":    "v2",
		"version": 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Type != "SET_VERSION" {
		t.Errorf("Type = %q, want %q", a.Type, "SET_VERSION")
	}
	if a.Data != "v2" {
		t.Errorf("Data = %v, want v2", a.Data)
	}
	if v, ok := a.Field("version"); !ok || v != 3 {
		t.Errorf("Field(version) = %v, %v", v, ok)
	}
}

func TestFromMap_MissingType(t *testing.T) {
	tests := []struct {
		name string
		m    map[string]any
	}{
		{"absent", map[string]any{"data": 1}},
		{"empty", map[string]any{"type": ""}},
		{"not a string", map[string]any{"type": 42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := action.FromMap(tt.m)
			if !errors.Is(err, action.ErrMissingType) {
				t.Fatalf("expected ErrMissingType, got %v", err)
			}
		})
	}
}

func TestJSON_FlattensMeta(t *testing.T) {
	a := action.New("UPDATE_FOO_COLOR", map[string]any{"color": "red"}).With("version", "v2")

	b, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal map: %v", err)
	}
	want := map[string]any{
		"type":    "UPDATE_FOO_COLOR",
		"data":    map[string]any{"color": "red"},
		"version": "v2",
	}
	if !reflect.DeepEqual(m, want) {
		t.Fatalf("encoded = %v, want %v", m, want)
	}

	var back action.Action
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal action: %v", err)
	}
	if back.Type != a.Type {
		t.Errorf("Type = %q, want %q", back.Type, a.Type)
	}
	if v, _ := back.Field("version"); v != "v2" {
		t.Errorf("version = %v, want v2", v)
	}
}

func TestWith_DoesNotMutateOriginal(t *testing.T) {
	a := action.New("X", nil).With("k", 1)
	b := a.With("k", 2)

	if v, _ := a.Field("k"); v != 1 {
		t.Errorf("original mutated: k = %v", v)
	}
	if v, _ := b.Field("k"); v != 2 {
		t.Errorf("copy k = %v, want 2", v)
	}
}
