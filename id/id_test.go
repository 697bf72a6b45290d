package id_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/LyraHealth/auto-thunk/id"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		newFn  func() id.ID
		prefix string
	}{
		{"ThunkID", id.NewThunkID, "thunk_"},
		{"SubscriptionID", id.NewSubscriptionID, "sub_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.newFn().String()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
			if len(got) != len(tt.prefix)+26 {
				t.Errorf("expected 26-character suffix, got %q", got)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	original := id.NewThunkID()
	parsed, err := id.ParseThunkID(original.String())
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed.String() != original.String() {
		t.Errorf("round-trip mismatch: %q != %q", parsed.String(), original.String())
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"bad prefix", "Thunk_01h2xcejqtf2nbrexx3vqjhp41"},
		{"short suffix", "thunk_01h2xcejq"},
		{"bad suffix", "thunk_01h2xcejqtf2nbrexx3vqjhpu!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := id.Parse(tt.input); err == nil {
				t.Errorf("expected error for %q", tt.input)
			}
		})
	}
}

func TestCrossTypeRejection(t *testing.T) {
	sub := id.NewSubscriptionID()
	if _, err := id.ParseThunkID(sub.String()); err == nil {
		t.Fatal("expected prefix mismatch error")
	}
}

func TestSortable(t *testing.T) {
	a := id.NewThunkID()
	time.Sleep(2 * time.Millisecond)
	b := id.NewThunkID()
	if a.String() >= b.String() {
		t.Errorf("expected %q < %q", a, b)
	}
}

func TestParse_AcceptsCanonical(t *testing.T) {
	const s = "thunk_01h2xcejqtf2nbrexx3vqjhp41"
	parsed, err := id.ParseThunkID(s)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed.String() != s || parsed.Prefix() != id.PrefixThunk {
		t.Errorf("got %q prefix %q", parsed, parsed.Prefix())
	}
}

func TestNil(t *testing.T) {
	if !id.Nil.IsNil() {
		t.Fatal("Nil.IsNil() = false")
	}
	if id.Nil.String() != "" {
		t.Errorf("Nil.String() = %q, want empty", id.Nil.String())
	}
}

func TestTextMarshaling(t *testing.T) {
	type wrapper struct {
		ID id.ID `json:"id"`
	}
	in := wrapper{ID: id.NewThunkID()}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out wrapper
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.ID.String() != in.ID.String() {
		t.Errorf("got %q, want %q", out.ID, in.ID)
	}
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	if _, ok := id.FromContext(ctx); ok {
		t.Fatal("expected no ID in empty context")
	}
	want := id.NewThunkID()
	got, ok := id.FromContext(id.NewContext(ctx, want))
	if !ok || got.String() != want.String() {
		t.Errorf("FromContext = %q, %v", got, ok)
	}
}
