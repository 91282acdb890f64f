package types

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNullableUnmarshal(t *testing.T) {
	type payload struct {
		Block Nullable[string] `json:"block"`
	}

	var got payload
	if err := json.Unmarshal([]byte(`{"block": "A"}`), &got); err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	if !got.Block.Set || got.Block.Value == nil || *got.Block.Value != "A" {
		t.Fatalf("expected block A, got %+v", got.Block)
	}

	got = payload{}
	if err := json.Unmarshal([]byte(`{"block": null}`), &got); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !got.Block.IsNull() {
		t.Fatalf("expected explicit null, got %+v", got.Block)
	}

	got = payload{}
	if err := json.Unmarshal([]byte(`{}`), &got); err != nil {
		t.Fatalf("unmarshal missing: %v", err)
	}
	if got.Block.Set {
		t.Fatalf("expected unset for missing field, got %+v", got.Block)
	}
}

func TestOptionalRejectsNull(t *testing.T) {
	type payload struct {
		Name Optional[string] `json:"name"`
	}

	var got payload
	err := json.Unmarshal([]byte(`{"name": null}`), &got)
	if !errors.Is(err, ErrNullNotAllowed) {
		t.Fatalf("expected ErrNullNotAllowed, got %v", err)
	}

	got = payload{}
	if err := json.Unmarshal([]byte(`{"name": "Kayseri Plaza"}`), &got); err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	if !got.Name.Set || got.Name.Value != "Kayseri Plaza" {
		t.Fatalf("unexpected optional %+v", got.Name)
	}
}

func TestApplyToOnlyTouchesSuppliedFields(t *testing.T) {
	name := "old"
	Optional[string]{}.ApplyTo(&name)
	if name != "old" {
		t.Fatalf("unset optional must not overwrite, got %q", name)
	}
	Some("new").ApplyTo(&name)
	if name != "new" {
		t.Fatalf("expected new, got %q", name)
	}

	block := "B"
	ptr := &block
	Nullable[string]{}.ApplyTo(&ptr)
	if ptr == nil || *ptr != "B" {
		t.Fatalf("unset nullable must not overwrite")
	}
	Value("C").ApplyTo(&ptr)
	if ptr == nil || *ptr != "C" {
		t.Fatalf("expected C, got %v", ptr)
	}
	if block != "B" {
		t.Fatalf("apply must not write through the previous pointer")
	}
	Null[string]().ApplyTo(&ptr)
	if ptr != nil {
		t.Fatalf("expected nil after null patch")
	}
}

func TestValidationValue(t *testing.T) {
	if v := (Optional[int]{}).ValidationValue(); v != nil {
		t.Fatalf("expected nil for unset optional, got %v", v)
	}
	if v := Some(3).ValidationValue(); v != 3 {
		t.Fatalf("expected 3, got %v", v)
	}
	if v := Null[string]().ValidationValue(); v != nil {
		t.Fatalf("expected nil for null, got %v", v)
	}
	if v := Value("x").ValidationValue(); v != "x" {
		t.Fatalf("expected x, got %v", v)
	}
}
