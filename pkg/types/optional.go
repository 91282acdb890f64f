package types

import (
	"bytes"
	"encoding/json"
	"errors"
)

var ErrNullNotAllowed = errors.New("value must not be null")

var nullLiteral = []byte("null")

// Optional tracks whether a non-nullable field was present in a JSON patch.
// An explicit null is rejected at decode time.
type Optional[T any] struct {
	Set   bool
	Value T
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}
	if bytes.Equal(trimmed, nullLiteral) {
		return ErrNullNotAllowed
	}
	var v T
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return err
	}
	o.Set = true
	o.Value = v
	return nil
}

// ApplyTo overwrites dst when the field was supplied.
func (o Optional[T]) ApplyTo(dst *T) {
	if o.Set {
		*dst = o.Value
	}
}

// ValidationValue exposes the wrapped value to the struct validator; nil when absent.
func (o Optional[T]) ValidationValue() any {
	if !o.Set {
		return nil
	}
	return o.Value
}

// Nullable tracks whether a nullable field was present in a JSON patch and
// whether it was explicitly cleared.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Null returns a Nullable that clears the field.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// Value returns a Nullable that sets the field to v.
func Value[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}
	n.Set = true
	if bytes.Equal(trimmed, nullLiteral) {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

// IsNull reports whether the patch explicitly clears the field.
func (n Nullable[T]) IsNull() bool {
	return n.Set && n.Value == nil
}

// ApplyTo overwrites dst when the field was supplied, including with null.
func (n Nullable[T]) ApplyTo(dst **T) {
	if !n.Set {
		return
	}
	if n.Value == nil {
		*dst = nil
		return
	}
	v := *n.Value
	*dst = &v
}

// ValidationValue exposes the wrapped value to the struct validator; nil when absent or null.
func (n Nullable[T]) ValidationValue() any {
	if !n.Set || n.Value == nil {
		return nil
	}
	return *n.Value
}
