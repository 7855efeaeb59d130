package dto

import (
	"bytes"
	"encoding/json"
)

// Nullable distinguishes an absent JSON field from an explicit null, which
// a plain pointer cannot. Update requests use it for optional links that a
// client may clear.
type Nullable[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// UnmarshalJSON is only called when the field is present.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// IsNull reports whether the client sent an explicit null.
func (n Nullable[T]) IsNull() bool {
	return n.Set && !n.Valid
}

// Ptr returns the value when one was sent.
func (n Nullable[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// validationValue exposes the wrapped value to the validator, nil when
// absent or null so that omitempty rules skip it.
func (n Nullable[T]) validationValue() interface{} {
	if !n.Valid {
		return nil
	}
	return n.Value
}
