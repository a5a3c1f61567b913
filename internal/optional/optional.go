// Package optional provides type safe optional variables.
package optional

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

// Numeric is a constraint for all integer and float types.
type Numeric interface {
	constraints.Integer | constraints.Float
}

var ErrIsEmpty = errors.New("optional is empty")

// Optional represents a variable that may contain a value or not.
//
// Note that the zero value of an Optional is an empty Optional.
type Optional[T any] struct {
	value     T
	isPresent bool
}

// New returns a new Optional with a value.
func New[T any](v T) Optional[T] {
	return Optional[T]{value: v, isPresent: true}
}

// IsEmpty reports whether an Optional is empty.
func (o Optional[T]) IsEmpty() bool {
	return !o.isPresent
}

// Set sets a new value.
func (o *Optional[T]) Set(v T) {
	o.value = v
	o.isPresent = true
}

// Clear removes any value.
func (o *Optional[T]) Clear() {
	var z T
	o.value = z
	o.isPresent = false
}

// Value returns the value of an Optional.
func (o Optional[T]) Value() (T, error) {
	var z T
	if o.IsEmpty() {
		return z, ErrIsEmpty
	}
	return o.value, nil
}

// ValueOrFallback returns the value of an Optional or a fallback if it is empty.
func (o Optional[T]) ValueOrFallback(fallback T) T {
	if o.IsEmpty() {
		return fallback
	}
	return o.value
}

// ValueOrZero returns the value of an Optional or it's type's zero value if it is empty.
func (o Optional[T]) ValueOrZero() T {
	var z T
	if o.IsEmpty() {
		return z
	}
	return o.value
}

// String returns a string representation of an Optional.
func (o Optional[T]) String() string {
	if o.IsEmpty() {
		return "<empty>"
	}
	return fmt.Sprint(o.value)
}

// StringFunc returns the formatted value or a fallback when the Optional is empty.
func (o Optional[T]) StringFunc(fallback string, format func(v T) string) string {
	if o.IsEmpty() {
		return fallback
	}
	return format(o.value)
}

// MarshalJSON encodes the value or null when the Optional is empty.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.IsEmpty() {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON decodes a value, treating null as empty.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		o.Clear()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Set(v)
	return nil
}

// ConvertNumeric converts between numeric optionals.
func ConvertNumeric[X Numeric, Y Numeric](o Optional[X]) Optional[Y] {
	if o.IsEmpty() {
		return Optional[Y]{}
	}
	return New(Y(o.ValueOrZero()))
}

// FromNullFloat64 converts a sql null type into an Optional.
func FromNullFloat64(v sql.NullFloat64) Optional[float64] {
	if !v.Valid {
		return Optional[float64]{}
	}
	return New(v.Float64)
}

// ToNullFloat64 converts an Optional into a sql null type.
func ToNullFloat64(o Optional[float64]) sql.NullFloat64 {
	if o.IsEmpty() {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: o.ValueOrZero(), Valid: true}
}
