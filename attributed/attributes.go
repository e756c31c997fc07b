package attributed

import (
	"reflect"
	"sort"
)

// Key names an attribute.
type Key string

// Attributes is a set of keyed attribute values. A missing key and a
// nil value mean the same thing.
type Attributes map[Key]any

// Equaler is implemented by attribute values that need a custom notion
// of equality when runs are merged.
type Equaler interface {
	Equal(other any) bool
}

// Copy returns a shallow copy of a. The copy is never nil.
func (a Attributes) Copy() Attributes {
	c := make(Attributes, len(a))
	for k, v := range a {
		if v != nil {
			c[k] = v
		}
	}
	return c
}

// Has reports whether a carries a non-nil value for k.
func (a Attributes) Has(k Key) bool {
	return a[k] != nil
}

// Keys returns the keys of a in sorted order.
func (a Attributes) Keys() []Key {
	keys := make([]Key, 0, len(a))
	for k, v := range a {
		if v != nil {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Equal reports whether a and b carry equal values for every key.
func (a Attributes) Equal(b Attributes) bool {
	for k, v := range a {
		if !ValuesEqual(v, b[k]) {
			return false
		}
	}
	for k, v := range b {
		if _, ok := a[k]; !ok && v != nil {
			return false
		}
	}
	return true
}

// ValuesEqual compares two attribute values. Values implementing
// Equaler decide for themselves; comparable values use ==; anything else
// falls back to reflect.DeepEqual.
func ValuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if e, ok := a.(Equaler); ok {
		return e.Equal(b)
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// Value returns the value of k in a converted to T.
func Value[T any](a Attributes, k Key) (T, bool) {
	v, ok := a[k].(T)
	return v, ok
}

// ValueAt returns the value of k at offset i of s converted to T.
func ValueAt[T any](s *String, k Key, i int) (T, bool) {
	v, _ := s.Attribute(k, i)
	t, ok := v.(T)
	return t, ok
}
