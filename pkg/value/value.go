// Package value defines the container types that parsed documents are made of
// beyond Go's builtin map/slice/scalar kinds.
//
// Parsed documents are plain `any` trees: map[string]any (and map[any]any when
// a source format allows non-string keys), []any, string, int64, float64,
// bool, nil, time.Time, and []byte blobs. This package adds the three
// container kinds that cannot be expressed with builtins alone:
//
//   - [Tuple]: a fixed-length sequence. Sanitization never mutates a Tuple in
//     place; a fresh one is built instead.
//   - [Set]: an unordered collection of unique comparable elements.
//   - [Dict]: a mapping that remembers key order. Produced by the plist loader
//     (the underlying format is order-preserving); most encoders cannot
//     serialize it directly, so dumpers rewrite it to a plain map first.
package value

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
)

// Tuple is a fixed-length sequence of values. Unlike []any it signals that the
// sequence must not be resized or mutated in place.
type Tuple []any

// Set holds unique comparable elements with no defined order.
type Set struct {
	elems map[any]struct{}
}

// NewSet returns a Set containing the given elements. Duplicates collapse.
func NewSet(elems ...any) *Set {
	s := &Set{elems: make(map[any]struct{}, len(elems))}
	for _, e := range elems {
		s.elems[e] = struct{}{}
	}
	return s
}

// Add inserts e into the set.
func (s *Set) Add(e any) { s.elems[e] = struct{}{} }

// Remove deletes e from the set if present.
func (s *Set) Remove(e any) { delete(s.elems, e) }

// Has reports whether e is a member.
func (s *Set) Has(e any) bool {
	_, ok := s.elems[e]
	return ok
}

// Len returns the number of elements.
func (s *Set) Len() int { return len(s.elems) }

// Elems returns the elements in a deterministic (stringified) order.
// The order is stable across calls but carries no semantic meaning.
func (s *Set) Elems() []any {
	out := make([]any, 0, len(s.elems))
	for e := range s.elems {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return fmt.Sprint(out[i]) < fmt.Sprint(out[j])
	})
	return out
}

// MarshalJSON writes the elements as a JSON array in the deterministic
// [Set.Elems] order. JSON has no set type; an array is the closest encoding.
func (s *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Elems())
}

// Dict is a string-keyed mapping that preserves key order. It exists because
// round-tripping through an order-preserving format (plist) would otherwise
// lose document order; see the package doc for how dumpers treat it.
type Dict struct {
	keys []string
	m    map[string]any
}

// NewDict returns an empty Dict.
func NewDict() *Dict {
	return &Dict{m: make(map[string]any)}
}

// Set stores v under key k, appending k to the key order on first insert.
func (d *Dict) Set(k string, v any) {
	if _, ok := d.m[k]; !ok {
		d.keys = append(d.keys, k)
	}
	d.m[k] = v
}

// Get returns the value stored under k and whether it exists.
func (d *Dict) Get(k string) (any, bool) {
	v, ok := d.m[k]
	return v, ok
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (d *Dict) Keys() []string { return slices.Clone(d.keys) }

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.keys) }

// Map returns the entries as a plain map. Children are shared, not copied.
func (d *Dict) Map() map[string]any {
	out := make(map[string]any, len(d.m))
	for k, v := range d.m {
		out[k] = v
	}
	return out
}

// MarshalJSON writes the entries as a JSON object in insertion order.
// Dumpers normally flatten a Dict before encoding; this exists so a Dict that
// escapes into a plain encoder still produces sensible output.
func (d *Dict) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, k := range d.keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(d.m[k])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf = append(buf, kb...)
		buf = append(buf, ':')
		buf = append(buf, vb...)
	}
	return append(buf, '}'), nil
}
