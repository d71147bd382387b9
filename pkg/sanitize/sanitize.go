// Package sanitize rewrites parsed document trees so a target encoder only
// ever sees values it can represent.
//
// # Overview
//
// Each output format owns an ordered list of [Rule] values. A rule pairs a
// predicate (does this node need rewriting for the target format?) with a
// rewrite function (the format-safe replacement). [Sanitize] walks the tree
// once, applying every rule to every node and recursing into whatever
// containers the (possibly rewritten) node holds.
//
// Rules fire in order and each rule sees the previous rule's output, so a
// rewrite may itself be rewritten by a later rule in the same list.
//
// # Input invariant
//
// The walk assumes an acyclic input tree and performs no visited tracking:
// document trees produced by the loaders are always acyclic, and a node shared
// between two parents (diamond shape) is simply sanitized twice, which is
// harmless because rewrites are idempotent for all rule sets in this module.
// A cyclic input does not terminate.
package sanitize

import (
	"fmt"
	"reflect"

	"github.com/fileconv/fileconv/pkg/value"
)

// Rule rewrites values a target format cannot represent. Incompatible reports
// whether a node needs rewriting; Rewrite produces the replacement.
type Rule struct {
	Incompatible func(v any) bool
	Rewrite      func(v any) (any, error)
}

// Sanitize returns v with every sub-value matching a rule's predicate replaced
// by that rule's rewrite. Mutable containers (maps, slices, dicts, sets) are
// updated in place; tuples are rebuilt. Mapping keys are never sanitized.
//
// The first rule error aborts the walk and is returned to the caller.
func Sanitize(v any, rules []Rule) (any, error) {
	for _, r := range rules {
		if r.Incompatible(v) {
			nv, err := r.Rewrite(v)
			if err != nil {
				return nil, fmt.Errorf("rewrite %T: %w", v, err)
			}
			v = nv
		}
	}

	switch c := v.(type) {
	case map[string]any:
		for k, e := range c {
			ns, err := Sanitize(e, rules)
			if err != nil {
				return nil, err
			}
			c[k] = ns
		}
		return c, nil

	case map[any]any:
		for k, e := range c {
			ns, err := Sanitize(e, rules)
			if err != nil {
				return nil, err
			}
			c[k] = ns
		}
		return c, nil

	case *value.Dict:
		for _, k := range c.Keys() {
			e, _ := c.Get(k)
			ns, err := Sanitize(e, rules)
			if err != nil {
				return nil, err
			}
			c.Set(k, ns)
		}
		return c, nil

	case []any:
		for i, e := range c {
			ns, err := Sanitize(e, rules)
			if err != nil {
				return nil, err
			}
			c[i] = ns
		}
		return c, nil

	case value.Tuple:
		// Tuples are fixed; build a replacement instead of mutating.
		nt := make(value.Tuple, len(c))
		for i, e := range c {
			ns, err := Sanitize(e, rules)
			if err != nil {
				return nil, err
			}
			nt[i] = ns
		}
		return nt, nil

	case *value.Set:
		for _, e := range c.Elems() {
			ns, err := Sanitize(e, rules)
			if err != nil {
				return nil, err
			}
			if ns == nil || reflect.TypeOf(ns).Comparable() {
				if ns != e {
					c.Remove(e)
					c.Add(ns)
				}
				continue
			}
			return nil, fmt.Errorf("rule rewrote set element %v to uncomparable %T", e, ns)
		}
		return c, nil

	default:
		return v, nil
	}
}
