// Package props holds the property mappings consumed by template rendering.
// A mapping is built by layering component-specific properties over an
// inherited base set; layering never mutates its inputs.
package props

import (
	"fmt"
	"maps"

	"dario.cat/mergo"
)

// Map is an ordered-enough property bag keyed by placeholder name. Values are
// scalars, strings, booleans, or sequences of nested maps for iterated
// template sections.
type Map = map[string]any

// Layer merges overlay on top of base: base is applied first, overlay wins on
// key collisions. Neither input is modified.
func Layer(base, overlay Map) (Map, error) {
	result := make(Map, len(base)+len(overlay))
	maps.Copy(result, base)
	if err := mergo.Merge(&result, overlay, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("failed to layer property mappings: %w", err)
	}
	return result, nil
}

// ExpandScopes prepares a mapping for iterated rendering: every element of a
// sequence-of-mapping property gets the enclosing scope layered beneath it,
// so outer keys stay visible inside the iteration while element keys win on
// collision. Nested sequences are expanded recursively.
func ExpandScopes(m Map) (Map, error) {
	if m == nil {
		return nil, nil
	}
	outer := make(Map, len(m))
	for k, v := range m {
		if asElements(v) == nil {
			outer[k] = v
		}
	}
	result := make(Map, len(m))
	for k, v := range m {
		elems := asElements(v)
		if elems == nil {
			result[k] = v
			continue
		}
		expanded := make([]Map, len(elems))
		for i, elem := range elems {
			layered, err := Layer(outer, elem)
			if err != nil {
				return nil, fmt.Errorf("failed to expand scope for %q[%d]: %w", k, i, err)
			}
			layered, err = ExpandScopes(layered)
			if err != nil {
				return nil, err
			}
			expanded[i] = layered
		}
		result[k] = expanded
	}
	return result, nil
}

// asElements normalizes a value into a sequence of mappings, or nil if the
// value is not one.
func asElements(v any) []Map {
	switch seq := v.(type) {
	case []Map:
		return seq
	case []any:
		elems := make([]Map, 0, len(seq))
		for _, item := range seq {
			m, ok := item.(Map)
			if !ok {
				return nil
			}
			elems = append(elems, m)
		}
		if len(elems) == 0 {
			return nil
		}
		return elems
	default:
		return nil
	}
}
