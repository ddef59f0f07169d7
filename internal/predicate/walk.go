package predicate

import (
	"reflect"

	"github.com/roach88/occfilter/internal/param"
)

func isNil(p Predicate) bool {
	if p == nil {
		return true
	}
	v := reflect.ValueOf(p)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Children returns the direct children of p, in order.
func Children(p Predicate) []Predicate {
	switch n := p.(type) {
	case *And:
		return n.predicates
	case *Or:
		return n.predicates
	case *Not:
		return []Predicate{n.predicate}
	}
	return nil
}

// Walk visits p and its descendants depth-first, parents before children.
// Returning false from fn skips the node's children.
func Walk(p Predicate, fn func(Predicate) bool) {
	if isNil(p) || !fn(p) {
		return
	}
	for _, c := range Children(p) {
		Walk(c, fn)
	}
}

// Depth returns the height of the tree; a single leaf has depth 1.
func Depth(p Predicate) int {
	if isNil(p) {
		return 0
	}
	deepest := 0
	for _, c := range Children(p) {
		deepest = max(deepest, Depth(c))
	}
	return deepest + 1
}

// Key returns the parameter a leaf tests, if it has one.
func Key(p Predicate) (param.Parameter, bool) {
	switch n := p.(type) {
	case *Equals:
		return n.key, true
	case *Like:
		return n.key, true
	case *Comparison:
		return n.key, true
	case *Range:
		return n.key, true
	case *In:
		return n.key, true
	case *IsNull:
		return n.key, true
	case *IsNotNull:
		return n.key, true
	case *Within:
		return param.Geometry, true
	case *GeoDistance:
		return param.GeoDistance, true
	}
	return param.Parameter{}, false
}

// Parameters returns the distinct parameters referenced in the tree, in
// first-seen order.
func Parameters(p Predicate) []param.Parameter {
	var out []param.Parameter
	seen := make(map[param.Parameter]bool)
	Walk(p, func(n Predicate) bool {
		if k, ok := Key(n); ok && !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
		return true
	})
	return out
}
