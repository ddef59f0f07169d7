package predicate

import (
	"slices"

	"github.com/roach88/occfilter/internal/tagged"
)

// HashDomain separates predicate hashes from other content hashes.
const HashDomain = "occfilter/predicate/v1"

// Equal reports whether a and b are structurally equal: the same variant,
// the same parameters, and string values equal byte for byte. An optional
// flag that is unset differs from one explicitly set to false, as it does
// on the wire.
func Equal(a, b Predicate) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	switch x := a.(type) {
	case *Equals:
		y, ok := b.(*Equals)
		return ok && x.key == y.key && x.value == y.value && sameFlag(x.matchCase, y.matchCase)
	case *Like:
		y, ok := b.(*Like)
		return ok && x.key == y.key && x.value == y.value && sameFlag(x.matchCase, y.matchCase) &&
			x.checklistKey == y.checklistKey
	case *Comparison:
		y, ok := b.(*Comparison)
		return ok && x.kind == y.kind && x.key == y.key && x.value == y.value
	case *Range:
		y, ok := b.(*Range)
		return ok && x.key == y.key && x.value == y.value
	case *In:
		y, ok := b.(*In)
		return ok && x.key == y.key && slices.Equal(x.values, y.values) && sameFlag(x.matchCase, y.matchCase)
	case *IsNull:
		y, ok := b.(*IsNull)
		return ok && x.key == y.key
	case *IsNotNull:
		y, ok := b.(*IsNotNull)
		return ok && x.key == y.key
	case *Within:
		y, ok := b.(*Within)
		return ok && x.geometry == y.geometry
	case *GeoDistance:
		y, ok := b.(*GeoDistance)
		return ok && x.latitude == y.latitude && x.longitude == y.longitude && x.distance == y.distance
	case *Not:
		y, ok := b.(*Not)
		return ok && Equal(x.predicate, y.predicate)
	case *And:
		y, ok := b.(*And)
		return ok && slices.EqualFunc(x.predicates, y.predicates, Equal)
	case *Or:
		y, ok := b.(*Or)
		return ok && slices.EqualFunc(x.predicates, y.predicates, Equal)
	case *FullTextSearch:
		y, ok := b.(*FullTextSearch)
		return ok && x.q == y.q
	case *RawQuery:
		y, ok := b.(*RawQuery)
		return ok && x.sql == y.sql
	}
	return false
}

func sameFlag(a, b *bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Hash returns the hex SHA-256 content hash of p's canonical encoding.
// Canonical encoding keeps string bytes, so Hash agrees with Equal.
func Hash(p Predicate) (string, error) {
	obj, err := Encode(p)
	if err != nil {
		return "", err
	}
	return tagged.Hash(HashDomain, obj)
}
