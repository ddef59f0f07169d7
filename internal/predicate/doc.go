// Package predicate is the occurrence filter expression tree and its tagged
// JSON codec.
//
// SEALED VARIANTS:
//
// Predicate is a sealed interface using the marker method pattern. The
// closed set of node types is:
//
//	Leaf comparisons    Equals, Like, Comparison (lessThan, lessThanOrEquals,
//	                    greaterThan, greaterThanOrEquals), Range
//	Set and null checks In, IsNull, IsNotNull
//	Spatial             Within, GeoDistance
//	Text                FullTextSearch, RawQuery
//	Composition         And, Or, Not
//
// Adding a variant means touching the type switches in Encode, Equal,
// checkNode and walk.go, and the decoder table in codec.go.
//
// CONSTRUCTION IS VALIDATION:
//
// Every variant is built by a New* constructor that validates eagerly and
// returns either a complete, immutable node or an *validate.Error. Fields are
// unexported, so a node cannot be changed after construction. A zero value
// written as a composite literal (&Equals{}) still satisfies the interface;
// NewAnd, NewOr, NewNot and Encode reject it with MALFORMED_VALUE. Every
// string must be valid UTF-8 and is carried through encoding unchanged.
// Decode re-enters the same constructors, so a decoded tree carries the
// same guarantees as one built in code.
//
// The one lenient variant is Within: a geometry that fails WKT validation is
// logged and accepted, because geometries that older releases accepted must
// keep round-tripping. Policy reports which variants behave this way.
//
// WIRE FORMAT:
//
//	{"type":"and","predicates":[
//	  {"type":"equals","key":"COUNTRY","value":"CR"},
//	  {"type":"greaterThanOrEquals","key":"YEAR","value":"1990"}
//	]}
//
// Marshal produces RFC 8785 canonical JSON, so equal trees encode to equal
// bytes and Hash is stable across processes.
package predicate
