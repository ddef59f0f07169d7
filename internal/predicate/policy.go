package predicate

// ValidationPolicy says how a variant's constructor treats invalid input.
type ValidationPolicy int

const (
	// Strict constructors return an error and build nothing.
	Strict ValidationPolicy = iota
	// Lenient constructors log the failure and build the node anyway.
	Lenient
)

func (v ValidationPolicy) String() string {
	if v == Lenient {
		return "lenient"
	}
	return "strict"
}

// Policy returns the validation policy of a variant. Only within is
// lenient, so that geometries accepted by older grammars still decode.
func Policy(kind Kind) ValidationPolicy {
	if kind == KindWithin {
		return Lenient
	}
	return Strict
}
