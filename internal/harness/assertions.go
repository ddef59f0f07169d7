package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/occfilter/internal/predicate"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Encoded  string // canonical form of the predicate under test
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	if e.Encoded != "" {
		fmt.Fprintf(&buf, "  Predicate: %s\n", e.Encoded)
	}
	return buf.String()
}

func assertKind(p predicate.Predicate, a Assertion) error {
	if string(p.Kind()) == a.Kind {
		return nil
	}
	return &AssertionError{Type: AssertKind, Expected: a.Kind, Actual: string(p.Kind())}
}

func assertContainsKind(p predicate.Predicate, a Assertion) error {
	found := false
	predicate.Walk(p, func(n predicate.Predicate) bool {
		if string(n.Kind()) == a.Kind {
			found = true
		}
		return !found
	})
	if found {
		return nil
	}
	return &AssertionError{Type: AssertContainsKind, Expected: "a " + a.Kind + " node", Actual: "none in tree"}
}

func assertDepth(p predicate.Predicate, a Assertion) error {
	if d := predicate.Depth(p); d != a.Depth {
		return &AssertionError{
			Type:     AssertDepth,
			Expected: fmt.Sprint(a.Depth),
			Actual:   fmt.Sprint(d),
		}
	}
	return nil
}

func assertParameters(p predicate.Predicate, a Assertion) error {
	var got []string
	for _, param := range predicate.Parameters(p) {
		got = append(got, param.Name())
	}
	if slices.Equal(got, a.Parameters) {
		return nil
	}
	return &AssertionError{
		Type:     AssertParameters,
		Expected: fmt.Sprint(a.Parameters),
		Actual:   fmt.Sprint(got),
	}
}

// EvaluateAssertions evaluates all assertions against p and returns one
// message per failure.
func EvaluateAssertions(p predicate.Predicate, assertions []Assertion) []string {
	var errs []string
	encoded := ""
	if data, err := predicate.Marshal(p); err == nil {
		encoded = string(data)
	}

	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertKind:
			err = assertKind(p, a)
		case AssertContainsKind:
			err = assertContainsKind(p, a)
		case AssertDepth:
			err = assertDepth(p, a)
		case AssertParameters:
			err = assertParameters(p, a)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, a.Type)
		}

		if ae, ok := err.(*AssertionError); ok {
			ae.Encoded = encoded
		}
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}
