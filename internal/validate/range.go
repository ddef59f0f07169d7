package validate

import (
	"regexp"
	"strconv"
	"strings"
)

// Wildcard marks an open end of a range, or "any value" on its own.
const Wildcard = "*"

// Scalar is the set of types a Range can span.
type Scalar interface {
	~int64 | ~float64
}

// Range is an interval over a numeric scalar. A nil bound is unbounded.
type Range[T Scalar] struct {
	low    *T
	high   *T
	single bool
}

// NewRange creates a range. Pass nil for an unbounded end.
func NewRange[T Scalar](low, high *T) Range[T] {
	return Range[T]{low: clone(low), high: clone(high)}
}

// SingleValue creates the degenerate range [v, v] produced by a bare scalar.
func SingleValue[T Scalar](v T) Range[T] {
	return Range[T]{low: &v, high: clone(&v), single: true}
}

func clone[T Scalar](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Lower returns the lower bound and whether it is bounded.
func (r Range[T]) Lower() (T, bool) {
	if r.low == nil {
		var zero T
		return zero, false
	}
	return *r.low, true
}

// Upper returns the upper bound and whether it is bounded.
func (r Range[T]) Upper() (T, bool) {
	if r.high == nil {
		var zero T
		return zero, false
	}
	return *r.high, true
}

// IsSingleValue reports whether the range came from a bare scalar.
func (r Range[T]) IsSingleValue() bool { return r.single }

// Contains reports whether v lies within the closed range.
// A reversed range contains nothing.
func (r Range[T]) Contains(v T) bool {
	if r.low != nil && v < *r.low {
		return false
	}
	if r.high != nil && v > *r.high {
		return false
	}
	return true
}

// String renders the range in parameter value syntax: "10,20", "*,20" or "10".
func (r Range[T]) String() string {
	if r.single {
		return formatScalar(*r.low)
	}
	return formatBound(r.low) + "," + formatBound(r.high)
}

func formatBound[T Scalar](p *T) string {
	if p == nil {
		return Wildcard
	}
	return formatScalar(*p)
}

func formatScalar[T Scalar](v T) string {
	switch x := any(v).(type) {
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return strconv.FormatFloat(float64(v), 'f', -1, 64)
}

var (
	integerPattern = regexp.MustCompile(`^[+-]?\d+$`)
	doublePattern  = regexp.MustCompile(`^[+-]?\d+(\.\d+)?([eE][+-]?\d+)?$`)
)

// IsRange reports whether raw is written as a range, i.e. contains an
// unescaped comma.
func IsRange(raw string) bool {
	_, _, ok := splitRange(raw)
	return ok
}

// splitRange splits on the first comma not preceded by a backslash.
func splitRange(raw string) (lower, upper string, ok bool) {
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '\\':
			i++
		case ',':
			return raw[:i], raw[i+1:], true
		}
	}
	return raw, "", false
}

// ParseIntRange parses "a,b", "*,b", "a,*" or a bare integer.
// A reversed range such as "20,10" is accepted as written.
func ParseIntRange(raw string) (Range[int64], error) {
	return parseRange(raw, "integer", integerPattern, func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
}

// ParseDoubleRange parses "a,b", "*,b", "a,*" or a bare decimal number.
// A reversed range such as "2.5,1" is accepted as written.
func ParseDoubleRange(raw string) (Range[float64], error) {
	return parseRange(raw, "decimal", doublePattern, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

func parseRange[T Scalar](raw, kind string, grammar *regexp.Regexp, parse func(string) (T, error)) (Range[T], error) {
	lower, upper, isRange := splitRange(raw)
	if !isRange {
		v, err := parseScalar(lower, raw, kind, grammar, parse)
		if err != nil {
			return Range[T]{}, err
		}
		return SingleValue(v), nil
	}

	low, err := parseBound(lower, raw, kind, grammar, parse)
	if err != nil {
		return Range[T]{}, err
	}
	high, err := parseBound(upper, raw, kind, grammar, parse)
	if err != nil {
		return Range[T]{}, err
	}
	return Range[T]{low: low, high: high}, nil
}

func parseBound[T Scalar](token, raw, kind string, grammar *regexp.Regexp, parse func(string) (T, error)) (*T, error) {
	if strings.TrimSpace(token) == Wildcard {
		return nil, nil
	}
	v, err := parseScalar(token, raw, kind, grammar, parse)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func parseScalar[T Scalar](token, raw, kind string, grammar *regexp.Regexp, parse func(string) (T, error)) (T, error) {
	var zero T
	token = strings.TrimSpace(token)
	if token == "" {
		return zero, malformed(raw, "empty %s range bound", kind)
	}
	if !grammar.MatchString(token) {
		return zero, malformed(raw, "%q is not a valid %s", token, kind)
	}
	v, err := parse(token)
	if err != nil {
		e := malformed(raw, "%q is not a valid %s", token, kind)
		e.Err = err
		return zero, e
	}
	return v, nil
}
