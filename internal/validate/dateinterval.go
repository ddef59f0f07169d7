package validate

import (
	"fmt"
	"strings"
)

// DateInterval is a single temporal or a closed range of two temporals at
// the same granularity, written "from/to".
type DateInterval struct {
	from Temporal
	to   Temporal
}

// NewDateInterval builds a closed interval. Both ends must share a
// granularity and from must not be after to.
func NewDateInterval(from, to Temporal) (DateInterval, error) {
	if from.IsZero() || to.IsZero() {
		return DateInterval{}, malformed("", "date interval needs both ends")
	}
	raw := from.text + "/" + to.text
	if from.granularity != to.granularity {
		return DateInterval{}, malformed(raw, "date interval mixes %s and %s", from.granularity, to.granularity)
	}
	if to.Before(from) {
		return DateInterval{}, malformed(raw, "date interval start is after its end")
	}
	return DateInterval{from: from, to: to}, nil
}

// SingleDate wraps one temporal as a degenerate interval.
func SingleDate(t Temporal) DateInterval {
	return DateInterval{from: t, to: t}
}

// ParseDateInterval parses a single ISO 8601 value or a "from/to" pair.
func ParseDateInterval(raw string) (DateInterval, error) {
	s := strings.TrimSpace(raw)
	parts := strings.Split(s, "/")
	switch len(parts) {
	case 1:
		t, err := ParseDate(parts[0])
		if err != nil {
			return DateInterval{}, err
		}
		return SingleDate(t), nil
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return DateInterval{}, malformed(raw, "date interval has an empty end")
		}
		from, err := ParseDate(parts[0])
		if err != nil {
			return DateInterval{}, err
		}
		to, err := ParseDate(parts[1])
		if err != nil {
			return DateInterval{}, err
		}
		di, err := NewDateInterval(from, to)
		if err != nil {
			return DateInterval{}, withValue(err, raw)
		}
		return di, nil
	}
	return DateInterval{}, malformed(raw, "date interval has more than one '/'")
}

// From returns the first end.
func (d DateInterval) From() Temporal { return d.from }

// To returns the last end.
func (d DateInterval) To() Temporal { return d.to }

// IsSingle reports whether both ends are the same value.
func (d DateInterval) IsSingle() bool { return d.from.text == d.to.text }

// IsZero reports whether d is the zero DateInterval.
func (d DateInterval) IsZero() bool { return d.from.IsZero() }

// String returns "from/to", or a single value when the ends are equal.
func (d DateInterval) String() string { return d.Format(false) }

// Format is like String but can strip non-UTC offsets from both ends.
func (d DateInterval) Format(stripNonUTCOffset bool) string {
	if d.IsSingle() {
		return d.from.Format(stripNonUTCOffset)
	}
	return d.from.Format(stripNonUTCOffset) + "/" + d.to.Format(stripNonUTCOffset)
}

// MarshalText implements encoding.TextMarshaler.
func (d DateInterval) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return nil, fmt.Errorf("marshal zero date interval")
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DateInterval) UnmarshalText(text []byte) error {
	parsed, err := ParseDateInterval(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func withValue(err error, value string) error {
	if ve, ok := err.(*Error); ok {
		cp := *ve
		cp.Value = value
		return &cp
	}
	return err
}
