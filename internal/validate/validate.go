package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/roach88/occfilter/internal/param"
)

// Value checks raw against p's declared type and returns nil or an *Error
// carrying p's name and the raw value.
//
// "*" is accepted for every parameter except GEOMETRY. Integer, Double,
// Date and DateInterval parameters also accept comma ranges.
func Value(p param.Parameter, raw string) error {
	if p.IsZero() {
		return Errorf(ErrCodeUnknownParameter, "", raw, "no parameter given")
	}
	if err := value(p, raw); err != nil {
		return withParam(withValue(err, raw), p.Name())
	}
	return nil
}

func value(p param.Parameter, raw string) error {
	if !utf8.ValidString(raw) {
		return malformed(raw, "value is not valid UTF-8")
	}
	s := strings.TrimSpace(raw)
	if s == "" {
		return malformed(raw, "empty value")
	}
	if s == Wildcard {
		if p.Type() == param.TypeGeometry {
			return malformed(raw, "wildcard is not a geometry")
		}
		return nil
	}

	switch p.Type() {
	case param.TypeInteger:
		r, err := ParseIntRange(s)
		if err != nil {
			return err
		}
		if p == param.Month {
			return checkBounds(r, raw, 1, 12, "month")
		}
		return nil

	case param.TypeDouble:
		r, err := ParseDoubleRange(s)
		if err != nil {
			return err
		}
		switch p {
		case param.DecimalLatitude:
			return checkBounds(r, raw, -90, 90, "latitude")
		case param.DecimalLongitude:
			return checkBounds(r, raw, -180, 180, "longitude")
		}
		return nil

	case param.TypeBoolean:
		if _, err := ParseBool(s); err != nil {
			return err
		}
		return nil

	case param.TypeDate:
		return validateDate(s)

	case param.TypeDateInterval:
		if IsRange(s) {
			_, err := ParseDateRange(s)
			return err
		}
		_, err := ParseDateInterval(s)
		return err

	case param.TypeUUID:
		_, err := ParseUUID(s)
		return err

	case param.TypeEnum:
		if !p.Vocabulary().Contains(s) {
			return malformed(raw, "not a %s value", p.Vocabulary().Name())
		}
		return nil

	case param.TypeGeometry:
		return ValidateGeometry(s)

	case param.TypeString:
		switch p {
		case param.GeoDistance:
			_, err := ParseGeoDistanceValue(s)
			return err
		case param.Distance:
			_, err := ParseDistance(s)
			return err
		}
		return nil
	}
	return Errorf(ErrCodeTypeMismatch, p.Name(), raw, "unsupported value type %s", p.Type())
}

func validateDate(s string) error {
	if IsRange(s) {
		_, err := ParseDateRange(s)
		return err
	}
	_, err := ParseDate(s)
	return err
}

func checkBounds[T Scalar](r Range[T], raw string, lo, hi T, what string) error {
	for _, bound := range []func() (T, bool){r.Lower, r.Upper} {
		v, ok := bound()
		if ok && (v < lo || v > hi) {
			return outOfRange(raw, "%s %v outside [%v, %v]", what, v, lo, hi)
		}
	}
	return nil
}

// ParseBool accepts "true" or "false" in any case.
func ParseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, malformed(raw, "not a boolean")
}

// ParseUUID accepts only the 36 character hyphenated form, in any case.
func ParseUUID(raw string) (uuid.UUID, error) {
	s := strings.TrimSpace(raw)
	if len(s) != 36 {
		return uuid.Nil, malformed(raw, "UUID must be 36 characters, got %d", len(s))
	}
	id, err := uuid.Parse(s)
	if err != nil {
		e := malformed(raw, "not a UUID")
		e.Err = err
		return uuid.Nil, e
	}
	return id, nil
}
